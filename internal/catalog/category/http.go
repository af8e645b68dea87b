// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vqduong/scorebook/internal/platform/middleware"
	"github.com/vqduong/scorebook/internal/platform/permission"
	requestutil "github.com/vqduong/scorebook/internal/platform/request"
	"github.com/vqduong/scorebook/internal/platform/respond"
	"github.com/vqduong/scorebook/internal/platform/validate"
	"github.com/vqduong/scorebook/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the category router. Reads are public; writes require
// admin capability.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Require(permission.AdminOrReadOnly))

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Delete("/{slug}", handler.delete)

	return router
}

type createRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	categories, meta, err := handler.service.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, meta)
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	category, err := handler.service.Create(request.Context(), CreateInput{
		Name: input.Name,
		Slug: input.Slug,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	slug := requestutil.Param(request, "slug")

	if err := handler.service.Delete(request.Context(), slug); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
