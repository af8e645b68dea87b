// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package title

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

// Handler implements the title HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the title router. Reads are public; writes require admin
// capability.
//
// # Endpoints
//   - GET    /            : Filtered, paginated listing.
//   - POST   /            : Create a title (admin).
//   - GET    /{title_id}  : Fetch a single title.
//   - PATCH  /{title_id}  : Update a title (admin).
//   - DELETE /{title_id}  : Remove a title (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Grouped rather than router-wide so the review subtree can be mounted
	// under /{title_id} with its own permission rule.
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(permission.AdminOrReadOnly))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{title_id}", handler.get)
		r.Patch("/{title_id}", handler.update)
		r.Delete("/{title_id}", handler.delete)
	})

	return router
}

// # Request Payloads

type createTitleRequest struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type updateTitleRequest struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

/*
GET /api/v1/titles.

Description: Lists titles with pagination. Supports filtering by category
slug, genre slug, name substring, and exact year via query parameters.

Response:
  - 200: []Title: Page of titles with metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	query := request.URL.Query()

	filter := ParseFilter(
		query.Get("category"),
		query.Get("genre"),
		query.Get("name"),
		query.Get("year"),
	)

	titles, meta, err := handler.service.List(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, titles, meta)
}

/*
POST /api/v1/titles.

Description: Creates a title referencing category and genres by slug.

Request:
  - Body: createTitleRequest

Response:
  - 201: Title: Created entity, rating null
  - 400: ErrInvalidJSON: Validation failure or unknown slug
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createTitleRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.service.Create(request.Context(), CreateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/titles/{title_id}.

Response:
  - 200: Title: Hydrated entity with computed rating
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
PATCH /api/v1/titles/{title_id}.

Request:
  - Body: updateTitleRequest (Partial JSON)

Response:
  - 200: Title: The updated entity
  - 400: ErrInvalidJSON: Validation failure or unknown slug
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateTitleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.service.Update(request.Context(), id, UpdateInput{
		Name:         input.Name,
		Year:         input.Year,
		Description:  input.Description,
		CategorySlug: input.Category,
		GenreSlugs:   input.Genre,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/titles/{title_id}.

Description: Removes the title; its reviews and genre joins cascade.

Response:
  - 204: No Content: Title removed
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
