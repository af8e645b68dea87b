// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
HTTP delivery layer for user administration and self-service endpoints.

# Security

The collection and /{username} endpoints require admin capability. The /me
endpoints require any authenticated caller. Both gates are enforced by
routing-layer middleware, keeping the handlers free of permission checks.
*/
package account

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

// Handler implements the HTTP layer for user account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the account domain's endpoints.
//
// # Endpoints
//   - GET    /            : List accounts (admin).
//   - POST   /            : Provision an account (admin).
//   - GET    /me          : Caller's own profile.
//   - PATCH  /me          : Update caller's own profile.
//   - GET    /{username}  : Fetch an account (admin).
//   - PATCH  /{username}  : Update an account (admin).
//   - DELETE /{username}  : Remove an account (admin).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Self-service: any authenticated caller. Registered before /{username}
	// so the literal segment wins.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getMe)
		r.Patch("/me", handler.updateMe)
	})

	// Administration: admin capability required
	router.Group(func(r chi.Router) {
		r.Use(middleware.Require(permission.AuthenticatedAdminOnly))
		r.Get("/", handler.list)
		r.Post("/", handler.create)
		r.Get("/{username}", handler.get)
		r.Patch("/{username}", handler.update)
		r.Delete("/{username}", handler.delete)
	})

	return router
}

// # Request Payloads

type createUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

type updateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// # Administration Endpoints

/*
GET /api/v1/users.

Description: Lists all accounts with pagination.

Response:
  - 200: []auth.User: Page of accounts with metadata
  - 401: ErrUnauthorized: Authentication required
  - 403: ErrForbidden: Admin capability required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	users, meta, err := handler.accountService.List(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, meta)
}

/*
POST /api/v1/users.

Description: Provisions a new account with an explicit role.

Request:
  - Body: createUserRequest

Response:
  - 201: auth.User: Created account
  - 400: ErrInvalidJSON: Validation failure
  - 409: ErrConflict: Username or email already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Create(request.Context(), CreateInput{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
GET /api/v1/users/{username}.

Description: Retrieves a single account by username.

Response:
  - 200: auth.User: Hydrated account
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	user, err := handler.accountService.GetByUsername(request.Context(), username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/{username}.

Description: Applies partial updates, including role changes.

Request:
  - Body: updateUserRequest (Partial JSON)

Response:
  - 200: auth.User: The updated account
  - 400: ErrInvalidJSON: Validation failure
  - 404: ErrNotFound: Unknown username
  - 409: ErrConflict: Email already exists
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.Update(request.Context(), username, UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{username}.

Description: Permanently removes the account. Authored reviews and comments
cascade.

Response:
  - 204: No Content: Account removed
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	username := requestutil.Param(request, "username")

	if err := handler.accountService.Delete(request.Context(), username); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Self-Service Endpoints

/*
GET /api/v1/users/me.

Description: Retrieves the full private profile of the authenticated caller.

Response:
  - 200: auth.User: Fully hydrated profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetMe(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Applies partial updates to the caller's own profile. A role field
is honored only for callers with admin capability and silently dropped
otherwise.

Request:
  - Body: updateUserRequest (Partial JSON)

Response:
  - 200: auth.User: The updated profile
  - 400: ErrInvalidJSON: Validation failure
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	user, err := handler.accountService.UpdateMe(request.Context(), claims, UpdateInput{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      input.Role,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}
