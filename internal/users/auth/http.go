// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
HTTP delivery layer for the signup and token endpoints.

# Architecture

The handler acts as a thin mediation layer between the web and the domain
service:
  - Protocol: Standard RESTful JSON interface.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vqduong/scorebook/internal/platform/request"
	"github.com/vqduong/scorebook/internal/platform/respond"
	"github.com/vqduong/scorebook/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup : Requests a confirmation code by email.
//   - POST /token  : Exchanges the code for a JWT access token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/token", handler.token)

	return router
}

// # Request Payloads

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type tokenRequest struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
Signup requests a confirmation code for an identity pair.

POST /api/v1/auth/signup

Description: Validates input, creates the account if needed, and emails a
fresh confirmation code. Safe to repeat with the same pair.

Request:
  - Body: signupRequest (Email, Username)

Response:
  - 200: SignupResult: Echo of the accepted pair
  - 400: ErrInvalidJSON: Bad input, validation failure, or identity conflict
  - 429: ErrRateLimited: Too many codes requested for this email
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.Signup(request.Context(), SignupInput{
		Email:    input.Email,
		Username: input.Username,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
Token exchanges a confirmation code for a JWT access token.

POST /api/v1/auth/token

Description: Verifies the code against the stored hash and returns a signed
JWT valid for 24 hours.

Request:
  - Body: tokenRequest (Username, ConfirmationCode)

Response:
  - 201: TokenResult: Signed JWT
  - 400: ErrInvalidJSON: Missing fields or wrong confirmation code
  - 404: ErrNotFound: Unknown username
*/
func (handler *Handler) token(writer http.ResponseWriter, request *http.Request) {
	var input tokenRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	result, err := handler.authService.IssueToken(request.Context(), TokenInput{
		Username:         input.Username,
		ConfirmationCode: input.ConfirmationCode,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}
