// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
HTTP delivery layer for reviews and comments.

The router is mounted under /titles/{title_id}/reviews, so every handler
resolves title_id from the parent mount pattern. Object-level permission
checks (author/staff) happen in the service where the target is loaded.
*/
package review

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

// Handler implements the review and comment HTTP endpoints.
type Handler struct {
	reviewService *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reviewService: service}
}

// Routes returns the review router, expected to be mounted at
// /titles/{title_id}/reviews.
//
// # Endpoints
//   - GET    /                                      : List reviews.
//   - POST   /                                      : Create a review (authenticated).
//   - GET    /{review_id}                           : Fetch a review.
//   - PATCH  /{review_id}                           : Update (author/staff).
//   - DELETE /{review_id}                           : Remove (author/staff).
//   - GET    /{review_id}/comments                  : List comments.
//   - POST   /{review_id}/comments                  : Create a comment (authenticated).
//   - GET    /{review_id}/comments/{comment_id}     : Fetch a comment.
//   - PATCH  /{review_id}/comments/{comment_id}     : Update (author/staff).
//   - DELETE /{review_id}/comments/{comment_id}     : Remove (author/staff).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Require(permission.ReadOnlyOrAuthenticated))

	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)

	router.Route("/{review_id}", func(r chi.Router) {
		r.Get("/", handler.getReview)
		r.Patch("/", handler.updateReview)
		r.Delete("/", handler.deleteReview)

		r.Route("/comments", func(c chi.Router) {
			c.Get("/", handler.listComments)
			c.Post("/", handler.createComment)
			c.Get("/{comment_id}", handler.getComment)
			c.Patch("/{comment_id}", handler.updateComment)
			c.Delete("/{comment_id}", handler.deleteComment)
		})
	})

	return router
}

// # Request Payloads

type reviewRequest struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

type reviewPatchRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text"`
}

// parentIDs extracts the title and review IDs from the route.
func parentIDs(request *http.Request) (int, int, error) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		return 0, 0, err
	}
	reviewID, err := requestutil.IntParam(request, "review_id")
	if err != nil {
		return 0, 0, err
	}
	return titleID, reviewID, nil
}

// # Review Endpoints

/*
GET /api/v1/titles/{title_id}/reviews.

Response:
  - 200: []Review: Page of reviews with metadata
  - 404: ErrNotFound: Unknown title
*/
func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, meta, err := handler.reviewService.ListReviews(request.Context(), titleID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reviews, meta)
}

/*
POST /api/v1/titles/{title_id}/reviews.

Request:
  - Body: reviewRequest (Text, Score)

Response:
  - 201: Review: Created entity
  - 400: ErrInvalidJSON: Validation failure
  - 404: ErrNotFound: Unknown title
  - 409: ErrConflict: Caller already reviewed this title
*/
func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, err := requestutil.IntParam(request, "title_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.reviewService.CreateReview(request.Context(), claims, titleID, ReviewInput{
		Text:  input.Text,
		Score: input.Score,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/titles/{title_id}/reviews/{review_id}.

Response:
  - 200: Review: Hydrated entity
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.reviewService.GetReview(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
PATCH /api/v1/titles/{title_id}/reviews/{review_id}.

Request:
  - Body: reviewPatchRequest (Partial JSON)

Response:
  - 200: Review: The updated entity
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reviewPatchRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.reviewService.UpdateReview(
		request.Context(), requestutil.Claims(request), titleID, reviewID,
		ReviewPatch{Text: input.Text, Score: input.Score},
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/titles/{title_id}/reviews/{review_id}.

Response:
  - 204: No Content: Review removed, comments cascade
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown title or review
*/
func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.reviewService.DeleteReview(request.Context(), requestutil.Claims(request), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

/*
GET /api/v1/titles/{title_id}/reviews/{review_id}/comments.

Response:
  - 200: []Comment: Page of comments with metadata
  - 404: ErrNotFound: Unknown parent
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, meta, err := handler.reviewService.ListComments(request.Context(), titleID, reviewID, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, meta)
}

/*
POST /api/v1/titles/{title_id}/reviews/{review_id}/comments.

Request:
  - Body: commentRequest (Text)

Response:
  - 201: Comment: Created entity
  - 400: ErrInvalidJSON: Validation failure
  - 404: ErrNotFound: Unknown parent
*/
func (handler *Handler) createComment(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.reviewService.CreateComment(request.Context(), claims, titleID, reviewID, input.Text)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
GET /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.

Response:
  - 200: Comment: Hydrated entity
  - 404: ErrNotFound: Unknown parent or comment
*/
func (handler *Handler) getComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "comment_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.reviewService.GetComment(request.Context(), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
PATCH /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.

Request:
  - Body: commentRequest (Text)

Response:
  - 200: Comment: The updated entity
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown parent or comment
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "comment_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input commentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.reviewService.UpdateComment(
		request.Context(), requestutil.Claims(request), titleID, reviewID, commentID, input.Text,
	)

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/titles/{title_id}/reviews/{review_id}/comments/{comment_id}.

Response:
  - 204: No Content: Comment removed
  - 403: ErrForbidden: Caller is neither author nor staff
  - 404: ErrNotFound: Unknown parent or comment
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := parentIDs(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID, err := requestutil.IntParam(request, "comment_id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.reviewService.DeleteComment(request.Context(), requestutil.Claims(request), titleID, reviewID, commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
