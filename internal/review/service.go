// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
Package review implements scored reviews on titles and threaded comments on
reviews.

Access rules:

  - Reads are public.
  - Any authenticated user may create reviews and comments.
  - Edits and deletes require being the author, a moderator, or an admin.

Object-level permission checks live here in the service, where the target's
author is known; the request-level gate (authenticated-or-read-only) is
middleware at the routing layer.
*/
package review

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/permission"
	"github.com/vqduong/scorebook/internal/platform/sec"
	"github.com/vqduong/scorebook/internal/platform/validate"
	"github.com/vqduong/scorebook/pkg/pagination"
)

// # Contracts & Types

// TitleResolver reports whether a title exists, so review routes can 404 on
// unknown parents before any write.
type TitleResolver interface {
	Exists(context context.Context, id int) (bool, error)
}

// Service orchestrates business logic for reviews and comments.
type Service struct {
	repo   Repository
	titles TitleResolver
	logger *slog.Logger
}

// NewService constructs a new review [Service].
func NewService(repo Repository, titles TitleResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		titles: titles,
		logger: logger,
	}
}

// requireTitle resolves the parent title or returns 404.
func (service *Service) requireTitle(context context.Context, titleID int) error {
	exists, err := service.titles.Exists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// # Reviews

/*
ListReviews returns a page of reviews for a title.

Parameters:
  - context: context.Context
  - titleID: int
  - params: pagination.Params

Returns:
  - []Review: Page of reviews, newest first
  - pagination.Meta: Page metadata
  - error: NotFound for unknown titles, or retrieval failures
*/
func (service *Service) ListReviews(context context.Context, titleID int, params pagination.Params) ([]Review, pagination.Meta, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, pagination.Meta{}, err
	}

	reviews, err := service.repo.ListReviews(context, titleID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.CountReviews(context, titleID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return reviews, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// GetReview returns a single review scoped by title.
func (service *Service) GetReview(context context.Context, titleID, reviewID int) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.GetReview(context, titleID, reviewID)
}

// ReviewInput holds the writable review fields.
type ReviewInput struct {
	Text  string
	Score int
}

/*
CreateReview validates and persists a new review by the caller.

Description: The one-review-per-author rule is enforced by the database
constraint; a duplicate surfaces as 409 Conflict even under concurrent
submissions.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (the author)
  - titleID: int
  - input: ReviewInput

Returns:
  - *Review: The created entity
  - error: NotFound, validation, Conflict, or persistence failures
*/
func (service *Service) CreateReview(context context.Context, claims *sec.AuthClaims, titleID int, input ReviewInput) (*Review, error) {
	if err := service.requireTitle(context, titleID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text).
		MaxLen(FieldText, input.Text, MaxTextLength).
		Score(FieldScore, input.Score)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	review := &Review{
		Text:     input.Text,
		Score:    input.Score,
		Author:   claims.Username,
		AuthorID: claims.UserID,
		TitleID:  titleID,
	}

	if err := service.repo.CreateReview(context, review); err != nil {
		return nil, err
	}

	service.logger.Info("review_created",
		slog.Int("title_id", titleID),
		slog.Int("review_id", review.ID),
		slog.String("author", claims.Username),
	)

	return review, nil
}

// ReviewPatch holds a partial review update. Nil pointers mean "unchanged".
type ReviewPatch struct {
	Text  *string
	Score *int
}

/*
UpdateReview applies a partial update after an author/staff check.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: int
  - reviewID: int
  - patch: ReviewPatch

Returns:
  - *Review: The updated entity
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdateReview(context context.Context, claims *sec.AuthClaims, titleID, reviewID int, patch ReviewPatch) (*Review, error) {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if err := permission.AuthorStaffOrReadOnly(claims, http.MethodPatch, review.AuthorID); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		review.Text = *patch.Text
	}
	if patch.Score != nil {
		review.Score = *patch.Score
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, review.Text).
		MaxLen(FieldText, review.Text, MaxTextLength).
		Score(FieldScore, review.Score)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, review); err != nil {
		return nil, err
	}

	return review, nil
}

/*
DeleteReview removes a review after an author/staff check. Its comments
cascade.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: int
  - reviewID: int

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeleteReview(context context.Context, claims *sec.AuthClaims, titleID, reviewID int) error {
	review, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}

	if err := permission.AuthorStaffOrReadOnly(claims, http.MethodDelete, review.AuthorID); err != nil {
		return err
	}

	if err := service.repo.DeleteReview(context, titleID, reviewID); err != nil {
		return err
	}

	service.logger.Info("review_deleted",
		slog.Int("title_id", titleID),
		slog.Int("review_id", reviewID),
	)

	return nil
}

// # Comments

/*
ListComments returns a page of comments under a review.

Parameters:
  - context: context.Context
  - titleID: int
  - reviewID: int
  - params: pagination.Params

Returns:
  - []Comment: Page of comments, oldest first
  - pagination.Meta: Page metadata
  - error: NotFound for unknown parents, or retrieval failures
*/
func (service *Service) ListComments(context context.Context, titleID, reviewID int, params pagination.Params) ([]Comment, pagination.Meta, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, pagination.Meta{}, err
	}

	comments, err := service.repo.ListComments(context, reviewID, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.CountComments(context, reviewID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return comments, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// GetComment returns a single comment scoped by its review and title.
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetComment(context, reviewID, commentID)
}

/*
CreateComment validates and persists a comment under an existing review.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (the author)
  - titleID: int
  - reviewID: int
  - text: string

Returns:
  - *Comment: The created entity
  - error: NotFound, validation, or persistence failures
*/
func (service *Service) CreateComment(context context.Context, claims *sec.AuthClaims, titleID, reviewID int, text string) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, text).MaxLen(FieldText, text, MaxTextLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		Text:     text,
		Author:   claims.Username,
		AuthorID: claims.UserID,
		ReviewID: reviewID,
	}

	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
UpdateComment rewrites a comment's text after an author/staff check.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: int
  - reviewID: int
  - commentID: int
  - text: string

Returns:
  - *Comment: The updated entity
  - error: NotFound, Forbidden, validation, or persistence failures
*/
func (service *Service) UpdateComment(context context.Context, claims *sec.AuthClaims, titleID, reviewID, commentID int, text string) (*Comment, error) {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if err := permission.AuthorStaffOrReadOnly(claims, http.MethodPatch, comment.AuthorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldText, text).MaxLen(FieldText, text, MaxTextLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment.Text = text
	if err := service.repo.UpdateComment(context, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

/*
DeleteComment removes a comment after an author/staff check.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - titleID: int
  - reviewID: int
  - commentID: int

Returns:
  - error: NotFound, Forbidden, or persistence failures
*/
func (service *Service) DeleteComment(context context.Context, claims *sec.AuthClaims, titleID, reviewID, commentID int) error {
	comment, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if err := permission.AuthorStaffOrReadOnly(claims, http.MethodDelete, comment.AuthorID); err != nil {
		return err
	}

	return service.repo.DeleteComment(context, reviewID, commentID)
}
