// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package review

import "context"

// Repository defines the data access contract for reviews and their comments.
//
// Review lookups are always scoped by title and comment lookups by review, so
// a valid ID under the wrong parent resolves to NotFound rather than leaking
// a sibling's data.
type Repository interface {

	// # Reviews

	ListReviews(context context.Context, titleID, limit, offset int) ([]Review, error)
	CountReviews(context context.Context, titleID int) (int, error)
	GetReview(context context.Context, titleID, reviewID int) (*Review, error)

	// CreateReview inserts the review. A duplicate (title, author) pair
	// returns apperr.Conflict.
	CreateReview(context context.Context, review *Review) error

	UpdateReview(context context.Context, review *Review) error
	DeleteReview(context context.Context, titleID, reviewID int) error

	// # Comments

	ListComments(context context.Context, reviewID, limit, offset int) ([]Comment, error)
	CountComments(context context.Context, reviewID int) (int, error)
	GetComment(context context.Context, reviewID, commentID int) (*Comment, error)
	CreateComment(context context.Context, comment *Comment) error
	UpdateComment(context context.Context, comment *Comment) error
	DeleteComment(context context.Context, reviewID, commentID int) error
}
