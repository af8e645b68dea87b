// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package review_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/sec"
	"github.com/vqduong/scorebook/internal/review"
	"github.com/vqduong/scorebook/pkg/pagination"
)

// # Test Doubles

type memoryReviewRepo struct {
	nextID   int
	reviews  map[int]*review.Review
	comments map[int]*review.Comment
}

func newMemoryReviewRepo() *memoryReviewRepo {
	return &memoryReviewRepo{
		nextID:   1,
		reviews:  make(map[int]*review.Review),
		comments: make(map[int]*review.Comment),
	}
}

func (r *memoryReviewRepo) ListReviews(_ context.Context, titleID, limit, offset int) ([]review.Review, error) {
	out := make([]review.Review, 0)
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *memoryReviewRepo) CountReviews(_ context.Context, titleID int) (int, error) {
	count := 0
	for _, rv := range r.reviews {
		if rv.TitleID == titleID {
			count++
		}
	}
	return count, nil
}

func (r *memoryReviewRepo) GetReview(_ context.Context, titleID, reviewID int) (*review.Review, error) {
	if rv, ok := r.reviews[reviewID]; ok && rv.TitleID == titleID {
		copied := *rv
		return &copied, nil
	}
	return nil, apperr.NotFound("Review")
}

func (r *memoryReviewRepo) CreateReview(_ context.Context, rv *review.Review) error {
	for _, existing := range r.reviews {
		if existing.TitleID == rv.TitleID && existing.AuthorID == rv.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	rv.ID = r.nextID
	rv.CreatedAt = time.Now()
	r.nextID++
	copied := *rv
	r.reviews[rv.ID] = &copied
	return nil
}

func (r *memoryReviewRepo) UpdateReview(_ context.Context, rv *review.Review) error {
	if _, ok := r.reviews[rv.ID]; !ok {
		return apperr.NotFound("Review")
	}
	copied := *rv
	r.reviews[rv.ID] = &copied
	return nil
}

func (r *memoryReviewRepo) DeleteReview(_ context.Context, titleID, reviewID int) error {
	if rv, ok := r.reviews[reviewID]; ok && rv.TitleID == titleID {
		delete(r.reviews, reviewID)
		return nil
	}
	return apperr.NotFound("Review")
}

func (r *memoryReviewRepo) ListComments(_ context.Context, reviewID, limit, offset int) ([]review.Comment, error) {
	out := make([]review.Comment, 0)
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memoryReviewRepo) CountComments(_ context.Context, reviewID int) (int, error) {
	count := 0
	for _, c := range r.comments {
		if c.ReviewID == reviewID {
			count++
		}
	}
	return count, nil
}

func (r *memoryReviewRepo) GetComment(_ context.Context, reviewID, commentID int) (*review.Comment, error) {
	if c, ok := r.comments[commentID]; ok && c.ReviewID == reviewID {
		copied := *c
		return &copied, nil
	}
	return nil, apperr.NotFound("Comment")
}

func (r *memoryReviewRepo) CreateComment(_ context.Context, c *review.Comment) error {
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	r.nextID++
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *memoryReviewRepo) UpdateComment(_ context.Context, c *review.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return apperr.NotFound("Comment")
	}
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *memoryReviewRepo) DeleteComment(_ context.Context, reviewID, commentID int) error {
	if c, ok := r.comments[commentID]; ok && c.ReviewID == reviewID {
		delete(r.comments, commentID)
		return nil
	}
	return apperr.NotFound("Comment")
}

// staticTitles answers Exists for a fixed set of title IDs.
type staticTitles map[int]bool

func (s staticTitles) Exists(_ context.Context, id int) (bool, error) {
	return s[id], nil
}

func newReviewService(repo *memoryReviewRepo) *review.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return review.NewService(repo, staticTitles{1: true, 2: true}, logger)
}

func userClaims(id, username string, role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: id, Username: username, Role: string(role)}
}

// # Review Tests

/*
TestCreateReview_OnePerAuthor verifies the duplicate rule: the same author
cannot review a title twice, but may review another title.
*/
func TestCreateReview_OnePerAuthor(t *testing.T) {
	service := newReviewService(newMemoryReviewRepo())
	ctx := context.Background()
	alice := userClaims("u-alice", "alice", sec.RoleUser)

	_, err := service.CreateReview(ctx, alice, 1, review.ReviewInput{Text: "Great", Score: 9})
	require.NoError(t, err)

	// Second review on the same title conflicts
	_, err = service.CreateReview(ctx, alice, 1, review.ReviewInput{Text: "Again", Score: 5})
	assert.True(t, apperr.IsConflict(err))

	// A different title is fine
	_, err = service.CreateReview(ctx, alice, 2, review.ReviewInput{Text: "Also great", Score: 8})
	assert.NoError(t, err)
}

/*
TestCreateReview_ScoreBounds verifies the inclusive 1..10 score range.
*/
func TestCreateReview_ScoreBounds(t *testing.T) {
	service := newReviewService(newMemoryReviewRepo())
	ctx := context.Background()

	cases := []struct {
		score int
		ok    bool
	}{
		{0, false},
		{1, true},
		{10, true},
		{11, false},
	}

	for i, tc := range cases {
		author := userClaims("u-"+string(rune('a'+i)), "user", sec.RoleUser)
		_, err := service.CreateReview(ctx, author, 1, review.ReviewInput{Text: "Text", Score: tc.score})
		if tc.ok {
			assert.NoError(t, err, "score %d", tc.score)
		} else {
			require.Error(t, err, "score %d", tc.score)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus, "score %d", tc.score)
		}
	}
}

/*
TestCreateReview_UnknownTitle verifies the parent check runs before any write.
*/
func TestCreateReview_UnknownTitle(t *testing.T) {
	service := newReviewService(newMemoryReviewRepo())

	_, err := service.CreateReview(context.Background(),
		userClaims("u-1", "user", sec.RoleUser), 99,
		review.ReviewInput{Text: "Text", Score: 5},
	)

	assert.True(t, apperr.IsNotFound(err))
}

/*
TestUpdateReview_Permissions verifies the author/staff matrix: strangers are
forbidden, the author and moderators may edit.
*/
func TestUpdateReview_Permissions(t *testing.T) {
	service := newReviewService(newMemoryReviewRepo())
	ctx := context.Background()
	author := userClaims("u-author", "author", sec.RoleUser)

	created, err := service.CreateReview(ctx, author, 1, review.ReviewInput{Text: "Mine", Score: 7})
	require.NoError(t, err)

	newText := "Edited"

	// 1. A different regular user is forbidden
	stranger := userClaims("u-other", "other", sec.RoleUser)
	_, err = service.UpdateReview(ctx, stranger, 1, created.ID, review.ReviewPatch{Text: &newText})
	requireStatus(t, err, http.StatusForbidden)

	// 2. The author may edit
	updated, err := service.UpdateReview(ctx, author, 1, created.ID, review.ReviewPatch{Text: &newText})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Text)
	assert.Equal(t, 7, updated.Score)

	// 3. A moderator may delete someone else's review
	moderator := userClaims("u-mod", "mod", sec.RoleModerator)
	err = service.DeleteReview(ctx, moderator, 1, created.ID)
	assert.NoError(t, err)
}

// # Comment Tests

/*
TestComments_ParentScoping verifies comments require an existing review under
the right title and inherit the author/staff rules.
*/
func TestComments_ParentScoping(t *testing.T) {
	service := newReviewService(newMemoryReviewRepo())
	ctx := context.Background()
	author := userClaims("u-author", "author", sec.RoleUser)

	created, err := service.CreateReview(ctx, author, 1, review.ReviewInput{Text: "Review", Score: 6})
	require.NoError(t, err)

	// 1. Commenting under the wrong title 404s
	_, err = service.CreateComment(ctx, author, 2, created.ID, "Nice")
	assert.True(t, apperr.IsNotFound(err))

	// 2. Correct parent works
	comment, err := service.CreateComment(ctx, author, 1, created.ID, "Nice")
	require.NoError(t, err)

	// 3. A stranger cannot delete it, an admin can
	stranger := userClaims("u-other", "other", sec.RoleUser)
	err = service.DeleteComment(ctx, stranger, 1, created.ID, comment.ID)
	requireStatus(t, err, http.StatusForbidden)

	admin := userClaims("u-admin", "admin", sec.RoleAdmin)
	err = service.DeleteComment(ctx, admin, 1, created.ID, comment.ID)
	assert.NoError(t, err)
}

/*
TestListReviews_Meta verifies pagination metadata for review listings.
*/
func TestListReviews_Meta(t *testing.T) {
	service := newReviewService(newMemoryReviewRepo())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		author := userClaims("u-"+string(rune('a'+i)), "user", sec.RoleUser)
		_, err := service.CreateReview(ctx, author, 1, review.ReviewInput{Text: "Text", Score: 5})
		require.NoError(t, err)
	}

	reviews, meta, err := service.ListReviews(ctx, 1, pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	assert.Equal(t, 3, meta.Total)
}

// requireStatus asserts err carries the given HTTP status.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, status, appErr.HTTPStatus)
}
