// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package title_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqduong/scorebook/internal/catalog/category"
	"github.com/vqduong/scorebook/internal/catalog/genre"
	"github.com/vqduong/scorebook/internal/catalog/title"
	"github.com/vqduong/scorebook/internal/platform/apperr"
)

// # Test Doubles

type memoryTitleRepo struct {
	nextID int
	titles map[int]*title.Title
	genres map[int][]int // titleID -> genreIDs
}

func newMemoryTitleRepo() *memoryTitleRepo {
	return &memoryTitleRepo{
		nextID: 1,
		titles: make(map[int]*title.Title),
		genres: make(map[int][]int),
	}
}

func (r *memoryTitleRepo) List(_ context.Context, _ title.Filter, limit, offset int) ([]title.Title, error) {
	out := make([]title.Title, 0, len(r.titles))
	for _, t := range r.titles {
		out = append(out, *t)
	}
	return out, nil
}

func (r *memoryTitleRepo) Count(_ context.Context, _ title.Filter) (int, error) {
	return len(r.titles), nil
}

func (r *memoryTitleRepo) FindByID(_ context.Context, id int) (*title.Title, error) {
	if t, ok := r.titles[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, apperr.NotFound("Title")
}

func (r *memoryTitleRepo) Exists(_ context.Context, id int) (bool, error) {
	_, ok := r.titles[id]
	return ok, nil
}

func (r *memoryTitleRepo) Create(_ context.Context, t *title.Title, categoryID *int, genreIDs []int) error {
	t.ID = r.nextID
	r.nextID++
	copied := *t
	r.titles[t.ID] = &copied
	r.genres[t.ID] = genreIDs
	return nil
}

func (r *memoryTitleRepo) Update(_ context.Context, t *title.Title, categoryID *int, genreIDs []int, replaceGenres bool) error {
	if _, ok := r.titles[t.ID]; !ok {
		return apperr.NotFound("Title")
	}
	copied := *t
	r.titles[t.ID] = &copied
	if replaceGenres {
		r.genres[t.ID] = genreIDs
	}
	return nil
}

func (r *memoryTitleRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.titles[id]; !ok {
		return apperr.NotFound("Title")
	}
	delete(r.titles, id)
	return nil
}

type staticResolvers struct {
	categories map[string]int
	genres     map[string]int
}

func (s staticResolvers) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	if id, ok := s.categories[slug]; ok {
		return &category.Category{ID: id, Slug: slug}, nil
	}
	return nil, apperr.NotFound("Category")
}

func (s staticResolvers) FindBySlugs(_ context.Context, slugs []string) ([]genre.Genre, error) {
	out := make([]genre.Genre, 0, len(slugs))
	for _, slug := range slugs {
		if id, ok := s.genres[slug]; ok {
			out = append(out, genre.Genre{ID: id, Slug: slug})
		}
	}
	return out, nil
}

func newTitleService(repo *memoryTitleRepo) *title.Service {
	resolvers := staticResolvers{
		categories: map[string]int{"movies": 1, "books": 2},
		genres:     map[string]int{"drama": 1, "comedy": 2},
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return title.NewService(repo, resolvers, resolvers, logger)
}

// # Tests

/*
TestCreate_ResolvesSlugs verifies the happy path with category and genres.
*/
func TestCreate_ResolvesSlugs(t *testing.T) {
	repo := newMemoryTitleRepo()
	service := newTitleService(repo)

	created, err := service.Create(context.Background(), title.CreateInput{
		Name:         "The Long Goodbye",
		Year:         1973,
		CategorySlug: "movies",
		GenreSlugs:   []string{"drama", "comedy", "drama"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Nil(t, created.Rating)
	// Duplicate slugs collapse to one join row each
	assert.ElementsMatch(t, []int{1, 2}, repo.genres[created.ID])
}

/*
TestCreate_RejectsFutureYear verifies the year bound against the current
calendar year.
*/
func TestCreate_RejectsFutureYear(t *testing.T) {
	service := newTitleService(newMemoryTitleRepo())

	_, err := service.Create(context.Background(), title.CreateInput{
		Name: "From The Future",
		Year: time.Now().Year() + 1,
	})

	requireFieldFailure(t, err, "year")
}

/*
TestCreate_UnknownSlugsAreValidationFailures verifies unknown category and
genre slugs produce 400 field errors, not 404s.
*/
func TestCreate_UnknownSlugsAreValidationFailures(t *testing.T) {
	service := newTitleService(newMemoryTitleRepo())
	ctx := context.Background()

	_, err := service.Create(ctx, title.CreateInput{
		Name:         "Mystery",
		Year:         2001,
		CategorySlug: "vhs",
	})
	requireFieldFailure(t, err, "category")

	_, err = service.Create(ctx, title.CreateInput{
		Name:       "Mystery",
		Year:       2001,
		GenreSlugs: []string{"drama", "polka"},
	})
	requireFieldFailure(t, err, "genre")
}

/*
TestUpdate_PartialPatch verifies nil fields are untouched and provided genre
lists replace the old joins.
*/
func TestUpdate_PartialPatch(t *testing.T) {
	repo := newMemoryTitleRepo()
	service := newTitleService(repo)
	ctx := context.Background()

	created, err := service.Create(ctx, title.CreateInput{
		Name:       "Original",
		Year:       1990,
		GenreSlugs: []string{"drama"},
	})
	require.NoError(t, err)

	newName := "Renamed"
	newGenres := []string{"comedy"}
	updated, err := service.Update(ctx, created.ID, title.UpdateInput{
		Name:       &newName,
		GenreSlugs: &newGenres,
	})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1990, updated.Year)
	assert.Equal(t, []int{2}, repo.genres[created.ID])

	// Unknown title maps to 404
	_, err = service.Update(ctx, 999, title.UpdateInput{})
	assert.True(t, apperr.IsNotFound(err))
}

// requireFieldFailure asserts err is a 400 validation error naming the field.
func requireFieldFailure(t *testing.T, err error, field string) {
	t.Helper()

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	for _, detail := range appErr.Details {
		if detail.Field == field {
			return
		}
	}
	t.Fatalf("expected a validation failure on field %q, got details %+v", field, appErr.Details)
}
