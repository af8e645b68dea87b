// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package category_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqduong/scorebook/internal/catalog/category"
	"github.com/vqduong/scorebook/internal/platform/apperr"
)

// memoryRepo is an in-memory Repository keyed by slug.
type memoryRepo struct {
	nextID     int
	categories map[string]category.Category
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, categories: make(map[string]category.Category)}
}

func (r *memoryRepo) List(_ context.Context, limit, offset int) ([]category.Category, error) {
	out := make([]category.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	return out, nil
}

func (r *memoryRepo) Count(_ context.Context) (int, error) {
	return len(r.categories), nil
}

func (r *memoryRepo) FindBySlug(_ context.Context, slug string) (*category.Category, error) {
	if c, ok := r.categories[slug]; ok {
		return &c, nil
	}
	return nil, apperr.NotFound("Category")
}

func (r *memoryRepo) Create(_ context.Context, c *category.Category) error {
	if _, exists := r.categories[c.Slug]; exists {
		return apperr.Conflict("Category slug already exists")
	}
	c.ID = r.nextID
	r.nextID++
	r.categories[c.Slug] = *c
	return nil
}

func (r *memoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, exists := r.categories[slug]; !exists {
		return apperr.NotFound("Category")
	}
	delete(r.categories, slug)
	return nil
}

func newService(repo *memoryRepo) *category.Service {
	return category.NewService(repo, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

/*
TestCreate_DerivesSlugFromName verifies that an omitted slug is generated
from the name, including accent folding.
*/
func TestCreate_DerivesSlugFromName(t *testing.T) {
	service := newService(newMemoryRepo())

	created, err := service.Create(context.Background(), category.CreateInput{Name: "Café Culture"})

	require.NoError(t, err)
	assert.Equal(t, "cafe-culture", created.Slug)
}

/*
TestCreate_RejectsBadSlug verifies explicit slugs must match the slug format.
*/
func TestCreate_RejectsBadSlug(t *testing.T) {
	service := newService(newMemoryRepo())

	_, err := service.Create(context.Background(), category.CreateInput{
		Name: "Movies",
		Slug: "Movies And Stuff",
	})

	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
}

/*
TestCreate_DuplicateSlugConflicts verifies duplicate slugs surface as 409.
*/
func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	service := newService(newMemoryRepo())
	ctx := context.Background()

	_, err := service.Create(ctx, category.CreateInput{Name: "Movies", Slug: "movies"})
	require.NoError(t, err)

	_, err = service.Create(ctx, category.CreateInput{Name: "Films", Slug: "movies"})
	assert.True(t, apperr.IsConflict(err))
}

/*
TestDelete_UnknownSlug verifies deletion of a missing category maps to 404.
*/
func TestDelete_UnknownSlug(t *testing.T) {
	service := newService(newMemoryRepo())

	err := service.Delete(context.Background(), "ghost")

	assert.True(t, apperr.IsNotFound(err))
}
