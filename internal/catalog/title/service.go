// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
Package title manages the reviewable works in the catalog.

A title references one optional category and any number of genres, both by
slug at the API surface. The aggregate review rating is computed by the
storage layer on every read.
*/
package title

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/vqduong/scorebook/internal/catalog/category"
	"github.com/vqduong/scorebook/internal/catalog/genre"
	"github.com/vqduong/scorebook/internal/platform/validate"
	"github.com/vqduong/scorebook/pkg/pagination"
)

// # Contracts & Types

// CategoryResolver resolves category slugs from the reference data.
type CategoryResolver interface {
	FindBySlug(context context.Context, slug string) (*category.Category, error)
}

// GenreResolver resolves sets of genre slugs from the reference data.
type GenreResolver interface {
	FindBySlugs(context context.Context, slugs []string) ([]genre.Genre, error)
}

// Service orchestrates business logic for catalog titles.
type Service struct {
	repo       Repository
	categories CategoryResolver
	genres     GenreResolver
	logger     *slog.Logger
}

// NewService constructs a new title [Service].
func NewService(repo Repository, categories CategoryResolver, genres GenreResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		genres:     genres,
		logger:     logger,
	}
}

// # Read Path

/*
List returns a filtered, paginated page of titles.

Parameters:
  - context: context.Context
  - filter: Filter
  - params: pagination.Params

Returns:
  - []Title: Page of hydrated titles
  - pagination.Meta: Page metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, params pagination.Params) ([]Title, pagination.Meta, error) {
	titles, err := service.repo.List(context, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.Count(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return titles, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns a single hydrated title.
func (service *Service) Get(context context.Context, id int) (*Title, error) {
	return service.repo.FindByID(context, id)
}

// # Write Path

// CreateInput holds the fields for a new title. CategorySlug and GenreSlugs
// reference existing reference data by slug.
type CreateInput struct {
	Name         string
	Year         int
	Description  string
	CategorySlug string
	GenreSlugs   []string
}

/*
Create validates, resolves slug references, and persists a new title.

Description: Unknown category or genre slugs are reported as field-level
validation failures rather than 404s — the title is the resource here, the
slugs are just input.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: The created, fully hydrated entity
  - error: Validation or persistence failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Year(FieldYear, input.Year)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	categoryID, err := service.resolveCategory(context, input.CategorySlug)
	if err != nil {
		return nil, err
	}

	genreIDs, err := service.resolveGenres(context, input.GenreSlugs)
	if err != nil {
		return nil, err
	}

	title := &Title{
		Name:        input.Name,
		Year:        input.Year,
		Description: input.Description,
	}

	if err := service.repo.Create(context, title, categoryID, genreIDs); err != nil {
		return nil, err
	}

	service.logger.Info("title_created",
		slog.Int("title_id", title.ID),
		slog.String("name", title.Name),
	)

	return service.repo.FindByID(context, title.ID)
}

// UpdateInput defines the mutable subset of title fields. Nil pointers mean
// "leave unchanged"; a non-nil empty CategorySlug clears the category.
type UpdateInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

/*
Update applies a partial set of changes to an existing title.

Parameters:
  - context: context.Context
  - id: int
  - input: UpdateInput

Returns:
  - *Title: The updated, fully hydrated entity
  - error: Validation, NotFound, or persistence failures
*/
func (service *Service) Update(context context.Context, id int, input UpdateInput) (*Title, error) {
	existing, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		existing.Name = *input.Name
	}
	if input.Year != nil {
		existing.Year = *input.Year
	}
	if input.Description != nil {
		existing.Description = *input.Description
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, existing.Name).
		MaxLen(FieldName, existing.Name, MaxNameLength).
		Year(FieldYear, existing.Year)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Keep the current category unless the patch names one
	var categoryID *int
	if input.CategorySlug != nil {
		categoryID, err = service.resolveCategory(context, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
	} else if existing.Category != nil {
		categoryID = &existing.Category.ID
	}

	var genreIDs []int
	replaceGenres := input.GenreSlugs != nil
	if replaceGenres {
		genreIDs, err = service.resolveGenres(context, *input.GenreSlugs)
		if err != nil {
			return nil, err
		}
	}

	if err := service.repo.Update(context, existing, categoryID, genreIDs, replaceGenres); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, id)
}

// Delete removes a title and cascades its reviews.
func (service *Service) Delete(context context.Context, id int) error {
	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("title_deleted", slog.Int("title_id", id))

	return nil
}

// # Slug Resolution

// resolveCategory maps a slug to a category ID. Empty slug means "none".
func (service *Service) resolveCategory(context context.Context, slug string) (*int, error) {
	if slug == "" {
		return nil, nil
	}

	resolved, err := service.categories.FindBySlug(context, slug)
	if err != nil {
		return nil, validate.FieldFailure(FieldCategory, "Unknown category slug: "+slug)
	}

	return &resolved.ID, nil
}

// resolveGenres maps a set of slugs to genre IDs, rejecting unknown slugs.
func (service *Service) resolveGenres(context context.Context, slugs []string) ([]int, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	// Dedupe to keep the join insert conflict-free
	unique := make([]string, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if !seen[slug] {
			seen[slug] = true
			unique = append(unique, slug)
		}
	}

	resolved, err := service.genres.FindBySlugs(context, unique)
	if err != nil {
		return nil, err
	}

	if len(resolved) != len(unique) {
		found := make(map[string]bool, len(resolved))
		for _, g := range resolved {
			found[g.Slug] = true
		}
		for _, slug := range unique {
			if !found[slug] {
				return nil, validate.FieldFailure(FieldGenre, "Unknown genre slug: "+slug)
			}
		}
	}

	ids := make([]int, len(resolved))
	for i, g := range resolved {
		ids[i] = g.ID
	}

	return ids, nil
}

// ParseFilter reads the list filter from raw query values.
func ParseFilter(categorySlug, genreSlug, name, yearRaw string) Filter {
	filter := Filter{
		CategorySlug: categorySlug,
		GenreSlug:    genreSlug,
		Name:         name,
	}

	if yearRaw != "" {
		if year, err := strconv.Atoi(yearRaw); err == nil {
			filter.Year = year
		}
	}

	return filter
}
