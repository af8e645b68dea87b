// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

// Package genre manages the genre reference data for the catalog.
package genre

import (
	"context"
	"log/slog"

	"github.com/vqduong/scorebook/internal/platform/validate"
	"github.com/vqduong/scorebook/pkg/pagination"
	slugpkg "github.com/vqduong/scorebook/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) List(context context.Context, params pagination.Params) ([]Genre, pagination.Meta, error) {
	genres, err := service.repo.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return genres, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// CreateInput holds the fields for a new genre. An empty Slug is derived
// from the Name.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Genre, error) {
	if input.Slug == "" {
		input.Slug = slugpkg.From(input.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, MaxNameLength).
		Required(FieldSlug, input.Slug).
		Slug(FieldSlug, input.Slug).
		MaxLen(FieldSlug, input.Slug, MaxSlugLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	genre := &Genre{Name: input.Name, Slug: input.Slug}
	if err := service.repo.Create(context, genre); err != nil {
		return nil, err
	}

	service.logger.Info("genre_created", slog.String("slug", genre.Slug))

	return genre, nil
}

func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.Info("genre_deleted", slog.String("slug", slug))

	return nil
}
