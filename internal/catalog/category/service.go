// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

// Package category manages the category reference data for the catalog.
package category

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

func (service *Service) List(context context.Context, params pagination.Params) ([]Category, pagination.Meta, error) {
	categories, err := service.repo.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return categories, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// CreateInput holds the fields for a new category. An empty Slug is derived
// from the Name.
type CreateInput struct {
	Name string
	Slug string
}

func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
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

	category := &Category{Name: input.Name, Slug: input.Slug}
	if err := service.repo.Create(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.String("slug", category.Slug))

	return category, nil
}

func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repo.DeleteBySlug(context, slug); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("slug", slug))

	return nil
}
