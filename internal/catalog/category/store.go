// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package category

import "context"

type Repository interface {
	List(context context.Context, limit, offset int) ([]Category, error)
	Count(context context.Context) (int, error)
	FindBySlug(context context.Context, slug string) (*Category, error)
	Create(context context.Context, category *Category) error
	DeleteBySlug(context context.Context, slug string) error
}
