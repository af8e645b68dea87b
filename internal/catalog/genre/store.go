// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package genre

import "context"

type Repository interface {
	List(context context.Context, limit, offset int) ([]Genre, error)
	Count(context context.Context) (int, error)
	FindBySlugs(context context.Context, slugs []string) ([]Genre, error)
	Create(context context.Context, genre *Genre) error
	DeleteBySlug(context context.Context, slug string) error
}
