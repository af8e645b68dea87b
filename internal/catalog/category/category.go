// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package category

// Category is a coarse classification for titles ("Movies", "Books", ...).
// A title belongs to at most one category.
type Category struct {
	ID   int    `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Field and length limits.
const (
	FieldName = "name"
	FieldSlug = "slug"

	MaxNameLength = 256
	MaxSlugLength = 50
)
