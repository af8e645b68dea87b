// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package genre

// Genre is a fine-grained label for titles ("Drama", "Rock", ...).
// A title may carry any number of genres.
type Genre struct {
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
