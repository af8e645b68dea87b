// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package title

import (
	"github.com/vqduong/scorebook/internal/catalog/category"
	"github.com/vqduong/scorebook/internal/catalog/genre"
)

// Title is a reviewable work in the catalog.
//
// # Rating
//
// Rating is computed from review scores at read time and is never stored on
// the row itself. It is nil while the title has no reviews.
type Title struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`

	Category *category.Category `json:"category"`
	Genres   []genre.Genre      `json:"genre"`
}

// Field names used in validation error details.
const (
	FieldName        = "name"
	FieldYear        = "year"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldGenre       = "genre"
)

// MaxNameLength bounds the title name.
const MaxNameLength = 256

// Filter narrows title listings. Zero values mean "no constraint".
type Filter struct {
	CategorySlug string
	GenreSlug    string
	Name         string
	Year         int
}
