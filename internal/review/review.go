// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package review

import "time"

// Review is a scored write-up of a title.
//
// # Uniqueness
//
// Each author may review a title once. The constraint lives in the database
// (UNIQUE on titleid, authorid) so concurrent submissions cannot slip past an
// application-level check.
type Review struct {
	ID    int    `json:"id"`
	Text  string `json:"text"`
	Score int    `json:"score"`

	// Author is the username, resolved from users.account on read.
	Author   string `json:"author"`
	AuthorID string `json:"-"`
	TitleID  int    `json:"-"`

	CreatedAt time.Time `json:"pub_date"`
}

// Comment is a reply attached to a review.
type Comment struct {
	ID   int    `json:"id"`
	Text string `json:"text"`

	Author   string `json:"author"`
	AuthorID string `json:"-"`
	ReviewID int    `json:"-"`

	CreatedAt time.Time `json:"pub_date"`
}

// Field names used in validation error details.
const (
	FieldText  = "text"
	FieldScore = "score"
)

// MaxTextLength bounds review and comment bodies.
const MaxTextLength = 10000
