// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package auth

import (
	"time"

	"github.com/vqduong/scorebook/internal/platform/sec"
)

// User represents a registered account in the users.account table.
//
// # Identity
//
// Username is the public handle used in URLs (/users/{username}) and token
// claims. Email is unique and owns the confirmation-code delivery channel.
type User struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Bio       string       `json:"bio"`
	Role      sec.UserRole `json:"role"`

	// ConfirmationHash is the bcrypt hash of the last confirmation code
	// issued to this account. Never serialized.
	ConfirmationHash string `json:"-"`

	// IsSuperuser grants admin capability regardless of Role. It can only be
	// set out-of-band (seed data or direct SQL), never via the API.
	IsSuperuser bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSON field names used in validation error details.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldRole             = "role"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
)

// Length limits for account fields.
const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxNameLength     = 150
	MaxBioLength      = 1000
	MinUsernameLength = 3
)
