// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// It is shared by the signup/token flow and the account administration
// endpoints, which both operate on the same users.account table.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate username/email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields (email, names, bio, role).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate email, or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		SetConfirmationHash replaces only the stored confirmation-code hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - hash: string

		Returns:
		  - error: Persistence failures
	*/
	SetConfirmationHash(context context.Context, userID, hash string) error

	/*
		DeleteByUsername permanently removes the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: apperr.NotFound if no row matched, or persistence failures
	*/
	DeleteByUsername(context context.Context, username string) error

	/*
		List returns a page of accounts ordered by username.

		Parameters:
		  - context: context.Context
		  - limit: int
		  - offset: int

		Returns:
		  - []User: Page of accounts
		  - error: Database retrieval failures
	*/
	List(context context.Context, limit, offset int) ([]User, error)

	/*
		Count returns the total number of accounts.

		Parameters:
		  - context: context.Context

		Returns:
		  - int: Total row count
		  - error: Database retrieval failures
	*/
	Count(context context.Context) (int, error)
}

// # Volatile Data Access

// SignupThrottleRepository defines the contract for counting confirmation-code
// requests per email address within a rolling window.
type SignupThrottleRepository interface {

	/*
		Increment bumps the counter for the given email and returns the new value.

		Description: The counter's TTL is set on first increment and left
		untouched afterwards, producing a fixed window.

		Parameters:
		  - context: context.Context
		  - email: string
		  - window: time.Duration

		Returns:
		  - int64: Counter value after the increment
		  - error: Connectivity failures
	*/
	Increment(context context.Context, email string, window time.Duration) (int64, error)
}
