// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

// PostgreSQL implementation of the account storage layer.
//
// # Error Mapping
//
// Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
// domain-friendly [apperr.AppError] types via [dberr.Wrap] to avoid leaking
// storage implementation details.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/dberr"
)

// userColumns is the canonical column list scanned into a [User].
const userColumns = `id, username, email, firstname, lastname, bio, role, confirmationhash, issuperuser, createdat, updatedat`

// PostgresUserRepository implements the [UserRepository] interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Initializes timestamps if unset. Unique violations on username
or email surface as apperr.Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Conflict, constraint violations, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, firstname, lastname, bio, role, confirmationhash, issuperuser, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.ConfirmationHash,
		user.IsSuperuser,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Username or email already exists")
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`
	return repository.findOne(context, query, id)
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup for token issuance and profile resolution.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`
	return repository.findOne(context, query, username)
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`
	return repository.findOne(context, query, email)
}

// findOne executes a single-row lookup and hydrates a [User].
func (repository *PostgresUserRepository) findOne(context context.Context, query string, arg any) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.ConfirmationHash,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}

	return user, nil
}

/*
Update persists changes to a user's mutable profile fields.

Description: Synchronizes email, names, bio, and role with the database,
refreshing the updatedat timestamp. Email unique violations surface as
apperr.Conflict.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - error: Conflict or update failures
*/
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users.account
		SET email = $2, firstname = $3, lastname = $4, bio = $5, role = $6, updatedat = $7
		WHERE id = $1`

	user.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Bio,
		user.Role,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email already exists")
		}
		return fmt.Errorf("postgres_user_repo_update_failed: %w", err)
	}

	return nil
}

/*
SetConfirmationHash updates only the confirmation-code hash for a user.

Parameters:
  - context: context.Context
  - userID: string
  - hash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresUserRepository) SetConfirmationHash(context context.Context, userID, hash string) error {
	const query = `
		UPDATE users.account
		SET confirmationhash = $2, updatedat = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, hash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_confirmation_hash_failed: %w", err)
	}

	return nil
}

/*
DeleteByUsername permanently removes an account by username.

Description: Reviews and comments authored by the account cascade via
foreign keys.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound if no row matched, or execution errors
*/
func (repository *PostgresUserRepository) DeleteByUsername(context context.Context, username string) error {
	const query = "DELETE FROM users.account WHERE username = $1"

	tag, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}

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
func (repository *PostgresUserRepository) List(context context.Context, limit, offset int) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account ORDER BY username LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0, limit)
	for rows.Next() {
		var user User
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Bio,
			&user.Role,
			&user.ConfirmationHash,
			&user.IsSuperuser,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err)
	}

	return users, nil
}

/*
Count returns the total number of accounts.

Parameters:
  - context: context.Context

Returns:
  - int: Total row count
  - error: Database retrieval failures
*/
func (repository *PostgresUserRepository) Count(context context.Context) (int, error) {
	const query = "SELECT COUNT(*) FROM users.account"

	var total int
	if err := repository.pool.QueryRow(context, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	return total, nil
}
