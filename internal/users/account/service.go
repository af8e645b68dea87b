// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
Package account implements user administration and self-service profile
management.

It operates on the same users.account table as the auth package, through the
shared [auth.UserRepository] contract:

  - Administration: Full CRUD over accounts, including role assignment
    (admin capability required, enforced at the routing layer).
  - Self-service: The /users/me endpoints let any authenticated user read
    and edit their own profile.

Role changes through /users/me are silently dropped for callers without admin
capability — the rest of the patch still applies.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vqduong/scorebook/internal/platform/sec"
	"github.com/vqduong/scorebook/internal/platform/validate"
	"github.com/vqduong/scorebook/internal/users/auth"
	"github.com/vqduong/scorebook/pkg/pagination"
)

// # Service Layer

// Service orchestrates business logic for account administration.
type Service struct {
	userRepository auth.UserRepository
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(userRepo auth.UserRepository, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		logger:         logger,
	}
}

// # Administration

/*
List returns a page of accounts ordered by username.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []auth.User: Page of accounts
  - pagination.Meta: Page metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]auth.User, pagination.Meta, error) {
	users, err := service.userRepository.List(context, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_list_failed: %w", err)
	}

	total, err := service.userRepository.Count(context)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("account_service_count_failed: %w", err)
	}

	return users, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// CreateInput holds the fields for an admin-provisioned account.
type CreateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      string
}

/*
Create provisions a new account directly, bypassing the confirmation flow.

Description: Admin-created accounts carry no confirmation hash; the owner must
go through POST /auth/signup with the same pair to receive a code before they
can mint a token.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: Created entity
  - error: Validation, Conflict, or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		Username(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		MaxLen(auth.FieldFirstName, input.FirstName, auth.MaxNameLength).
		MaxLen(auth.FieldLastName, input.LastName, auth.MaxNameLength).
		MaxLen(auth.FieldBio, input.Bio, auth.MaxBioLength).
		OneOf(auth.FieldRole, input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("account_service_create_id_failed: %w", err)
	}

	user := &auth.User{
		ID:        id.String(),
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      sec.UserRole(input.Role),
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_account_created",
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return user, nil
}

/*
GetByUsername retrieves a single account by its public handle.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetByUsername(context context.Context, username string) (*auth.User, error) {
	return service.userRepository.FindByUsername(context, username)
}

// UpdateInput defines the mutable subset of account fields. Nil pointers mean
// "leave unchanged".
type UpdateInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *string
}

/*
Update applies a partial set of changes to an account identified by username.

Parameters:
  - context: context.Context
  - username: string
  - input: UpdateInput

Returns:
  - *auth.User: The updated entity
  - error: Validation, NotFound, Conflict, or storage failures
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {

	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	applyUpdate(user, input)

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_account_updated", slog.String("username", user.Username))

	return user, nil
}

/*
Delete permanently removes an account by username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound or storage failures
*/
func (service *Service) Delete(context context.Context, username string) error {
	if err := service.userRepository.DeleteByUsername(context, username); err != nil {
		return err
	}

	service.logger.Warn("user_account_deleted", slog.String("username", username))

	return nil
}

// # Self-Service

/*
GetMe retrieves the caller's own profile.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: Hydrated entity
  - error: NotFound or retrieval failures
*/
func (service *Service) GetMe(context context.Context, userID string) (*auth.User, error) {
	return service.userRepository.FindByID(context, userID)
}

/*
UpdateMe applies a partial profile update for the caller.

Description: A role field in the patch is honored only when the caller holds
admin capability; otherwise it is silently dropped and the remaining fields
still apply. This mirrors how self-service role escalation is a no-op rather
than an error.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims
  - input: UpdateInput

Returns:
  - *auth.User: The updated entity
  - error: Validation, Conflict, or storage failures
*/
func (service *Service) UpdateMe(context context.Context, claims *sec.AuthClaims, input UpdateInput) (*auth.User, error) {

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, err
	}

	// Drop the role change for callers without admin capability
	if input.Role != nil && !claims.HasAdminCapability() {
		input.Role = nil
	}

	if err := validateUpdate(input); err != nil {
		return nil, err
	}

	applyUpdate(user, input)

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// validateUpdate runs the shared validation chain over the provided fields.
func validateUpdate(input UpdateInput) error {
	validator := &validate.Validator{}

	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			Email(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, auth.MaxEmailLength)
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, auth.MaxNameLength)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, auth.MaxNameLength)
	}
	if input.Bio != nil {
		validator.MaxLen(auth.FieldBio, *input.Bio, auth.MaxBioLength)
	}
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role,
			string(sec.RoleUser), string(sec.RoleModerator), string(sec.RoleAdmin))
	}

	return validator.Err()
}

// applyUpdate copies the provided fields onto the entity.
func applyUpdate(user *auth.User, input UpdateInput) {
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Role != nil {
		user.Role = sec.UserRole(*input.Role)
	}
}
