// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
Package auth implements the identity and access management system for Scorebook.

It covers the two-step signup flow (email confirmation codes) and JWT access
token issuance.

Architecture:

  - Service: Orchestrates business logic (Signup, IssueToken).
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis (throttle).
  - Security: Bcrypt-hashed confirmation codes and RSA-signed JWTs.

Signup is deliberately idempotent per (username, email) pair: repeating the
request re-issues a fresh confirmation code so users who lost the email can
self-recover without support intervention.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/mail"
	"github.com/vqduong/scorebook/internal/platform/sec"
	"github.com/vqduong/scorebook/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - username: The username of the account.
	//   - role: The role of the account.
	//   - superuser: Whether the account carries the superuser override.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID, username, role string, superuser bool, timeToLive time.Duration) (string, error)
}

// Service implements the signup and token issuance use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to code hashing, signup,
// or token issuance logic must be reviewed by the security team.
type Service struct {
	userRepository     UserRepository
	throttleRepository SignupThrottleRepository
	tokenProvider      TokenProvider
	mailer             mail.Sender
	logger             *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	throttleRepo SignupThrottleRepository,
	tokenProv TokenProvider,
	mailer mail.Sender,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:     userRepo,
		throttleRepository: throttleRepo,
		tokenProvider:      tokenProv,
		mailer:             mailer,
		logger:             logger,
	}
}

// # Signup Flow

// SignupInput holds the data required to request a confirmation code.
type SignupInput struct {
	Email    string
	Username string
}

// SignupResult echoes back the accepted identity pair.
type SignupResult struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

/*
Signup requests a confirmation code for a new or existing identity.

Description: Creates the account on first contact (role "user"), or re-issues
a fresh confirmation code when the exact same (username, email) pair signs up
again. Identity conflicts (username taken by another email, or email already
bound to another username) are reported as field-level validation failures.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *SignupResult: Echo of the accepted pair
  - err: Validation, rate-limit, or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupResult, error) {

	// Validate the identity pair before touching any storage
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Username(FieldUsername, input.Username).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Cap confirmation-code issuance per address. Redis being down must not
	// take the signup path with it, so throttle errors are logged and skipped.
	if count, err := service.throttleRepository.Increment(context, input.Email, SignupThrottleWindow); err != nil {
		service.logger.Warn("signup_throttle_unavailable", slog.Any("error", err))
	} else if count > SignupThrottleLimit {
		return nil, apperr.RateLimited(int(SignupThrottleWindow / time.Second))
	}

	// Resolve the identity pair against existing accounts
	existing, err := service.userRepository.FindByUsername(context, input.Username)
	switch {
	case err == nil && existing.Email == input.Email:
		// Exact pair already known: re-issue a fresh code
		return service.issueConfirmationCode(context, existing)

	case err == nil:
		// Username bound to a different email
		return nil, validate.FieldFailure(FieldUsername, "Username is already taken")
	}

	if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_signup_lookup_failed: %w", err)
	}

	// Username is free; the email must be too
	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, validate.FieldFailure(FieldEmail, "Email is already registered")
	} else if !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("auth_service_signup_email_lookup_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("auth_service_signup_id_failed: %w", err)
	}

	user := &User{
		ID:       id.String(),
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_signup_create_failed: %w", err)
	}

	return service.issueConfirmationCode(context, user)
}

/*
issueConfirmationCode generates, persists, and delivers a confirmation code.

Description: Only the bcrypt hash touches the database; the plain code exists
solely in the outbound email. Delivery runs fire-and-forget so a slow SMTP
relay never blocks the request.

Parameters:
  - context: context.Context
  - user: *User

Returns:
  - *SignupResult: Echo of the accepted pair
  - err: Generation or persistence failures
*/
func (service *Service) issueConfirmationCode(context context.Context, user *User) (*SignupResult, error) {

	code, err := sec.GenerateSecureCode(ConfirmationCodeLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_generation_failed: %w", err)
	}

	hash, err := sec.HashCode(code)
	if err != nil {
		return nil, fmt.Errorf("auth_service_code_hash_failed: %w", err)
	}

	if err := service.userRepository.SetConfirmationHash(context, user.ID, hash); err != nil {
		return nil, fmt.Errorf("auth_service_code_persist_failed: %w", err)
	}

	// Fire-and-forget delivery: a send failure is logged, never propagated.
	go func(to, username, code string) {
		message := mail.Message{
			To:      to,
			Subject: "Your Scorebook confirmation code",
			Body: fmt.Sprintf(
				"Hello %s,\n\nYour confirmation code is:\n\n%s\n\nExchange it at POST /api/v1/auth/token to receive an access token.\n",
				username, code,
			),
		}
		if err := service.mailer.Send(message); err != nil {
			service.logger.Error("confirmation_email_failed",
				slog.String("email", to),
				slog.Any("error", err),
			)
		}
	}(user.Email, user.Username, code)

	return &SignupResult{Email: user.Email, Username: user.Username}, nil
}

// # Token Issuance

// TokenInput holds the credentials exchanged for an access token.
type TokenInput struct {
	Username         string
	ConfirmationCode string
}

// TokenResult carries the issued JWT access token.
type TokenResult struct {
	Token string `json:"token"`
}

/*
IssueToken exchanges a confirmation code for a JWT access token.

Description: Verifies the code against the stored bcrypt hash using
constant-time comparison. An unknown username is NotFound; a wrong code for a
known username is a field-level validation failure. The code stays valid after
use, so the same email can mint tokens on several devices.

Parameters:
  - context: context.Context
  - input: TokenInput

Returns:
  - *TokenResult: Signed JWT
  - err: NotFound, validation, or signing failures
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (*TokenResult, error) {

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("auth_service_token_lookup_failed: %w", err)
	}

	// An account that never received a code has an empty hash; treat it the
	// same as a wrong code.
	if user.ConfirmationHash == "" || !sec.CheckCodeHash(input.ConfirmationCode, user.ConfirmationHash) {
		return nil, validate.FieldFailure(FieldConfirmationCode, "Confirmation code is invalid")
	}

	token, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, string(user.Role), user.IsSuperuser, AccessTokenTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &TokenResult{Token: token}, nil
}
