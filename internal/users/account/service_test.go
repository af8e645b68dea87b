// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/sec"
	"github.com/vqduong/scorebook/internal/users/account"
	"github.com/vqduong/scorebook/internal/users/auth"
	"github.com/vqduong/scorebook/pkg/pagination"
)

// memoryUserRepo is an in-memory UserRepository for service-level tests.
type memoryUserRepo struct {
	users map[string]*auth.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*auth.User)}
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *memoryUserRepo) Create(_ context.Context, user *auth.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Username or email already exists")
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) Update(_ context.Context, user *auth.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memoryUserRepo) SetConfirmationHash(_ context.Context, userID, hash string) error {
	if user, ok := r.users[userID]; ok {
		user.ConfirmationHash = hash
	}
	return nil
}

func (r *memoryUserRepo) DeleteByUsername(_ context.Context, username string) error {
	for id, user := range r.users {
		if user.Username == username {
			delete(r.users, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

func (r *memoryUserRepo) List(_ context.Context, limit, offset int) ([]auth.User, error) {
	users := make([]auth.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *memoryUserRepo) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

func newService(repo *memoryUserRepo) *account.Service {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return account.NewService(repo, logger)
}

func seedUser(repo *memoryUserRepo, id, username string, role sec.UserRole) {
	repo.users[id] = &auth.User{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}
}

func strPtr(s string) *string { return &s }

// # Tests

/*
TestUpdateMe_RoleRevertedForRegularUser verifies that a regular user patching
their own role is a silent no-op while the rest of the patch applies.
*/
func TestUpdateMe_RoleRevertedForRegularUser(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(repo, "u-bob", "bob", sec.RoleUser)
	service := newService(repo)

	claims := &sec.AuthClaims{UserID: "u-bob", Username: "bob", Role: string(sec.RoleUser)}

	user, err := service.UpdateMe(context.Background(), claims, account.UpdateInput{
		Bio:  strPtr("Reviews enjoyer"),
		Role: strPtr("admin"),
	})

	// The request succeeds, the bio applies, the role does not move
	require.NoError(t, err)
	assert.Equal(t, "Reviews enjoyer", user.Bio)
	assert.Equal(t, sec.RoleUser, user.Role)
}

/*
TestUpdateMe_RoleHonoredForAdmin verifies that admin capability (role or
superuser flag) allows a self-service role change.
*/
func TestUpdateMe_RoleHonoredForAdmin(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(repo, "u-root", "root", sec.RoleUser)
	repo.users["u-root"].IsSuperuser = true
	service := newService(repo)

	claims := &sec.AuthClaims{
		UserID:    "u-root",
		Username:  "root",
		Role:      string(sec.RoleUser),
		Superuser: true,
	}

	user, err := service.UpdateMe(context.Background(), claims, account.UpdateInput{
		Role: strPtr("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)
}

/*
TestCreate_ValidatesRole verifies that provisioning rejects unknown roles and
defaults a missing role to "user".
*/
func TestCreate_ValidatesRole(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo)
	ctx := context.Background()

	// 1. Unknown role is a validation failure
	_, err := service.Create(ctx, account.CreateInput{
		Username: "grace",
		Email:    "grace@example.com",
		Role:     "overlord",
	})
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)

	// 2. Missing role defaults to "user"
	user, err := service.Create(ctx, account.CreateInput{
		Username: "grace",
		Email:    "grace@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.Empty(t, user.ConfirmationHash)
}

/*
TestUpdate_ChangesRoleByUsername verifies the admin path for promoting a user.
*/
func TestUpdate_ChangesRoleByUsername(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(repo, "u-heidi", "heidi", sec.RoleUser)
	service := newService(repo)

	user, err := service.Update(context.Background(), "heidi", account.UpdateInput{
		Role: strPtr("moderator"),
	})

	require.NoError(t, err)
	assert.Equal(t, sec.RoleModerator, user.Role)

	// Unknown username maps to 404
	_, err = service.Update(context.Background(), "nobody", account.UpdateInput{})
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestList_ReturnsMeta verifies pagination metadata on the list endpoint.
*/
func TestList_ReturnsMeta(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUser(repo, "u-1", "alpha", sec.RoleUser)
	seedUser(repo, "u-2", "beta", sec.RoleUser)
	seedUser(repo, "u-3", "gamma", sec.RoleAdmin)
	service := newService(repo)

	users, meta, err := service.List(context.Background(), pagination.Params{Page: 1, Limit: 20})

	require.NoError(t, err)
	assert.Len(t, users, 3)
	assert.Equal(t, 3, meta.Total)
	assert.Equal(t, 1, meta.TotalPages)
}

/*
TestDelete_NotFound verifies deletion of a missing account maps to 404.
*/
func TestDelete_NotFound(t *testing.T) {
	repo := newMemoryUserRepo()
	service := newService(repo)

	err := service.Delete(context.Background(), "ghost")

	assert.True(t, apperr.IsNotFound(err))
}
