// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package permission_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/permission"
	"github.com/vqduong/scorebook/internal/platform/sec"
)

func claimsWithRole(role sec.UserRole) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: "u-1", Username: "user", Role: string(role)}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	return ae.HTTPStatus
}

/*
TestAdminOrReadOnly covers the catalog mutation rule: reads pass for anyone,
writes need admin capability.
*/
func TestAdminOrReadOnly(t *testing.T) {
	// 1. Anonymous reads pass
	assert.NoError(t, permission.AdminOrReadOnly(nil, http.MethodGet))

	// 2. Anonymous writes are 401
	err := permission.AdminOrReadOnly(nil, http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	// 3. Regular users and moderators are 403 on writes
	err = permission.AdminOrReadOnly(claimsWithRole(sec.RoleUser), http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	err = permission.AdminOrReadOnly(claimsWithRole(sec.RoleModerator), http.MethodPost)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	// 4. Admin role and the superuser flag both pass
	assert.NoError(t, permission.AdminOrReadOnly(claimsWithRole(sec.RoleAdmin), http.MethodPost))

	superuser := &sec.AuthClaims{UserID: "u-2", Role: string(sec.RoleUser), Superuser: true}
	assert.NoError(t, permission.AdminOrReadOnly(superuser, http.MethodPost))
}

/*
TestReadOnlyOrAuthenticated covers the review subtree rule: any identity may
write, anonymous callers may only read.
*/
func TestReadOnlyOrAuthenticated(t *testing.T) {
	assert.NoError(t, permission.ReadOnlyOrAuthenticated(nil, http.MethodGet))

	err := permission.ReadOnlyOrAuthenticated(nil, http.MethodPost)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	assert.NoError(t, permission.ReadOnlyOrAuthenticated(claimsWithRole(sec.RoleUser), http.MethodPost))
}

/*
TestAuthenticatedAdminOnly covers the user-management rule, which gates reads
as well as writes.
*/
func TestAuthenticatedAdminOnly(t *testing.T) {
	err := permission.AuthenticatedAdminOnly(nil, http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	err = permission.AuthenticatedAdminOnly(claimsWithRole(sec.RoleModerator), http.MethodGet)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	assert.NoError(t, permission.AuthenticatedAdminOnly(claimsWithRole(sec.RoleAdmin), http.MethodGet))
}

/*
TestAuthorStaffOrReadOnly covers the object-level rule used by reviews and
comments.
*/
func TestAuthorStaffOrReadOnly(t *testing.T) {
	const authorID = "u-author"

	// 1. Safe methods pass for anyone
	assert.NoError(t, permission.AuthorStaffOrReadOnly(nil, http.MethodGet, authorID))

	// 2. Anonymous writes are 401
	err := permission.AuthorStaffOrReadOnly(nil, http.MethodPatch, authorID)
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	// 3. A stranger is 403
	stranger := &sec.AuthClaims{UserID: "u-other", Role: string(sec.RoleUser)}
	err = permission.AuthorStaffOrReadOnly(stranger, http.MethodDelete, authorID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	// 4. The author, moderators and admins pass
	author := &sec.AuthClaims{UserID: authorID, Role: string(sec.RoleUser)}
	assert.NoError(t, permission.AuthorStaffOrReadOnly(author, http.MethodPatch, authorID))

	assert.NoError(t, permission.AuthorStaffOrReadOnly(claimsWithRole(sec.RoleModerator), http.MethodDelete, authorID))
	assert.NoError(t, permission.AuthorStaffOrReadOnly(claimsWithRole(sec.RoleAdmin), http.MethodDelete, authorID))
}

/*
TestSelfOrAdmin covers the profile access rule.
*/
func TestSelfOrAdmin(t *testing.T) {
	self := &sec.AuthClaims{UserID: "u-1", Role: string(sec.RoleUser)}

	assert.NoError(t, permission.SelfOrAdmin(self, "u-1"))

	err := permission.SelfOrAdmin(self, "u-2")
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	assert.NoError(t, permission.SelfOrAdmin(claimsWithRole(sec.RoleAdmin), "u-2"))
}
