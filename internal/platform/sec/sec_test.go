// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vqduong/scorebook/internal/platform/sec"
)

/*
TestTokenService_RoundTrip verifies that a generated access token carries all
identity claims back through verification.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service := sec.NewTokenServiceFromKeys(privateKey, "scorebook.app")

	token, err := service.GenerateAccessToken("u-1", "duong", "moderator", false, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "duong", claims.Username)
	assert.Equal(t, "moderator", claims.Role)
	assert.False(t, claims.Superuser)
	assert.Equal(t, "scorebook.app", claims.Issuer)
}

/*
TestTokenService_RejectsExpired verifies expired tokens fail verification.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service := sec.NewTokenServiceFromKeys(privateKey, "scorebook.app")

	token, err := service.GenerateAccessToken("u-1", "duong", "user", false, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsForeignKey verifies tokens signed with a different key
are rejected.
*/
func TestTokenService_RejectsForeignKey(t *testing.T) {
	keyA, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	keyB, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signer := sec.NewTokenServiceFromKeys(keyA, "scorebook.app")
	verifier := sec.NewTokenServiceFromKeys(keyB, "scorebook.app")

	token, err := signer.GenerateAccessToken("u-1", "duong", "user", false, time.Hour)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestConfirmationCode_HashAndCheck verifies the bcrypt hash round trip for
confirmation codes.
*/
func TestConfirmationCode_HashAndCheck(t *testing.T) {
	code, err := sec.GenerateSecureCode(24)
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	hash, err := sec.HashCode(code)
	require.NoError(t, err)
	assert.NotEqual(t, code, hash)

	assert.True(t, sec.CheckCodeHash(code, hash))
	assert.False(t, sec.CheckCodeHash("wrong-code", hash))
}

/*
TestUserRole_Capabilities verifies the capability predicates stay disjoint:
moderator capability never follows from the admin role.
*/
func TestUserRole_Capabilities(t *testing.T) {
	assert.True(t, sec.HasAdminCapability(sec.RoleAdmin, false))
	assert.True(t, sec.HasAdminCapability(sec.RoleUser, true))
	assert.False(t, sec.HasAdminCapability(sec.RoleModerator, false))

	assert.True(t, sec.HasModeratorCapability(sec.RoleModerator))
	assert.False(t, sec.HasModeratorCapability(sec.RoleAdmin))

	assert.True(t, sec.UserRole("admin").Valid())
	assert.False(t, sec.UserRole("owner").Valid())
}
