// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

/*
Package permission implements the authorization rules for the Scorebook API.

Rules are pure predicates over (identity, HTTP method, optional target) and
come in two independent flavors:

  - Request-level rules run in middleware BEFORE any data is loaded. They
    fail fast and avoid unnecessary storage lookups.
  - Object-level rules run in the service layer AFTER the target entity is
    resolved, because authorship can only be known once the target exists.

Both levels must pass for a mutation to proceed. A failing rule yields
[apperr.Unauthorized] (no identity) or [apperr.Forbidden] (identity present
but insufficient), never a silent denial.
*/
package permission

import (
	"net/http"

	"github.com/vqduong/scorebook/internal/platform/apperr"
	"github.com/vqduong/scorebook/internal/platform/sec"
)

// RequestRule is a request-level authorization predicate, evaluated before
// the target object (if any) is loaded.
type RequestRule func(claims *sec.AuthClaims, method string) error

// IsSafeMethod reports whether method is a read-only HTTP method.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	default:
		return false
	}
}

// # Request-Level Rules

// ReadOnlyOrAuthenticated passes safe methods unconditionally; unsafe methods
// require any authenticated identity. Used for review and comment routes,
// where ownership is checked separately per object.
func ReadOnlyOrAuthenticated(claims *sec.AuthClaims, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	return nil
}

// AdminOrReadOnly passes safe methods unconditionally; unsafe methods require
// admin capability. Used for category, genre and title mutation.
func AdminOrReadOnly(claims *sec.AuthClaims, method string) error {
	if IsSafeMethod(method) {
		return nil
	}
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !claims.HasAdminCapability() {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}

// AuthenticatedAdminOnly requires an authenticated identity with admin
// capability for every method, including reads. Used for the user-management
// collection.
func AuthenticatedAdminOnly(claims *sec.AuthClaims, method string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if !claims.HasAdminCapability() {
		return apperr.Forbidden("Admin access required")
	}
	return nil
}

// # Object-Level Rules

// AuthorStaffOrReadOnly passes safe methods unconditionally; unsafe methods
// pass only for the object's author, moderators, or identities with admin
// capability. This is the only rule checked per-object rather than
// per-request: the author is unknown until the target is resolved.
func AuthorStaffOrReadOnly(claims *sec.AuthClaims, method, authorID string) error {
	if IsSafeMethod(method) {
		return nil
	}
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if claims.UserID == authorID || claims.HasAdminCapability() || claims.HasModeratorCapability() {
		return nil
	}
	return apperr.Forbidden("You may only modify your own content")
}

// SelfOrAdmin passes when the identity targets its own user record or holds
// admin capability. Used for the /users/me profile path.
func SelfOrAdmin(claims *sec.AuthClaims, targetUserID string) error {
	if claims == nil {
		return apperr.Unauthorized("Authentication required")
	}
	if claims.UserID == targetUserID || claims.HasAdminCapability() {
		return nil
	}
	return apperr.Forbidden("You may only access your own profile")
}
