// Copyright (c) 2026 Scorebook. All rights reserved.
// Author: duong.vq.dev@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
//
// Roles are flat string values with derived capability predicates — there is
// no numeric hierarchy. The admin capability additionally honors the
// account-level superuser flag.
type UserRole string

const (
	// Unrestricted content and user management
	RoleAdmin UserRole = "admin"

	// Can edit or remove any review and comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// Valid reports whether r is one of the three recognized roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	default:
		return false
	}
}

// # Capability Predicates

// HasAdminCapability reports whether an identity may perform admin-gated
// actions: either the role is admin or the superuser flag is set.
func HasAdminCapability(role UserRole, superuser bool) bool {
	return role == RoleAdmin || superuser
}

// HasModeratorCapability reports whether an identity may moderate
// user-generated content. Admin capability does NOT imply this predicate;
// callers that accept either must check both.
func HasModeratorCapability(role UserRole) bool {
	return role == RoleModerator
}
