// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package sec

// # Actor Roles

// Role represents the authorization level stored on an identity record.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Registered seller awaiting verification
	RoleSeller Role = "seller"

	// Default role for standard registered users
	RoleBuyer Role = "buyer"

	// Identity records created by elevation before self-registration
	RoleUnspecified Role = ""
)

// # Verification Status

const (
	// StatusVerified marks a seller account as verified by an admin.
	StatusVerified = "verified"
)

// Known reports whether the role is one of the defined marketplace roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}
