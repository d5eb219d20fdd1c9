// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package identity

import (
	"context"

	"github.com/lekhoa/reloop/internal/platform/sec"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// Store defines the persistence contract for identities.
//
// # Atomicity
//
// UpsertByEmail, SetRole, and SetStatus must each be a single atomic
// conditional write keyed by the natural key, never a lookup followed by a
// separate write, so that concurrent identical requests converge to one
// record.
type Store interface {
	// UpsertByEmail inserts a new identity for email, or merges profile
	// fields into the existing one. Fields not named in profile survive.
	// Role and status are never touched by this operation.
	UpsertByEmail(ctx context.Context, email string, profile map[string]any) (*upsert.Result, error)

	// FindByEmail returns the identity for email, or apperr.NotFound.
	FindByEmail(ctx context.Context, email string) (*Identity, error)

	// RoleByEmail returns the CURRENT stored role for email, or
	// apperr.NotFound. This is the single read the authorization gate
	// performs per request.
	RoleByEmail(ctx context.Context, email string) (sec.Role, error)

	// List returns every identity.
	List(ctx context.Context) ([]*Identity, error)

	// ListByRole returns the identities holding the given role.
	ListByRole(ctx context.Context, role sec.Role) ([]*Identity, error)

	// SetRole sets the role for the identity id, creating a role-only
	// record when id is absent (upsert semantics).
	SetRole(ctx context.Context, id string, role sec.Role) (*upsert.Result, error)

	// SetRoleExisting sets the role for an EXISTING identity id, failing
	// with apperr.NotFound when there is none (exact-match semantics).
	SetRoleExisting(ctx context.Context, id string, role sec.Role) error

	// SetStatus sets the verification status, upsert semantics like SetRole.
	SetStatus(ctx context.Context, id string, status string) (*upsert.Result, error)

	// SetStatusExisting sets the status for an existing identity only.
	SetStatusExisting(ctx context.Context, id string, status string) error

	// Delete removes the identity with the given id.
	Delete(ctx context.Context, id string) error
}
