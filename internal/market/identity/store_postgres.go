// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

// PostgreSQL implementation of the identity [Store].
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/sec"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the identity Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
UpsertByEmail inserts or merges an identity record keyed by email.

Description: A single atomic conditional write. On conflict the JSONB `||`
operator merges the submitted profile over the stored one, so fields the
caller did not name survive. Role and status columns are deliberately
absent from the UPDATE clause.

The `(xmax = 0)` expression distinguishes a fresh insert from a merge:
xmax is zero only for rows created by the current statement.

Parameters:
  - ctx: context.Context
  - email: string (natural key)
  - profile: map[string]any (fields to merge)

Returns:
  - *upsert.Result: surviving record id + created flag
  - error: persistence failures
*/
func (store *PostgresStore) UpsertByEmail(ctx context.Context, email string, profile map[string]any) (*upsert.Result, error) {
	const query = `
		INSERT INTO market.account (id, email, profile, createdat, updatedat)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (email) DO UPDATE
		SET profile = market.account.profile || EXCLUDED.profile,
		    updatedat = now()
		RETURNING id, (xmax = 0) AS created`

	if profile == nil {
		profile = map[string]any{}
	}

	result := &upsert.Result{}
	err := store.pool.QueryRow(ctx, query, identifier.New(), email, profile).
		Scan(&result.ID, &result.Created)
	if err != nil {
		return nil, dberr.Wrap(err, "identity_upsert_by_email")
	}

	return result, nil
}

/*
FindByEmail retrieves an identity record by its unique email address.

Returns:
  - *Identity: Hydrated identity entity
  - error: apperr.NotFound or persistence failures
*/
func (store *PostgresStore) FindByEmail(ctx context.Context, email string) (*Identity, error) {
	const query = `
		SELECT id, COALESCE(email, ''), role, COALESCE(status, ''), profile, createdat, updatedat
		FROM market.account
		WHERE email = $1`

	record := &Identity{}
	err := store.pool.QueryRow(ctx, query, email).Scan(
		&record.ID,
		&record.Email,
		&record.Role,
		&record.Status,
		&record.Profile,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Identity")
		}
		return nil, dberr.Wrap(err, "identity_find_by_email")
	}

	return record, nil
}

/*
RoleByEmail reads the current stored role for an email.

This is the authorization gate's fresh lookup: one SELECT, no writes, never
the token's embedded role.
*/
func (store *PostgresStore) RoleByEmail(ctx context.Context, email string) (sec.Role, error) {
	const query = `SELECT role FROM market.account WHERE email = $1`

	var role sec.Role
	err := store.pool.QueryRow(ctx, query, email).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Identity")
		}
		return "", dberr.Wrap(err, "identity_role_by_email")
	}

	return role, nil
}

// List returns every identity, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]*Identity, error) {
	const query = `
		SELECT id, COALESCE(email, ''), role, COALESCE(status, ''), profile, createdat, updatedat
		FROM market.account
		ORDER BY createdat DESC`

	return store.queryIdentities(ctx, query)
}

// ListByRole returns the identities holding the given role, newest first.
func (store *PostgresStore) ListByRole(ctx context.Context, role sec.Role) ([]*Identity, error) {
	const query = `
		SELECT id, COALESCE(email, ''), role, COALESCE(status, ''), profile, createdat, updatedat
		FROM market.account
		WHERE role = $1
		ORDER BY createdat DESC`

	return store.queryIdentities(ctx, query, role)
}

func (store *PostgresStore) queryIdentities(ctx context.Context, query string, args ...any) ([]*Identity, error) {
	rows, err := store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "identity_list")
	}
	defer rows.Close()

	var records []*Identity
	for rows.Next() {
		record := &Identity{}
		if err := rows.Scan(
			&record.ID,
			&record.Email,
			&record.Role,
			&record.Status,
			&record.Profile,
			&record.CreatedAt,
			&record.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "identity_scan")
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

/*
SetRole sets the role for an identity id with upsert semantics.

Description: When no identity with this id exists, a role-only record is
created (no email, empty profile). This mirrors the insert-if-absent
primitive of the elevation path; [SetRoleExisting] is the strict variant.
*/
func (store *PostgresStore) SetRole(ctx context.Context, id string, role sec.Role) (*upsert.Result, error) {
	const query = `
		INSERT INTO market.account (id, role, profile, createdat, updatedat)
		VALUES ($1, $2, '{}', now(), now())
		ON CONFLICT (id) DO UPDATE
		SET role = EXCLUDED.role, updatedat = now()
		RETURNING id, (xmax = 0) AS created`

	result := &upsert.Result{}
	if err := store.pool.QueryRow(ctx, query, id, role).Scan(&result.ID, &result.Created); err != nil {
		return nil, dberr.Wrap(err, "identity_set_role")
	}
	return result, nil
}

// SetRoleExisting updates the role of an existing identity, or fails with
// apperr.NotFound.
func (store *PostgresStore) SetRoleExisting(ctx context.Context, id string, role sec.Role) error {
	const query = `UPDATE market.account SET role = $2, updatedat = now() WHERE id = $1`

	tag, err := store.pool.Exec(ctx, query, id, role)
	if err != nil {
		return dberr.Wrap(err, "identity_set_role_existing")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Identity")
	}
	return nil
}

// SetStatus sets the verification status with the same upsert semantics as SetRole.
func (store *PostgresStore) SetStatus(ctx context.Context, id string, status string) (*upsert.Result, error) {
	const query = `
		INSERT INTO market.account (id, status, profile, createdat, updatedat)
		VALUES ($1, $2, '{}', now(), now())
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, updatedat = now()
		RETURNING id, (xmax = 0) AS created`

	result := &upsert.Result{}
	if err := store.pool.QueryRow(ctx, query, id, status).Scan(&result.ID, &result.Created); err != nil {
		return nil, dberr.Wrap(err, "identity_set_status")
	}
	return result, nil
}

// SetStatusExisting updates the status of an existing identity only.
func (store *PostgresStore) SetStatusExisting(ctx context.Context, id string, status string) error {
	const query = `UPDATE market.account SET status = $2, updatedat = now() WHERE id = $1`

	tag, err := store.pool.Exec(ctx, query, id, status)
	if err != nil {
		return dberr.Wrap(err, "identity_set_status_existing")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Identity")
	}
	return nil
}

// Delete removes an identity by id.
func (store *PostgresStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM market.account WHERE id = $1`

	if _, err := store.pool.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "identity_delete")
	}
	return nil
}
