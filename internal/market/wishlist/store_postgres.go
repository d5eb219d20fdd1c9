// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package wishlist

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL wishlist store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
AddOnce inserts the (owner, product) link if absent.

Description: The unique (owner_email, product_id) index backs a single
conditional insert. ON CONFLICT DO NOTHING returns no row for a duplicate,
which surfaces here as pgx.ErrNoRows and becomes Created=false. Two
concurrent adds of the same pair therefore race inside Postgres, not in
application code, and exactly one wins.
*/
func (store *PostgresStore) AddOnce(ctx context.Context, ownerEmail, productID string) (*AddOutcome, error) {
	const query = `
		INSERT INTO market.wishlist_entry (id, owner_email, product_id, details, createdat, updatedat)
		VALUES ($1, $2, $3, '{}', now(), now())
		ON CONFLICT (owner_email, product_id) DO NOTHING
		RETURNING id`

	outcome := &AddOutcome{}
	err := store.pool.QueryRow(ctx, query, identifier.New(), ownerEmail, productID).
		Scan(&outcome.EntryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &AddOutcome{Created: false}, nil
		}
		return nil, dberr.Wrap(err, "wishlist_add_once")
	}

	outcome.Created = true
	return outcome, nil
}

/*
UpsertByName inserts or replaces an entry keyed by (owner_email, product_name).

On conflict the details document is replaced wholesale and product_id is
carried over when the caller supplies one.
*/
func (store *PostgresStore) UpsertByName(ctx context.Context, entry *Entry) (*upsert.Result, error) {
	const query = `
		INSERT INTO market.wishlist_entry (id, owner_email, product_id, product_name, details, createdat, updatedat)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, now(), now())
		ON CONFLICT (owner_email, product_name) DO UPDATE
		SET details = EXCLUDED.details,
		    product_id = COALESCE(EXCLUDED.product_id, market.wishlist_entry.product_id),
		    updatedat = now()
		RETURNING id, (xmax = 0) AS created`

	if entry.Details == nil {
		entry.Details = map[string]any{}
	}

	result := &upsert.Result{}
	err := store.pool.QueryRow(ctx, query,
		identifier.New(),
		entry.OwnerEmail,
		entry.ProductID,
		entry.ProductName,
		entry.Details,
	).Scan(&result.ID, &result.Created)
	if err != nil {
		return nil, dberr.Wrap(err, "wishlist_upsert_by_name")
	}

	return result, nil
}

const entryColumns = `id, owner_email, COALESCE(product_id, ''), COALESCE(product_name, ''), details, createdat, updatedat`

// List returns every wishlist entry, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]*Entry, error) {
	return store.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM market.wishlist_entry
		ORDER BY createdat DESC`)
}

// ListByOwner returns the entries owned by the email, newest first.
func (store *PostgresStore) ListByOwner(ctx context.Context, ownerEmail string) ([]*Entry, error) {
	return store.queryEntries(ctx, `
		SELECT `+entryColumns+`
		FROM market.wishlist_entry
		WHERE owner_email = $1
		ORDER BY createdat DESC`, ownerEmail)
}

func (store *PostgresStore) queryEntries(ctx context.Context, query string, args ...any) ([]*Entry, error) {
	rows, err := store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "wishlist_list")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry := &Entry{}
		if err := rows.Scan(
			&entry.ID,
			&entry.OwnerEmail,
			&entry.ProductID,
			&entry.ProductName,
			&entry.Details,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "wishlist_scan")
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteByName removes entries matching the product name.
func (store *PostgresStore) DeleteByName(ctx context.Context, productName string) error {
	const query = `DELETE FROM market.wishlist_entry WHERE product_name = $1`

	if _, err := store.pool.Exec(ctx, query, productName); err != nil {
		return dberr.Wrap(err, "wishlist_delete_by_name")
	}
	return nil
}
