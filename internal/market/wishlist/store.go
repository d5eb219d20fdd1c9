// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package wishlist

import (
	"context"

	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// ProductFinder is the read-only slice of the catalog the dedup guard needs.
type ProductFinder interface {
	// Exists reports whether a product with the given id exists.
	Exists(ctx context.Context, id string) (bool, error)
}

// Store defines the persistence contract for wishlist entries.
//
// # Atomicity
//
// AddOnce and UpsertByName must each be a single atomic conditional write so
// that concurrent duplicate requests leave exactly one row. A check followed
// by a separate insert is not acceptable here.
type Store interface {
	// AddOnce inserts the (owner, product) link if it is absent. When the
	// link already exists the call succeeds with Created=false and no row
	// is written.
	AddOnce(ctx context.Context, ownerEmail, productID string) (*AddOutcome, error)

	// UpsertByName inserts or replaces an entry keyed by
	// (owner_email, product_name).
	UpsertByName(ctx context.Context, entry *Entry) (*upsert.Result, error)

	// List returns every wishlist entry.
	List(ctx context.Context) ([]*Entry, error)

	// ListByOwner returns the entries owned by the email.
	ListByOwner(ctx context.Context, ownerEmail string) ([]*Entry, error)

	// DeleteByName removes entries matching the product name.
	DeleteByName(ctx context.Context, productName string) error
}
