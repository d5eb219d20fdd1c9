// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

/*
Package wishlist links buyers to products they want to watch.

# Dedup Guard

Adding a product runs a fixed pipeline: reference format check, product
existence check, then one atomic conditional insert. A duplicate add is not
an error; the outcome reports whether a row was created so that clients and
retries converge on the same state.
*/
package wishlist

import "time"

// Entry is one owner-to-product link.
type Entry struct {
	ID          string         `json:"id"`
	OwnerEmail  string         `json:"owner_email"`
	ProductID   string         `json:"product_id,omitempty"`
	ProductName string         `json:"product_name,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AddOutcome reports the result of a relationship add. Created is false when
// the link already existed; that is a success, not an error.
type AddOutcome struct {
	EntryID string `json:"entry_id,omitempty"`
	Created bool   `json:"created"`
}

// Field names shared by validation and JSON payloads.
const (
	FieldID          = "id"
	FieldOwnerEmail  = "email"
	FieldProductName = "product_name"
)
