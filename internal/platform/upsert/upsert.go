// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

// Package upsert defines the uniform outcome type for idempotent
// "insert if absent, else merge fields" writes.
//
// # Pattern
//
// Every resource family keyed by a natural identifier (identities by email,
// subscriptions by email, reports by reporter, wishlist updates by owner and
// product name) persists through a single atomic `INSERT ... ON CONFLICT`
// statement and reports its outcome as a [Result]. Separate lookup-then-write
// steps in application code are banned: two concurrent identical requests
// must converge to one record.
package upsert

// Result is the outcome of an upsert-by-key operation.
type Result struct {
	// ID is the identifier of the surviving record.
	ID string `json:"id"`

	// Created reports whether this call inserted a new record (true) or
	// merged fields into an existing one (false).
	Created bool `json:"created"`
}
