// Package subscription manages the marketing mailing list.
package subscription

import (
	"context"
	"time"

	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// Subscription is one mailing-list membership keyed by email.
type Subscription struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Store defines the persistence contract for subscriptions.
type Store interface {
	// UpsertByEmail inserts or refreshes a subscription keyed by email,
	// as one atomic conditional write. Double-subscribing converges on
	// a single row.
	UpsertByEmail(ctx context.Context, subscription *Subscription) (*upsert.Result, error)

	// List returns every subscription, newest first.
	List(ctx context.Context) ([]*Subscription, error)
}
