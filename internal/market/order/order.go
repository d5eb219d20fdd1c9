// Package order records purchases placed by buyers.
package order

import (
	"context"
	"time"
)

// Order is a single purchase record.
type Order struct {
	ID         string         `json:"id"`
	BuyerEmail string         `json:"buyer_email"`
	ProductID  string         `json:"product_id"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Store defines the persistence contract for orders.
type Store interface {
	// Insert creates a new order and returns it with its generated id.
	Insert(ctx context.Context, order *Order) (*Order, error)

	// List returns every order, newest first.
	List(ctx context.Context) ([]*Order, error)

	// ListByBuyer returns the orders placed by the buyer email.
	ListByBuyer(ctx context.Context, buyerEmail string) ([]*Order, error)
}
