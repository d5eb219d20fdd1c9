// Package report tracks product reports filed by buyers.
package report

import (
	"context"
	"time"

	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// Report is a product complaint keyed by the reporter's email. A reporter
// has at most one open report; re-filing replaces it.
type Report struct {
	ID            string         `json:"id"`
	ReporterEmail string         `json:"reporter_email"`
	ProductID     string         `json:"product_id,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Store defines the persistence contract for reports.
type Store interface {
	// UpsertByReporter inserts or replaces the report keyed by the
	// reporter email, as one atomic conditional write.
	UpsertByReporter(ctx context.Context, report *Report) (*upsert.Result, error)

	// List returns every report, newest first.
	List(ctx context.Context) ([]*Report, error)
}
