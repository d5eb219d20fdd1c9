package subscription

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL subscription store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// UpsertByEmail inserts or refreshes a subscription keyed by email.
func (store *PostgresStore) UpsertByEmail(ctx context.Context, subscription *Subscription) (*upsert.Result, error) {
	const query = `
		INSERT INTO market.subscription (id, email, details, createdat, updatedat)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (email) DO UPDATE
		SET details = EXCLUDED.details, updatedat = now()
		RETURNING id, (xmax = 0) AS created`

	if subscription.Details == nil {
		subscription.Details = map[string]any{}
	}

	result := &upsert.Result{}
	err := store.pool.QueryRow(ctx, query, identifier.New(), subscription.Email, subscription.Details).
		Scan(&result.ID, &result.Created)
	if err != nil {
		return nil, dberr.Wrap(err, "subscription_upsert_by_email")
	}

	return result, nil
}

// List returns every subscription, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]*Subscription, error) {
	const query = `
		SELECT id, email, details, createdat, updatedat
		FROM market.subscription
		ORDER BY createdat DESC`

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "subscription_list")
	}
	defer rows.Close()

	var subscriptions []*Subscription
	for rows.Next() {
		subscription := &Subscription{}
		if err := rows.Scan(
			&subscription.ID,
			&subscription.Email,
			&subscription.Details,
			&subscription.CreatedAt,
			&subscription.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "subscription_scan")
		}
		subscriptions = append(subscriptions, subscription)
	}

	return subscriptions, rows.Err()
}
