package order

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
)

// PostgresStore implements [Store] using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the PostgreSQL order store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Insert creates an order with a generated id.
func (store *PostgresStore) Insert(ctx context.Context, order *Order) (*Order, error) {
	const query = `
		INSERT INTO market.purchase_order (id, buyer_email, product_id, details, createdat)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, createdat`

	if order.Details == nil {
		order.Details = map[string]any{}
	}

	err := store.pool.QueryRow(ctx, query,
		identifier.New(),
		order.BuyerEmail,
		order.ProductID,
		order.Details,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "order_insert")
	}

	return order, nil
}

// List returns every order, newest first.
func (store *PostgresStore) List(ctx context.Context) ([]*Order, error) {
	return store.queryOrders(ctx, `
		SELECT id, buyer_email, product_id, details, createdat
		FROM market.purchase_order
		ORDER BY createdat DESC`)
}

// ListByBuyer returns the orders placed by the buyer email, newest first.
func (store *PostgresStore) ListByBuyer(ctx context.Context, buyerEmail string) ([]*Order, error) {
	return store.queryOrders(ctx, `
		SELECT id, buyer_email, product_id, details, createdat
		FROM market.purchase_order
		WHERE buyer_email = $1
		ORDER BY createdat DESC`, buyerEmail)
}

func (store *PostgresStore) queryOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	rows, err := store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "order_list")
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order := &Order{}
		if err := rows.Scan(&order.ID, &order.BuyerEmail, &order.ProductID, &order.Details, &order.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "order_scan")
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
