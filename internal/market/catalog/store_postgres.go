// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/dberr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/pkg/pagination"
)

// PostgresCategoryStore implements [CategoryStore] using pgx.
type PostgresCategoryStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryStore creates the PostgreSQL category store.
func NewPostgresCategoryStore(pool *pgxpool.Pool) *PostgresCategoryStore {
	return &PostgresCategoryStore{pool: pool}
}

// Insert creates a category with a generated id.
func (store *PostgresCategoryStore) Insert(ctx context.Context, category *Category) (*Category, error) {
	const query = `
		INSERT INTO market.category (id, name, details, createdat)
		VALUES ($1, $2, $3, now())
		RETURNING id, createdat`

	if category.Details == nil {
		category.Details = map[string]any{}
	}

	err := store.pool.QueryRow(ctx, query, identifier.New(), category.Name, category.Details).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "category_insert")
	}

	return category, nil
}

// List returns every category, newest first.
func (store *PostgresCategoryStore) List(ctx context.Context) ([]*Category, error) {
	const query = `
		SELECT id, name, details, createdat
		FROM market.category
		ORDER BY createdat DESC`

	rows, err := store.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "category_list")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		if err := rows.Scan(&category.ID, &category.Name, &category.Details, &category.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "category_scan")
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Delete removes a category by id.
func (store *PostgresCategoryStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM market.category WHERE id = $1`

	if _, err := store.pool.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "category_delete")
	}
	return nil
}

// PostgresProductStore implements [ProductStore] using pgx.
type PostgresProductStore struct {
	pool *pgxpool.Pool
}

// NewPostgresProductStore creates the PostgreSQL product store.
func NewPostgresProductStore(pool *pgxpool.Pool) *PostgresProductStore {
	return &PostgresProductStore{pool: pool}
}

const productColumns = `id, category_id, seller_email, name, COALESCE(brand, ''), price, advertised, details, createdat, updatedat`

// Insert creates a product with a generated id.
func (store *PostgresProductStore) Insert(ctx context.Context, product *Product) (*Product, error) {
	const query = `
		INSERT INTO market.product (id, category_id, seller_email, name, brand, price, advertised, details, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, false, $7, now(), now())
		RETURNING id, createdat, updatedat`

	if product.Details == nil {
		product.Details = map[string]any{}
	}

	err := store.pool.QueryRow(ctx, query,
		identifier.New(),
		product.CategoryID,
		product.SellerEmail,
		product.Name,
		product.Brand,
		product.Price,
		product.Details,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "product_insert")
	}

	product.Advertised = false
	return product, nil
}

// Exists reports whether a product id is present.
func (store *PostgresProductStore) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM market.product WHERE id = $1)`

	var exists bool
	if err := store.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "product_exists")
	}
	return exists, nil
}

// List returns one page of products, newest first, plus the total count.
func (store *PostgresProductStore) List(ctx context.Context, params pagination.Params) ([]*Product, int, error) {
	const countQuery = `SELECT count(*) FROM market.product`

	var total int
	if err := store.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "product_count")
	}

	products, err := store.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM market.product
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// ListAdvertised returns products flagged for advertising.
func (store *PostgresProductStore) ListAdvertised(ctx context.Context) ([]*Product, error) {
	return store.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM market.product
		WHERE advertised
		ORDER BY updatedat DESC`)
}

// ListByBrand returns products matching the brand.
func (store *PostgresProductStore) ListByBrand(ctx context.Context, brand string) ([]*Product, error) {
	return store.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM market.product
		WHERE brand = $1
		ORDER BY createdat DESC`, brand)
}

// ListBySeller returns products listed by the seller email.
func (store *PostgresProductStore) ListBySeller(ctx context.Context, sellerEmail string) ([]*Product, error) {
	return store.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM market.product
		WHERE seller_email = $1
		ORDER BY createdat DESC`, sellerEmail)
}

// ListByCategory returns products within a category.
func (store *PostgresProductStore) ListByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	return store.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM market.product
		WHERE category_id = $1
		ORDER BY createdat DESC`, categoryID)
}

func (store *PostgresProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]*Product, error) {
	rows, err := store.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "product_list")
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product := &Product{}
		if err := rows.Scan(
			&product.ID,
			&product.CategoryID,
			&product.SellerEmail,
			&product.Name,
			&product.Brand,
			&product.Price,
			&product.Advertised,
			&product.Details,
			&product.CreatedAt,
			&product.UpdatedAt,
		); err != nil {
			return nil, dberr.Wrap(err, "product_scan")
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

// MarkAdvertised flags an existing product as advertised. Re-flagging is a
// no-op success; Postgres still reports the row as affected, so only an
// unknown id yields a zero row count.
func (store *PostgresProductStore) MarkAdvertised(ctx context.Context, id string) error {
	const query = `UPDATE market.product SET advertised = true, updatedat = now() WHERE id = $1`

	tag, err := store.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "product_mark_advertised")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}
	return nil
}

// Delete removes a product by id.
func (store *PostgresProductStore) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM market.product WHERE id = $1`

	if _, err := store.pool.Exec(ctx, query, id); err != nil {
		return dberr.Wrap(err, "product_delete")
	}
	return nil
}
