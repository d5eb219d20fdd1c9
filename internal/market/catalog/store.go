// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package catalog

import (
	"context"

	"github.com/lekhoa/reloop/pkg/pagination"
)

// CategoryStore defines the persistence contract for categories.
type CategoryStore interface {
	// Insert creates a new category and returns it with its generated id.
	Insert(ctx context.Context, category *Category) (*Category, error)

	// List returns every category, newest first.
	List(ctx context.Context) ([]*Category, error)

	// Delete removes the category with the given id.
	Delete(ctx context.Context, id string) error
}

// ProductStore defines the persistence contract for products.
type ProductStore interface {
	// Insert creates a new product and returns it with its generated id.
	Insert(ctx context.Context, product *Product) (*Product, error)

	// Exists reports whether a product with the given id exists. Used by
	// referencing domains to validate foreign ids before linking to them.
	Exists(ctx context.Context, id string) (bool, error)

	// List returns one page of products, newest first, plus the total count.
	List(ctx context.Context, params pagination.Params) ([]*Product, int, error)

	// ListAdvertised returns products currently flagged for advertising.
	ListAdvertised(ctx context.Context) ([]*Product, error)

	// ListByBrand returns products matching the brand.
	ListByBrand(ctx context.Context, brand string) ([]*Product, error)

	// ListBySeller returns products listed by the seller email.
	ListBySeller(ctx context.Context, sellerEmail string) ([]*Product, error)

	// ListByCategory returns products within a category.
	ListByCategory(ctx context.Context, categoryID string) ([]*Product, error)

	// MarkAdvertised flags an existing product as advertised. Flagging an
	// already-advertised product is a no-op success; an unknown id fails
	// with apperr.NotFound.
	MarkAdvertised(ctx context.Context, id string) error

	// Delete removes the product with the given id.
	Delete(ctx context.Context, id string) error
}
