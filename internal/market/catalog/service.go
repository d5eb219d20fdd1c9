// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lekhoa/reloop/pkg/pagination"
)

// Service implements catalog use cases over the category and product stores.
type Service struct {
	categories CategoryStore
	products   ProductStore
	logger     *slog.Logger
}

// NewService constructs a new catalog [Service] with its dependencies.
func NewService(categories CategoryStore, products ProductStore, logger *slog.Logger) *Service {
	return &Service{
		categories: categories,
		products:   products,
		logger:     logger,
	}
}

// # Categories

// CreateCategory inserts a new category.
func (service *Service) CreateCategory(ctx context.Context, category *Category) (*Category, error) {
	created, err := service.categories.Insert(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_create_category_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "category_created", slog.String("category_id", created.ID))
	return created, nil
}

// ListCategories returns every category.
func (service *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return service.categories.List(ctx)
}

// DeleteCategory removes a category by id.
func (service *Service) DeleteCategory(ctx context.Context, id string) error {
	return service.categories.Delete(ctx, id)
}

// # Products

// CreateProduct inserts a new product listing. Listings start unadvertised.
func (service *Service) CreateProduct(ctx context.Context, product *Product) (*Product, error) {
	created, err := service.products.Insert(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("catalog_service_create_product_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "product_created",
		slog.String("product_id", created.ID),
		slog.String("seller_email", created.SellerEmail),
	)
	return created, nil
}

// ListProducts returns one page of products with pagination metadata.
func (service *Service) ListProducts(ctx context.Context, params pagination.Params) ([]*Product, pagination.Meta, error) {
	products, total, err := service.products.List(ctx, params)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return products, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// AdvertisedProducts returns products flagged for advertising.
func (service *Service) AdvertisedProducts(ctx context.Context) ([]*Product, error) {
	return service.products.ListAdvertised(ctx)
}

// ProductsByBrand returns products matching a brand.
func (service *Service) ProductsByBrand(ctx context.Context, brand string) ([]*Product, error) {
	return service.products.ListByBrand(ctx, brand)
}

// ProductsBySeller returns a seller's listings.
func (service *Service) ProductsBySeller(ctx context.Context, sellerEmail string) ([]*Product, error) {
	return service.products.ListBySeller(ctx, sellerEmail)
}

// ProductsInCategory returns products within a category.
func (service *Service) ProductsInCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	return service.products.ListByCategory(ctx, categoryID)
}

// Advertise flags a product as advertised. Idempotent: re-flagging an
// already-advertised listing succeeds without change.
func (service *Service) Advertise(ctx context.Context, id string) error {
	if err := service.products.MarkAdvertised(ctx, id); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "product_advertised", slog.String("product_id", id))
	return nil
}

// DeleteProduct removes a product by id.
func (service *Service) DeleteProduct(ctx context.Context, id string) error {
	return service.products.Delete(ctx, id)
}
