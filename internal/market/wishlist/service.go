// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package wishlist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// Service implements wishlist use cases, centered on the dedup-guarded Add.
type Service struct {
	store     Store
	products  ProductFinder
	refFormat identifier.Format
	logger    *slog.Logger
}

// NewService constructs a new wishlist [Service] with its dependencies.
func NewService(store Store, products ProductFinder, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		products:  products,
		refFormat: identifier.Hex24,
		logger:    logger,
	}
}

/*
Add links a product to the owner's wishlist.

Description: The pipeline order is fixed and observable through the error
taxonomy:

 1. Reference format check. A malformed product id fails with
    INVALID_REFERENCE before any store is touched.
 2. Product existence check. A well-formed id with no product fails with
    REFERENCE_NOT_FOUND.
 3. Atomic conditional insert. A duplicate link is a no-op success with
    Created=false; a fresh link reports Created=true and the new entry id.

Parameters:
  - ctx: context.Context
  - ownerEmail: string (authenticated owner)
  - productID: string (untrusted reference)

Returns:
  - *AddOutcome: created flag plus the entry id for fresh links
  - error: taxonomy-tagged reference or persistence failures
*/
func (service *Service) Add(ctx context.Context, ownerEmail, productID string) (*AddOutcome, error) {
	if !service.refFormat.Valid(productID) {
		return nil, apperr.InvalidReference(fmt.Sprintf("Product id must be %s", service.refFormat.Describe()))
	}

	exists, err := service.products.Exists(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("wishlist_service_product_lookup_failed: %w", err)
	}
	if !exists {
		return nil, apperr.ReferenceNotFound("Product")
	}

	outcome, err := service.store.AddOnce(ctx, ownerEmail, productID)
	if err != nil {
		return nil, fmt.Errorf("wishlist_service_add_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "wishlist_add",
		slog.String("owner_email", ownerEmail),
		slog.String("product_id", productID),
		slog.Bool("created", outcome.Created),
	)
	return outcome, nil
}

// Upsert inserts or replaces an entry keyed by (owner, product name).
func (service *Service) Upsert(ctx context.Context, entry *Entry) (*upsert.Result, error) {
	result, err := service.store.UpsertByName(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("wishlist_service_upsert_failed: %w", err)
	}
	return result, nil
}

// List returns every wishlist entry.
func (service *Service) List(ctx context.Context) ([]*Entry, error) {
	return service.store.List(ctx)
}

// ListByOwner returns the entries owned by the email.
func (service *Service) ListByOwner(ctx context.Context, ownerEmail string) ([]*Entry, error) {
	return service.store.ListByOwner(ctx, ownerEmail)
}

// DeleteByName removes entries matching the product name.
func (service *Service) DeleteByName(ctx context.Context, productName string) error {
	return service.store.DeleteByName(ctx, productName)
}
