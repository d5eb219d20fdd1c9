// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

/*
Package catalog holds the product listings and the categories they live in.

Categories are a small admin-curated set. Products are listed by sellers and
carry a free-form details document next to the few columns the platform
queries on (brand, seller, category, advertised flag).
*/
package catalog

import "time"

// Category groups products for browsing.
type Category struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Product is a single listed item.
type Product struct {
	ID          string         `json:"id"`
	CategoryID  string         `json:"category_id"`
	SellerEmail string         `json:"seller_email"`
	Name        string         `json:"name"`
	Brand       string         `json:"brand,omitempty"`
	Price       float64        `json:"price"`
	Advertised  bool           `json:"advertised"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Field names shared by validation and JSON payloads.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldBrand       = "brand"
	FieldPrice       = "price"
	FieldCategoryID  = "category_id"
	FieldSellerEmail = "seller_email"
)
