// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/middleware"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/validate"
	"github.com/lekhoa/reloop/pkg/pagination"
)

// Handler implements catalog HTTP endpoints.
type Handler struct {
	service   *Service
	directory middleware.RoleDirectory
	refFormat identifier.Format
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service, directory middleware.RoleDirectory) *Handler {
	return &Handler{
		service:   service,
		directory: directory,
		refFormat: identifier.Hex24,
	}
}

// CategoryRoutes returns a [chi.Router] for the category endpoints.
//
// # Endpoints
//   - GET    /               : Public category listing.
//   - GET    /{id}/products  : Public products-in-category listing.
//   - POST   /               : Admin create.
//   - DELETE /{id}           : Admin delete.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{id}/products", handler.productsInCategory)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.directory))
		r.Post("/", handler.createCategory)
		r.Delete("/{id}", handler.deleteCategory)
	})

	return router
}

// ProductRoutes returns a [chi.Router] for the product endpoints.
//
// # Endpoints
//   - POST   /                 : Public create (sellers list directly).
//   - GET    /                 : Public listing.
//   - GET    /advertised       : Public advertised listing.
//   - GET    /brand/{brand}    : Public listing by brand.
//   - GET    /seller/{email}   : Owner-only seller listing.
//   - PUT    /{id}/advertise   : Authenticated advertise flag (idempotent).
//   - DELETE /{id}             : Admin delete.
func (handler *Handler) ProductRoutes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createProduct)
	router.Get("/", handler.listProducts)
	router.Get("/advertised", handler.advertisedProducts)
	router.Get("/brand/{brand}", handler.productsByBrand)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSelf("email"))
		r.Get("/seller/{email}", handler.productsBySeller)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Put("/{id}/advertise", handler.advertise)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.directory))
		r.Delete("/{id}", handler.deleteProduct)
	})

	return router
}

// # Category handlers

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var category Category
	if err := requestutil.DecodeJSON(request, &category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 120)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateCategory(request.Context(), &category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Successfully created category")
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories, "Successfully found all categories")
}

func (handler *Handler) productsInCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	products, err := handler.service.ProductsInCategory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products, "Successfully found products in category")
}

func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Successfully deleted category")
}

// # Product handlers

func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var product Product
	if err := requestutil.DecodeJSON(request, &product); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldName, product.Name).
		MaxLen(FieldName, product.Name, 200).
		Required(FieldSellerEmail, product.SellerEmail).
		Email(FieldSellerEmail, product.SellerEmail).
		RefID(FieldCategoryID, product.CategoryID, handler.refFormat).
		Custom(FieldPrice, product.Price < 0, "Must not be negative")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateProduct(request.Context(), &product)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created, "Successfully created product")
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)

	products, meta, err := handler.service.ListProducts(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"items": products,
		"meta":  meta,
	}, "Successfully found all products")
}

func (handler *Handler) advertisedProducts(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.AdvertisedProducts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products, "Successfully found advertised products")
}

func (handler *Handler) productsByBrand(writer http.ResponseWriter, request *http.Request) {
	brand := requestutil.Param(request, FieldBrand)

	products, err := handler.service.ProductsByBrand(request.Context(), brand)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products, "Successfully found products by brand")
}

func (handler *Handler) productsBySeller(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, "email")

	products, err := handler.service.ProductsBySeller(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products, "Successfully found seller products")
}

func (handler *Handler) advertise(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Advertise(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Successfully advertised product")
}

func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteProduct(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Successfully deleted product")
}
