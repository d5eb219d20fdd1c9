// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package wishlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/middleware"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/validate"
)

// Handler implements wishlist HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new wishlist [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with wishlist routes.
//
// # Endpoints
//   - POST   /{email}/{id}   : Owner-only dedup-guarded add.
//   - PUT    /{email}        : Owner-only upsert by (email, product name).
//   - GET    /               : Public listing.
//   - GET    /user/{email}   : Owner-only listing.
//   - DELETE /{name}         : Authenticated delete by product name.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireSelf(FieldOwnerEmail))
		r.Post("/{email}/{id}", handler.add)
		r.Put("/{email}", handler.upsert)
		r.Get("/user/{email}", handler.listByOwner)
	})

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Delete("/{name}", handler.removeByName)
	})

	return router
}

/*
add links a product to the owner's wishlist.

POST /api/v1/wishlist/{email}/{id}

Response:
  - 200: AddOutcome with created=false for an existing link
  - 201: AddOutcome with created=true and the new entry id
  - 400: INVALID_REFERENCE for a malformed product id
  - 404: REFERENCE_NOT_FOUND for an unknown product
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldOwnerEmail)
	productID := requestutil.Param(request, FieldID)

	outcome, err := handler.service.Add(request.Context(), email, productID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if outcome.Created {
		respond.Created(writer, outcome, "Added to wishlist")
		return
	}
	respond.OK(writer, outcome, "Already in wishlist")
}

// upsert inserts or replaces an entry keyed by (email, product name).
//
// PUT /api/v1/wishlist/{email}
func (handler *Handler) upsert(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldOwnerEmail)

	var entry Entry
	if err := requestutil.DecodeJSON(request, &entry); err != nil {
		respond.Error(writer, request, err)
		return
	}
	entry.OwnerEmail = email

	validator := &validate.Validator{}
	validator.
		Required(FieldProductName, entry.ProductName).
		MaxLen(FieldProductName, entry.ProductName, 200)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Upsert(request.Context(), &entry)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Successfully saved wishlist entry")
}

// list returns every wishlist entry (public).
//
// GET /api/v1/wishlist
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries, "Successfully found all wishlist entries")
}

// listByOwner returns the caller's own entries.
//
// GET /api/v1/wishlist/user/{email}
func (handler *Handler) listByOwner(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldOwnerEmail)

	entries, err := handler.service.ListByOwner(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries, "Successfully found wishlist entries")
}

// removeByName deletes entries matching a product name.
//
// DELETE /api/v1/wishlist/{name}
func (handler *Handler) removeByName(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")

	validator := &validate.Validator{}
	validator.Required(FieldProductName, name)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteByName(request.Context(), name); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Successfully deleted wishlist entry")
}
