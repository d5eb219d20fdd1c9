// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

/*
HTTP delivery layer for the identity domain.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface with the uniform envelope.
  - Security: Admin routes are fenced by the authorization gate, which re-reads
    the stored role on every request.
  - Verification: Enforces strict input validation before passing to [Service].
*/
package identity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/identifier"
	"github.com/lekhoa/reloop/internal/platform/middleware"
	requestutil "github.com/lekhoa/reloop/internal/platform/request"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/sec"
	"github.com/lekhoa/reloop/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements identity-related HTTP endpoints.
type Handler struct {
	service   *Service
	directory middleware.RoleDirectory
	refFormat identifier.Format
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service, directory middleware.RoleDirectory) *Handler {
	return &Handler{
		service:   service,
		directory: directory,
		refFormat: identifier.Hex24,
	}
}

// AuthRoutes returns the public credential issuance routes.
//
// # Endpoints
//   - POST /token : Signs posted identity claims into a 30-day credential.
func (handler *Handler) AuthRoutes() chi.Router {
	router := chi.NewRouter()
	router.Post("/token", handler.issueToken)
	return router
}

// Routes returns a [chi.Router] configured with identity routes.
//
// # Endpoints
//   - PUT    /{email}        : Public identity upsert (returns fresh token).
//   - GET    /admin/{email}  : Public role probe.
//   - GET    /               : Admin list.
//   - GET    /role/{role}    : Admin list filtered by role.
//   - PUT    /admin/{id}     : Promote to admin (upsert).
//   - PUT    /seller/{id}    : Mark seller verified (upsert).
//   - DELETE /{id}           : Delete identity.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Put("/{email}", handler.register)
	router.Get("/admin/{email}", handler.roleProbe)

	// Administrative endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(handler.directory))
		r.Get("/", handler.list)
		r.Get("/role/{role}", handler.listByRole)
		r.Put("/admin/{id}", handler.promoteToAdmin)
		r.Put("/seller/{id}", handler.verifySeller)
		r.Delete("/{id}", handler.remove)
	})

	return router
}

/*
issueToken signs posted identity claims into a bearer credential.

POST /api/v1/auth/token

Response:
  - 200: token string in the envelope data
  - 400: VALIDATION_ERROR: missing email claim or bad JSON
*/
func (handler *Handler) issueToken(writer http.ResponseWriter, request *http.Request) {
	var claims map[string]any
	if err := requestutil.DecodeJSON(request, &claims); err != nil {
		respond.Error(writer, request, err)
		return
	}

	email, _ := claims[FieldEmail].(string)
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.service.IssueToken(request.Context(), claims)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, token, "Credential issued")
}

/*
register upserts an identity by email and returns a fresh credential.

PUT /api/v1/users/{email}

Request:
  - Body: arbitrary profile fields (role/status/email are stripped)

Response:
  - 200: Registration: upsert outcome + token
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldEmail)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var profile map[string]any
	if err := requestutil.DecodeJSON(request, &profile); err != nil {
		respond.Error(writer, request, err)
		return
	}

	registration, err := handler.service.Register(request.Context(), email, profile)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, registration, "Successfully created user")
}

// roleProbe reports the stored role for an email (public).
//
// GET /api/v1/users/admin/{email}
func (handler *Handler) roleProbe(writer http.ResponseWriter, request *http.Request) {
	email := requestutil.Param(request, FieldEmail)

	role, err := handler.service.RoleOf(request.Context(), email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{FieldRole: role}, "Role resolved")
}

// list returns every identity (admin only).
//
// GET /api/v1/users
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	identities, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identities, "Successfully found all users")
}

// listByRole filters identities by role (admin only).
//
// GET /api/v1/users/role/{role}
func (handler *Handler) listByRole(writer http.ResponseWriter, request *http.Request) {
	role := sec.Role(requestutil.Param(request, FieldRole))

	validator := &validate.Validator{}
	validator.Custom(FieldRole, !role.Known(), "Unknown role")
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	identities, err := handler.service.ListByRole(request.Context(), role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, identities, "Successfully found users by role")
}

/*
promoteToAdmin sets the target identity's role to admin.

PUT /api/v1/users/admin/{id}

Upsert semantics: an unknown id creates a role-only record. Admin gate has
already re-checked the actor's stored role before this runs.
*/
func (handler *Handler) promoteToAdmin(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.PromoteToAdmin(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Successfully promoted user to admin")
}

/*
verifySeller marks the target identity's verification status as verified.

PUT /api/v1/users/seller/{id}
*/
func (handler *Handler) verifySeller(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.VerifySeller(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result, "Successfully verified seller")
}

// remove deletes an identity by id (admin only).
//
// DELETE /api/v1/users/{id}
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, FieldID)

	validator := &validate.Validator{}
	validator.RefID(FieldID, id, handler.refFormat)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, nil, "Successfully deleted user")
}
