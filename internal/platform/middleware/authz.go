// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/ctxutil"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/sec"
)

// RoleDirectory resolves the CURRENT stored role for an identity email.
//
// # Why a fresh lookup?
//
// The role embedded in a token is a snapshot from issuance time. Demotions and
// promotions must take effect on the very next request, so the authorization
// gate always re-reads stored state and never trusts the claim.
type RoleDirectory interface {
	RoleByEmail(ctx context.Context, email string) (sec.Role, error)
}

// RequireAdmin blocks requests whose actor's stored role is not admin.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequireAuth], so protected admin routes need only this gate.
//
// # Side Effects
//
// Exactly one read against the identity store per request; no writes.
func RequireAdmin(directory RoleDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetActor(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
				return
			}

			// ── 2. Fresh Role Lookup ──────────────────────────────────────────
			role, err := directory.RoleByEmail(request.Context(), claims.Email)
			if err != nil {
				// An unknown identity simply has no admin privileges; everything
				// else is a store failure worth surfacing.
				var appError *apperr.AppError
				if errors.As(err, &appError) && appError.Code == "NOT_FOUND" {
					respond.Error(writer, request, apperr.Forbidden("Forbidden access"))
					return
				}
				respond.Error(writer, request, apperr.StoreFailure(err))
				return
			}

			// ── 3. Authorization Check ────────────────────────────────────────
			if role != sec.RoleAdmin {
				respond.Error(writer, request, apperr.Forbidden("Forbidden access"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// RequireSelf blocks authenticated requests whose actor email does not match
// the named URL parameter. Used on owner-scoped reads such as a buyer's own
// orders or wishlist.
func RequireSelf(emailParam string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetActor(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthenticated("Authentication required"))
				return
			}

			target := chi.URLParam(request, emailParam)
			if !strings.EqualFold(target, claims.Email) {
				respond.Error(writer, request, apperr.Forbidden("Forbidden access"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
