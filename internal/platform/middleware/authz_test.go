// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/middleware"
	"github.com/lekhoa/reloop/internal/platform/sec"
)

// fakeDirectory serves roles from an in-memory map and counts lookups.
type fakeDirectory struct {
	roles   map[string]sec.Role
	err     error
	lookups int
}

func (f *fakeDirectory) RoleByEmail(_ context.Context, email string) (sec.Role, error) {
	f.lookups++
	if f.err != nil {
		return "", f.err
	}
	role, ok := f.roles[email]
	if !ok {
		return "", apperr.NotFound("Identity")
	}
	return role, nil
}

// adminChain builds Authenticate → RequireAdmin → 200 handler.
func adminChain(verifier middleware.TokenVerifier, directory *fakeDirectory) http.Handler {
	final := http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier)(middleware.RequireAdmin(directory)(final))
}

func adminRequest() *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/users", nil)
	request.Header.Set("Authorization", "Bearer good")
	return request
}

/*
TestRequireAdmin_NonAdmin verifies that a valid credential with an
insufficient stored role is rejected with 403, after exactly one store read.
*/
func TestRequireAdmin_NonAdmin(t *testing.T) {
	directory := &fakeDirectory{roles: map[string]sec.Role{"a@x.com": sec.RoleBuyer}}
	verifier := &fakeVerifier{token: "good", claims: &sec.Claims{Email: "a@x.com"}}
	chain := adminChain(verifier, directory)

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, adminRequest())

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Equal(t, 1, directory.lookups)
}

/*
TestRequireAdmin_FreshRoleLookup is the stale-privilege property: a token
issued while the actor was a buyer must start working on admin routes as soon
as the STORED role changes, with no re-issuance.
*/
func TestRequireAdmin_FreshRoleLookup(t *testing.T) {
	directory := &fakeDirectory{roles: map[string]sec.Role{"a@x.com": sec.RoleBuyer}}
	// The token's embedded role stays "buyer" for the whole test.
	verifier := &fakeVerifier{token: "good", claims: &sec.Claims{
		Email:   "a@x.com",
		Profile: map[string]any{"role": "buyer"},
	}}
	chain := adminChain(verifier, directory)

	// 1. Stored role is buyer → Forbidden.
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, adminRequest())
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// 2. Promote server-side, reuse the SAME token → succeeds.
	directory.roles["a@x.com"] = sec.RoleAdmin
	recorder = httptest.NewRecorder()
	chain.ServeHTTP(recorder, adminRequest())
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireAdmin_UnknownIdentity treats a missing identity record as a plain
authorization failure, not a server error.
*/
func TestRequireAdmin_UnknownIdentity(t *testing.T) {
	directory := &fakeDirectory{roles: map[string]sec.Role{}}
	verifier := &fakeVerifier{token: "good", claims: &sec.Claims{Email: "ghost@x.com"}}
	chain := adminChain(verifier, directory)

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, adminRequest())

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

/*
TestRequireAdmin_StoreFailure surfaces directory failures as 500, not 403.
*/
func TestRequireAdmin_StoreFailure(t *testing.T) {
	directory := &fakeDirectory{err: errors.New("connection refused")}
	verifier := &fakeVerifier{token: "good", claims: &sec.Claims{Email: "a@x.com"}}
	chain := adminChain(verifier, directory)

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, adminRequest())

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}

/*
TestRequireAdmin_Unauthenticated verifies that the gate refuses anonymous
requests without touching the directory.
*/
func TestRequireAdmin_Unauthenticated(t *testing.T) {
	directory := &fakeDirectory{roles: map[string]sec.Role{}}
	chain := adminChain(&fakeVerifier{}, directory)

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Zero(t, directory.lookups, "no store call for unauthenticated requests")
}

/*
TestRequireSelf verifies the owner guard against the {email} URL parameter.
*/
func TestRequireSelf(t *testing.T) {
	tests := []struct {
		name       string
		actorEmail string
		pathEmail  string
		wantStatus int
	}{
		{"owner_match", "a@x.com", "a@x.com", http.StatusOK},
		{"owner_match_case_insensitive", "A@X.com", "a@x.com", http.StatusOK},
		{"other_user", "mallory@x.com", "a@x.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{token: "good", claims: &sec.Claims{Email: tt.actorEmail}}

			router := chi.NewRouter()
			router.Use(middleware.Authenticate(verifier))
			router.With(middleware.RequireSelf("email")).
				Get("/orders/user/{email}", func(writer http.ResponseWriter, _ *http.Request) {
					writer.WriteHeader(http.StatusOK)
				})

			request := httptest.NewRequest(http.MethodGet, "/orders/user/"+tt.pathEmail, nil)
			request.Header.Set("Authorization", "Bearer good")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
