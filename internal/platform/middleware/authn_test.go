// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lekhoa/reloop/internal/platform/ctxutil"
	"github.com/lekhoa/reloop/internal/platform/middleware"
	"github.com/lekhoa/reloop/internal/platform/sec"
)

// fakeVerifier accepts exactly one token string and returns canned claims.
type fakeVerifier struct {
	token  string
	claims *sec.Claims
}

func (f *fakeVerifier) Verify(tokenStr string) (*sec.Claims, error) {
	if tokenStr != f.token {
		return nil, errors.New("sec: invalid token")
	}
	return f.claims, nil
}

// protectedChain builds Authenticate → RequireAuth → capture handler.
func protectedChain(verifier middleware.TokenVerifier, captured **sec.Claims) http.Handler {
	final := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if captured != nil {
			*captured = ctxutil.GetActor(request.Context())
		}
		writer.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(verifier)(middleware.RequireAuth(final))
}

/*
TestAuthenticate_MissingHeader verifies that a protected route rejects
requests without any credential, before the handler runs.
*/
func TestAuthenticate_MissingHeader(t *testing.T) {
	handlerRan := false
	final := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerRan = true })
	chain := middleware.Authenticate(&fakeVerifier{})(middleware.RequireAuth(final))

	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, handlerRan, "handler must not run without a credential")
}

/*
TestAuthenticate_MalformedHeader covers headers with no verifiable
scheme/token split.
*/
func TestAuthenticate_MalformedHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no_scheme", "just-a-token"},
		{"wrong_scheme", "Basic abc123"},
		{"too_many_parts", "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := protectedChain(&fakeVerifier{}, nil)

			request := httptest.NewRequest(http.MethodGet, "/orders", nil)
			request.Header.Set("Authorization", tt.header)
			recorder := httptest.NewRecorder()
			chain.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		})
	}
}

/*
TestAuthenticate_InvalidToken verifies rejection when the codec reports
a bad signature or expiry.
*/
func TestAuthenticate_InvalidToken(t *testing.T) {
	chain := protectedChain(&fakeVerifier{token: "good"}, nil)

	request := httptest.NewRequest(http.MethodGet, "/orders", nil)
	request.Header.Set("Authorization", "Bearer forged")
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestAuthenticate_ValidToken verifies that decoded claims reach the handler
through the request context.
*/
func TestAuthenticate_ValidToken(t *testing.T) {
	claims := &sec.Claims{Email: "buyer@reloop.market"}
	var captured *sec.Claims
	chain := protectedChain(&fakeVerifier{token: "good", claims: claims}, &captured)

	request := httptest.NewRequest(http.MethodGet, "/orders", nil)
	request.Header.Set("Authorization", "Bearer good")
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, captured)
	assert.Equal(t, "buyer@reloop.market", captured.Email)
}

/*
TestAuthenticate_BearerCaseInsensitive confirms the scheme comparison accepts
"bearer" as well as "Bearer".
*/
func TestAuthenticate_BearerCaseInsensitive(t *testing.T) {
	chain := protectedChain(&fakeVerifier{token: "good", claims: &sec.Claims{Email: "a@x.com"}}, nil)

	request := httptest.NewRequest(http.MethodGet, "/orders", nil)
	request.Header.Set("Authorization", "bearer good")
	recorder := httptest.NewRecorder()
	chain.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
