// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package wishlist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lekhoa/reloop/internal/platform/ctxutil"
	"github.com/lekhoa/reloop/internal/platform/respond"
	"github.com/lekhoa/reloop/internal/platform/sec"
)

func newTestRouter(service *Service) chi.Router {
	router := chi.NewRouter()
	router.Mount("/wishlist", NewHandler(service).Routes())
	return router
}

// doAs performs a request with a verified actor already in context, the
// state the authentication gate leaves behind.
func doAs(t *testing.T, router chi.Router, method, target, email string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, nil)
	if email != "" {
		ctx := ctxutil.WithActor(request.Context(), &sec.Claims{Email: email})
		request = request.WithContext(ctx)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) respond.Envelope {
	t.Helper()

	var envelope respond.Envelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope
}

func TestAddEndpoint_StatusSignaling(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{knownProductID: true}}
	router := newTestRouter(newTestService(store, finder))

	target := "/wishlist/aisha@example.com/" + knownProductID

	first := doAs(t, router, http.MethodPost, target, "aisha@example.com")
	assert.Equal(t, http.StatusCreated, first.Code)
	envelope := decodeEnvelope(t, first)
	assert.True(t, envelope.Success)

	second := doAs(t, router, http.MethodPost, target, "aisha@example.com")
	assert.Equal(t, http.StatusOK, second.Code, "duplicate add is a success")
	envelope = decodeEnvelope(t, second)
	assert.True(t, envelope.Success)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["created"])
}

func TestAddEndpoint_MalformedReference(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{}}
	router := newTestRouter(newTestService(store, finder))

	recorder := doAs(t, router, http.MethodPost, "/wishlist/aisha@example.com/short-id", "aisha@example.com")

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	envelope := decodeEnvelope(t, recorder)
	assert.False(t, envelope.Success)
}

func TestAddEndpoint_UnknownProduct(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{}}
	router := newTestRouter(newTestService(store, finder))

	recorder := doAs(t, router, http.MethodPost, "/wishlist/aisha@example.com/"+knownProductID, "aisha@example.com")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAddEndpoint_RequiresMatchingOwner(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{knownProductID: true}}
	router := newTestRouter(newTestService(store, finder))

	target := "/wishlist/aisha@example.com/" + knownProductID

	anonymous := doAs(t, router, http.MethodPost, target, "")
	assert.Equal(t, http.StatusUnauthorized, anonymous.Code)

	impostor := doAs(t, router, http.MethodPost, target, "mallory@example.com")
	assert.Equal(t, http.StatusForbidden, impostor.Code)
	assert.Zero(t, store.addCalls, "rejected requests must not reach the store")
}
