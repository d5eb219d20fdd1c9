// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package wishlist

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

type entryKey struct {
	owner   string
	product string
}

// fakeStore mimics the conditional-insert semantics of the Postgres store.
type fakeStore struct {
	links    map[entryKey]string
	byName   map[entryKey]*Entry
	addCalls int
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		links:  make(map[entryKey]string),
		byName: make(map[entryKey]*Entry),
	}
}

func (store *fakeStore) AddOnce(_ context.Context, ownerEmail, productID string) (*AddOutcome, error) {
	store.addCalls++
	key := entryKey{owner: ownerEmail, product: productID}
	if _, ok := store.links[key]; ok {
		return &AddOutcome{Created: false}, nil
	}
	store.nextID++
	id := entryID(store.nextID)
	store.links[key] = id
	return &AddOutcome{EntryID: id, Created: true}, nil
}

func (store *fakeStore) UpsertByName(_ context.Context, entry *Entry) (*upsert.Result, error) {
	key := entryKey{owner: entry.OwnerEmail, product: entry.ProductName}
	if existing, ok := store.byName[key]; ok {
		existing.Details = entry.Details
		return &upsert.Result{ID: existing.ID, Created: false}, nil
	}
	store.nextID++
	entry.ID = entryID(store.nextID)
	store.byName[key] = entry
	return &upsert.Result{ID: entry.ID, Created: true}, nil
}

func (store *fakeStore) List(_ context.Context) ([]*Entry, error) {
	var out []*Entry
	for _, entry := range store.byName {
		out = append(out, entry)
	}
	return out, nil
}

func (store *fakeStore) ListByOwner(_ context.Context, ownerEmail string) ([]*Entry, error) {
	var out []*Entry
	for _, entry := range store.byName {
		if entry.OwnerEmail == ownerEmail {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (store *fakeStore) DeleteByName(_ context.Context, productName string) error {
	for key := range store.byName {
		if key.product == productName {
			delete(store.byName, key)
		}
	}
	return nil
}

func entryID(n int) string {
	const hex = "0123456789abcdef"
	id := make([]byte, 24)
	for i := range id {
		id[i] = hex[n%16]
	}
	return string(id)
}

// fakeFinder records whether the existence check ran.
type fakeFinder struct {
	known   map[string]bool
	err     error
	lookups int
}

func (finder *fakeFinder) Exists(_ context.Context, id string) (bool, error) {
	finder.lookups++
	if finder.err != nil {
		return false, finder.err
	}
	return finder.known[id], nil
}

func newTestService(store Store, finder ProductFinder) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, finder, logger)
}

const knownProductID = "6360a9d60e07ca2aa0b1a0a1"

func TestAdd_CreatesFreshLink(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{knownProductID: true}}
	service := newTestService(store, finder)

	outcome, err := service.Add(context.Background(), "aisha@example.com", knownProductID)
	require.NoError(t, err)

	assert.True(t, outcome.Created)
	assert.NotEmpty(t, outcome.EntryID)
}

func TestAdd_DuplicateIsNoOpSuccess(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{knownProductID: true}}
	service := newTestService(store, finder)

	first, err := service.Add(context.Background(), "aisha@example.com", knownProductID)
	require.NoError(t, err)
	second, err := service.Add(context.Background(), "aisha@example.com", knownProductID)
	require.NoError(t, err, "a duplicate add is a success, not an error")

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Len(t, store.links, 1)
}

func TestAdd_SameProductDifferentOwnersBothLink(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{knownProductID: true}}
	service := newTestService(store, finder)

	one, err := service.Add(context.Background(), "aisha@example.com", knownProductID)
	require.NoError(t, err)
	two, err := service.Add(context.Background(), "minh@example.com", knownProductID)
	require.NoError(t, err)

	assert.True(t, one.Created)
	assert.True(t, two.Created)
	assert.Len(t, store.links, 2)
}

func TestAdd_MalformedIDFailsBeforeAnyLookup(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{}}
	service := newTestService(store, finder)

	// Malformed AND nonexistent: the format failure must win.
	_, err := service.Add(context.Background(), "aisha@example.com", "not-a-valid-id")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "INVALID_REFERENCE", appError.Code)
	assert.Zero(t, finder.lookups, "format failures must not reach the catalog")
	assert.Zero(t, store.addCalls, "format failures must not reach the store")
}

func TestAdd_UnknownProductFailsBeforeInsert(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{known: map[string]bool{}}
	service := newTestService(store, finder)

	_, err := service.Add(context.Background(), "aisha@example.com", knownProductID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "REFERENCE_NOT_FOUND", appError.Code)
	assert.Equal(t, 1, finder.lookups)
	assert.Zero(t, store.addCalls, "unknown references must not reach the store")
}

func TestAdd_CatalogFailurePropagates(t *testing.T) {
	store := newFakeStore()
	finder := &fakeFinder{err: apperr.StoreFailure(assert.AnError)}
	service := newTestService(store, finder)

	_, err := service.Add(context.Background(), "aisha@example.com", knownProductID)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "STORE_FAILURE", appError.Code)
	assert.Zero(t, store.addCalls)
}

func TestUpsert_SecondWriteReplacesDetails(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, &fakeFinder{})

	first, err := service.Upsert(context.Background(), &Entry{
		OwnerEmail:  "aisha@example.com",
		ProductName: "ThinkPad X1 Carbon",
		Details:     map[string]any{"price": 450},
	})
	require.NoError(t, err)
	second, err := service.Upsert(context.Background(), &Entry{
		OwnerEmail:  "aisha@example.com",
		ProductName: "ThinkPad X1 Carbon",
		Details:     map[string]any{"price": 400},
	})
	require.NoError(t, err)

	assert.True(t, first.Created)
	assert.False(t, second.Created)
	assert.Equal(t, first.ID, second.ID)

	entries, err := service.ListByOwner(context.Background(), "aisha@example.com")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 400, entries[0].Details["price"])
}
