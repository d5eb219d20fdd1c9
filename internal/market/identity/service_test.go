// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package identity

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/sec"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// fakeStore is an in-memory Store that mimics the Postgres upsert semantics.
type fakeStore struct {
	byEmail      map[string]*Identity
	byID         map[string]*Identity
	lastProfile  map[string]any
	roleErr      error
	nextRecordID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byEmail: make(map[string]*Identity),
		byID:    make(map[string]*Identity),
	}
}

func (store *fakeStore) UpsertByEmail(_ context.Context, email string, profile map[string]any) (*upsert.Result, error) {
	store.lastProfile = profile
	if existing, ok := store.byEmail[email]; ok {
		for name, value := range profile {
			existing.Profile[name] = value
		}
		return &upsert.Result{ID: existing.ID, Created: false}, nil
	}

	store.nextRecordID++
	record := &Identity{ID: recordID(store.nextRecordID), Email: email, Profile: map[string]any{}}
	for name, value := range profile {
		record.Profile[name] = value
	}
	store.byEmail[email] = record
	store.byID[record.ID] = record
	return &upsert.Result{ID: record.ID, Created: true}, nil
}

func (store *fakeStore) FindByEmail(_ context.Context, email string) (*Identity, error) {
	record, ok := store.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return record, nil
}

func (store *fakeStore) RoleByEmail(_ context.Context, email string) (sec.Role, error) {
	if store.roleErr != nil {
		return "", store.roleErr
	}
	record, ok := store.byEmail[email]
	if !ok {
		return "", apperr.NotFound("User")
	}
	return record.Role, nil
}

func (store *fakeStore) List(_ context.Context) ([]*Identity, error) {
	out := make([]*Identity, 0, len(store.byID))
	for _, record := range store.byID {
		out = append(out, record)
	}
	return out, nil
}

func (store *fakeStore) ListByRole(_ context.Context, role sec.Role) ([]*Identity, error) {
	var out []*Identity
	for _, record := range store.byID {
		if record.Role == role {
			out = append(out, record)
		}
	}
	return out, nil
}

func (store *fakeStore) SetRole(_ context.Context, id string, role sec.Role) (*upsert.Result, error) {
	if record, ok := store.byID[id]; ok {
		record.Role = role
		return &upsert.Result{ID: id, Created: false}, nil
	}
	record := &Identity{ID: id, Role: role, Profile: map[string]any{}}
	store.byID[id] = record
	return &upsert.Result{ID: id, Created: true}, nil
}

func (store *fakeStore) SetRoleExisting(_ context.Context, id string, role sec.Role) error {
	record, ok := store.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	record.Role = role
	return nil
}

func (store *fakeStore) SetStatus(_ context.Context, id string, status string) (*upsert.Result, error) {
	if record, ok := store.byID[id]; ok {
		record.Status = status
		return &upsert.Result{ID: id, Created: false}, nil
	}
	record := &Identity{ID: id, Status: status, Profile: map[string]any{}}
	store.byID[id] = record
	return &upsert.Result{ID: id, Created: true}, nil
}

func (store *fakeStore) SetStatusExisting(_ context.Context, id string, status string) error {
	record, ok := store.byID[id]
	if !ok {
		return apperr.NotFound("User")
	}
	record.Status = status
	return nil
}

func (store *fakeStore) Delete(_ context.Context, id string) error {
	record, ok := store.byID[id]
	if ok {
		delete(store.byEmail, record.Email)
		delete(store.byID, id)
	}
	return nil
}

func recordID(n int) string {
	const hex = "0123456789abcdef"
	id := make([]byte, 24)
	for i := range id {
		id[i] = hex[n%16]
	}
	return string(id)
}

// fakeIssuer records the claims it signed.
type fakeIssuer struct {
	lastClaims map[string]any
	err        error
}

func (issuer *fakeIssuer) Issue(claims map[string]any) (string, error) {
	if issuer.err != nil {
		return "", issuer.err
	}
	issuer.lastClaims = claims
	return "signed-token", nil
}

func newTestService(store Store, issuer CredentialIssuer) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, issuer, logger)
}

func TestRegister_CreatesAndIssuesToken(t *testing.T) {
	store := newFakeStore()
	issuer := &fakeIssuer{}
	service := newTestService(store, issuer)

	registration, err := service.Register(context.Background(), "aisha@example.com", map[string]any{
		"name": "Aisha",
	})
	require.NoError(t, err)

	assert.True(t, registration.Result.Created)
	assert.Equal(t, "signed-token", registration.Token)
	assert.Equal(t, "aisha@example.com", issuer.lastClaims["email"])
	assert.Equal(t, "Aisha", issuer.lastClaims["name"])
}

func TestRegister_SecondCallMergesInsteadOfCreating(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, &fakeIssuer{})

	first, err := service.Register(context.Background(), "aisha@example.com", map[string]any{"name": "Aisha"})
	require.NoError(t, err)
	second, err := service.Register(context.Background(), "aisha@example.com", map[string]any{"city": "Hanoi"})
	require.NoError(t, err)

	assert.True(t, first.Result.Created)
	assert.False(t, second.Result.Created)
	assert.Equal(t, first.Result.ID, second.Result.ID)

	record, err := store.FindByEmail(context.Background(), "aisha@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Aisha", record.Profile["name"], "fields absent from the second payload must survive")
	assert.Equal(t, "Hanoi", record.Profile["city"])
}

func TestRegister_StripsReservedFields(t *testing.T) {
	store := newFakeStore()
	issuer := &fakeIssuer{}
	service := newTestService(store, issuer)

	_, err := service.Register(context.Background(), "mallory@example.com", map[string]any{
		"role":   "admin",
		"status": "verified",
		"email":  "someone-else@example.com",
		"name":   "Mallory",
	})
	require.NoError(t, err)

	assert.NotContains(t, store.lastProfile, "role", "self-registration must not set roles")
	assert.NotContains(t, store.lastProfile, "status")
	assert.NotContains(t, store.lastProfile, "email")
	assert.Equal(t, "Mallory", store.lastProfile["name"])

	// The issued token carries the path email, not a spoofed claim.
	assert.Equal(t, "mallory@example.com", issuer.lastClaims["email"])
	assert.NotContains(t, issuer.lastClaims, "role")
}

func TestRoleOf_UnknownIdentityIsUnspecified(t *testing.T) {
	service := newTestService(newFakeStore(), &fakeIssuer{})

	role, err := service.RoleOf(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUnspecified, role)
}

func TestRoleOf_StoreFailurePropagates(t *testing.T) {
	store := newFakeStore()
	store.roleErr = apperr.StoreFailure(assert.AnError)
	service := newTestService(store, &fakeIssuer{})

	_, err := service.RoleOf(context.Background(), "aisha@example.com")
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "STORE_FAILURE", appError.Code)
}

func TestPromoteToAdmin_IsIdempotent(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, &fakeIssuer{})

	registration, err := service.Register(context.Background(), "aisha@example.com", nil)
	require.NoError(t, err)
	id := registration.Result.ID

	first, err := service.PromoteToAdmin(context.Background(), id)
	require.NoError(t, err)
	second, err := service.PromoteToAdmin(context.Background(), id)
	require.NoError(t, err)

	assert.False(t, first.Created)
	assert.False(t, second.Created)

	role, err := service.RoleOf(context.Background(), "aisha@example.com")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, role)
}

func TestPromoteToAdmin_UnknownIDCreatesRoleOnlyRecord(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, &fakeIssuer{})

	result, err := service.PromoteToAdmin(context.Background(), recordID(7))
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, sec.RoleAdmin, store.byID[recordID(7)].Role)
}

func TestPromoteToAdminExact_UnknownIDFails(t *testing.T) {
	service := newTestService(newFakeStore(), &fakeIssuer{})

	err := service.PromoteToAdminExact(context.Background(), recordID(7))
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

func TestVerifySeller_SetsStatusOnly(t *testing.T) {
	store := newFakeStore()
	service := newTestService(store, &fakeIssuer{})

	registration, err := service.Register(context.Background(), "seller@example.com", nil)
	require.NoError(t, err)
	id := registration.Result.ID

	_, err = service.VerifySeller(context.Background(), id)
	require.NoError(t, err)

	record := store.byID[id]
	assert.Equal(t, sec.StatusVerified, record.Status)
	assert.Equal(t, sec.RoleUnspecified, record.Role, "verification must not change the role")
}

func TestIssueToken_SigningFailurePropagates(t *testing.T) {
	service := newTestService(newFakeStore(), &fakeIssuer{err: assert.AnError})

	_, err := service.IssueToken(context.Background(), map[string]any{"email": "aisha@example.com"})
	require.Error(t, err)
}
