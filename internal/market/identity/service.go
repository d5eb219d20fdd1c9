// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package identity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lekhoa/reloop/internal/platform/apperr"
	"github.com/lekhoa/reloop/internal/platform/sec"
	"github.com/lekhoa/reloop/internal/platform/upsert"
)

// # Contracts & Types

// CredentialIssuer defines the contract for signing bearer credentials.
type CredentialIssuer interface {
	// Issue signs the given claim mapping into a bearer token with the
	// codec's fixed validity window.
	Issue(claims map[string]any) (string, error)
}

// Service implements identity use cases: registration, credential issuance,
// and the admin-gated role elevation operations.
//
// # Review Process
//
// This service gates every privilege change in the system. Changes to the
// elevation or registration logic must be reviewed by the security team.
type Service struct {
	store  Store
	issuer CredentialIssuer
	logger *slog.Logger
}

// NewService constructs a new identity [Service] with its dependencies.
func NewService(store Store, issuer CredentialIssuer, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		issuer: issuer,
		logger: logger,
	}
}

// # Registration & Issuance

// Registration is the outcome of a self-registration upsert.
type Registration struct {
	Result *upsert.Result `json:"result"`
	Token  string         `json:"token"`
}

/*
Register upserts an identity by email and issues a fresh 30-day credential.

Description: The profile is merged non-destructively into any existing
record. Reserved fields (role, status, email) are stripped before the store
sees them; privilege changes only travel through the elevation path.

Parameters:
  - ctx: context.Context
  - email: string (natural key)
  - profile: map[string]any (self-submitted profile fields)

Returns:
  - *Registration: upsert outcome plus a signed credential
  - error: persistence or signing failures
*/
func (service *Service) Register(ctx context.Context, email string, profile map[string]any) (*Registration, error) {
	sanitized := make(map[string]any, len(profile))
	for name, value := range profile {
		sanitized[name] = value
	}
	for _, reserved := range reservedProfileFields {
		delete(sanitized, reserved)
	}

	result, err := service.store.UpsertByEmail(ctx, email, sanitized)
	if err != nil {
		return nil, fmt.Errorf("identity_service_register_failed: %w", err)
	}

	// The token snapshots the submitted claims at issuance time. Stale
	// profile data inside an already-issued token is expected; authorization
	// never reads it.
	claims := map[string]any{"email": email}
	for name, value := range sanitized {
		claims[name] = value
	}

	token, err := service.issuer.Issue(claims)
	if err != nil {
		return nil, fmt.Errorf("identity_service_issue_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "identity_registered",
		slog.String("identity_id", result.ID),
		slog.Bool("created", result.Created),
	)

	return &Registration{Result: result, Token: token}, nil
}

/*
IssueToken signs an arbitrary claim mapping into a bearer credential.

Description: Issuance-only path used by the public token endpoint. The codec
signs the claims verbatim; callers must not embed secrets, since the token is
signed but not encrypted.
*/
func (service *Service) IssueToken(_ context.Context, claims map[string]any) (string, error) {
	token, err := service.issuer.Issue(claims)
	if err != nil {
		return "", fmt.Errorf("identity_service_issue_failed: %w", err)
	}
	return token, nil
}

// # Lookups

// List returns every identity.
func (service *Service) List(ctx context.Context) ([]*Identity, error) {
	return service.store.List(ctx)
}

// ListByRole returns identities holding the given role.
func (service *Service) ListByRole(ctx context.Context, role sec.Role) ([]*Identity, error) {
	return service.store.ListByRole(ctx, role)
}

// RoleOf reports the stored role for an email. Unknown identities report
// the unspecified role rather than an error; the public role probe treats
// "no record" and "no role" identically.
func (service *Service) RoleOf(ctx context.Context, email string) (sec.Role, error) {
	role, err := service.store.RoleByEmail(ctx, email)
	if err != nil {
		if asNotFound(err) {
			return sec.RoleUnspecified, nil
		}
		return "", err
	}
	return role, nil
}

// # Role Elevation

/*
PromoteToAdmin sets the target identity's role to admin.

Description: Idempotent: repeated calls converge to the same state. When no
identity with the id exists, a role-only record is created (insert-if-absent
primitive). Use [PromoteToAdminExact] for strict existing-record semantics.
*/
func (service *Service) PromoteToAdmin(ctx context.Context, targetID string) (*upsert.Result, error) {
	result, err := service.store.SetRole(ctx, targetID, sec.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("identity_service_promote_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "identity_promoted_admin",
		slog.String("identity_id", targetID),
		slog.Bool("created", result.Created),
	)
	return result, nil
}

// PromoteToAdminExact sets an EXISTING identity's role to admin, failing
// with apperr.NotFound for unknown ids.
func (service *Service) PromoteToAdminExact(ctx context.Context, targetID string) error {
	return service.store.SetRoleExisting(ctx, targetID, sec.RoleAdmin)
}

/*
VerifySeller marks the target identity's verification status as verified.

Same upsert semantics as [PromoteToAdmin]; [VerifySellerExact] is the strict
variant.
*/
func (service *Service) VerifySeller(ctx context.Context, targetID string) (*upsert.Result, error) {
	result, err := service.store.SetStatus(ctx, targetID, sec.StatusVerified)
	if err != nil {
		return nil, fmt.Errorf("identity_service_verify_seller_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "identity_seller_verified",
		slog.String("identity_id", targetID),
		slog.Bool("created", result.Created),
	)
	return result, nil
}

// VerifySellerExact marks an EXISTING identity as verified only.
func (service *Service) VerifySellerExact(ctx context.Context, targetID string) error {
	return service.store.SetStatusExisting(ctx, targetID, sec.StatusVerified)
}

// # Administration

// Delete removes an identity by id.
func (service *Service) Delete(ctx context.Context, id string) error {
	return service.store.Delete(ctx, id)
}

// asNotFound reports whether err is the store's not-found classification.
func asNotFound(err error) bool {
	ae := apperr.As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}
