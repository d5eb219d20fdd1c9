// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

/*
Package identity implements the marketplace identity layer: registration,
credential issuance, role lookups, and the admin-gated elevation service.

# Architecture

An identity is keyed by its email address. The first write creates the
record; every subsequent write merges profile fields without discarding the
ones it does not name. Role and verification status live outside the profile
document and are writable only through the elevation path; the general
self-registration path strips them out before the store ever sees them.
*/
package identity

import (
	"time"

	"github.com/lekhoa/reloop/internal/platform/sec"
)

// # Domain Entities

// Identity represents a registered member of the marketplace.
type Identity struct {
	ID        string         `json:"id"`
	Email     string         `json:"email,omitempty"`
	Role      sec.Role       `json:"role,omitempty"`
	Status    string         `json:"status,omitempty"`
	Profile   map[string]any `json:"profile,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// # Field Identifiers

// Field names shared between validation and JSON mapping.
const (
	FieldEmail = "email"
	FieldRole  = "role"
	FieldID    = "id"
)

// reservedProfileFields are stripped from self-submitted profiles: role and
// status are writable only through the elevation service, and email is the
// record key, not a profile field.
var reservedProfileFields = []string{"role", "status", "email"}
