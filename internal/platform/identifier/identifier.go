// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

// Package identifier generates and validates the opaque record identifiers
// used across every resource family.
//
// # Pluggability
//
// Operations that accept a foreign-key-style reference validate it through the
// [Format] interface rather than hard-coding the shape of any one store's
// generated ids. [Hex24] is the platform default: a 24-character lowercase
// hexadecimal string.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
)

// Format validates the shape of a reference identifier at an operation boundary.
type Format interface {
	// Valid reports whether id matches the expected identifier format.
	Valid(id string) bool

	// Describe returns a short human-readable description of the format,
	// suitable for client-facing error messages.
	Describe() string
}

// # Default Format

// hex24Length is the exact character length of a generated identifier.
const hex24Length = 24

type hex24 struct{}

// Hex24 is the default identifier format: 24 lowercase hex characters.
var Hex24 Format = hex24{}

func (hex24) Valid(id string) bool {
	if len(id) != hex24Length {
		return false
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func (hex24) Describe() string {
	return "a 24-character hexadecimal id"
}

// # Generation

// New returns a freshly generated [Hex24] identifier.
//
// crypto/rand never fails on supported platforms; a read error here means the
// process environment is unusable, so it panics rather than returning an error
// every caller would have to thread through.
func New() string {
	raw := make([]byte, hex24Length/2)
	if _, err := rand.Read(raw); err != nil {
		panic("identifier: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(raw)
}
