// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package identifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lekhoa/reloop/internal/platform/identifier"
)

/*
TestHex24_Valid exercises the default reference format against well-formed
and malformed identifiers.
*/
func TestHex24_Valid(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		isValid bool
	}{
		{"generated_id", "5f3a9c1b2d4e6f7a8b9c0d1e", true},
		{"all_digits", "123456789012345678901234", true},
		{"too_short_23_chars", "5f3a9c1b2d4e6f7a8b9c0d1", false},
		{"too_long_25_chars", "5f3a9c1b2d4e6f7a8b9c0d1e2", false},
		{"uppercase_hex", "5F3A9C1B2D4E6F7A8B9C0D1E", false},
		{"non_hex_chars", "5f3a9c1b2d4e6f7a8b9c0dzz", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.isValid, identifier.Hex24.Valid(tt.id))
		})
	}
}

/*
TestNew verifies that generated identifiers always satisfy the default format
and do not repeat across calls.
*/
func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := identifier.New()
		assert.True(t, identifier.Hex24.Valid(id), "generated id %q must be valid", id)
		assert.False(t, seen[id], "generated id %q must be unique", id)
		seen[id] = true
	}
}
