// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lekhoa/reloop/internal/platform/sec"
)

const testSecret = "unit-test-secret-do-not-reuse"

func newCodec(t *testing.T, ttl time.Duration) *sec.Codec {
	t.Helper()
	codec, err := sec.NewCodec(testSecret, "reloop.market", ttl)
	require.NoError(t, err)
	return codec
}

/*
TestCodec_RoundTrip verifies that issued claims come back intact from Verify,
with registered claims stripped out.
*/
func TestCodec_RoundTrip(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue(map[string]any{
		"email": "a@x.com",
		"name":  "Sam",
		"role":  "buyer",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "Sam", claims.Profile["name"])
	assert.Equal(t, "buyer", claims.Profile["role"])
	assert.NotContains(t, claims.Profile, "exp")
	assert.NotContains(t, claims.Profile, "iss")
	assert.NotContains(t, claims.Profile, "iat")
}

/*
TestCodec_WrongSecret verifies the signature check.
*/
func TestCodec_WrongSecret(t *testing.T) {
	issuer := newCodec(t, time.Hour)
	token, err := issuer.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	other, err := sec.NewCodec("a-different-secret", "reloop.market", time.Hour)
	require.NoError(t, err)

	claims, err := other.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestCodec_Expired verifies that a token past its embedded expiration is invalid.
*/
func TestCodec_Expired(t *testing.T) {
	codec := newCodec(t, -1*time.Minute)

	token, err := codec.Issue(map[string]any{"email": "a@x.com"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

/*
TestCodec_Malformed covers garbage token strings.
*/
func TestCodec_Malformed(t *testing.T) {
	codec := newCodec(t, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := codec.Verify(token)
		assert.Error(t, err, "token %q must not verify", token)
		assert.Nil(t, claims)
	}
}

/*
TestCodec_EmptySecret rejects construction with no shared secret.
*/
func TestCodec_EmptySecret(t *testing.T) {
	codec, err := sec.NewCodec("", "reloop.market", time.Hour)
	assert.Error(t, err)
	assert.Nil(t, codec)
}

/*
TestCodec_MissingEmailClaim still verifies but reports an empty identity;
the authentication gate does not require the email claim, gates downstream do.
*/
func TestCodec_MissingEmailClaim(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue(map[string]any{"name": "anonymous"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, claims.Email)
	assert.Equal(t, "anonymous", claims.Profile["name"])
}
