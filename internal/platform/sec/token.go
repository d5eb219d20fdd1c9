// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

// Package sec provides cryptographic primitives and bearer credential management.
//
// # Architecture
//
// This package isolates security-sensitive code (token signing and verification)
// from the domain logic. It acts as an Infrastructure service injected into the
// transport layer via the [middleware.TokenVerifier] interface.
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of a verified bearer token.
//
// # Staleness
//
// Profile fields (including any role the client embedded at issuance time) are
// a snapshot taken when the token was signed. They are NEVER trusted for
// authorization decisions; the authorization gate re-reads the current role
// from the identity store on every request.
type Claims struct {
	// Email is the identity claim used to resolve the actor.
	Email string

	// Profile carries every non-registered claim that was signed into the token.
	Profile map[string]any
}

// Codec signs and verifies bearer tokens using an HMAC-SHA256 shared secret.
//
// # Concurrency
//
// The secret is set once at construction and never mutated, so a single Codec
// is safe for unsynchronized concurrent use across request goroutines.
type Codec struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewCodec creates a Codec with a fixed validity window.
func NewCodec(secret, issuer string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: token secret must not be empty")
	}
	return &Codec{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// Issue signs the given claim mapping into a bearer token.
//
// # Flow
//  1. Copy the caller's claims verbatim (the token is signed, not encrypted;
//     callers must not embed secrets).
//  2. Stamp registered claims: issuer, issued-at, and expiry (now + ttl).
//  3. Sign with HS256 over the shared secret.
func (codec *Codec) Issue(profile map[string]any) (string, error) {
	currentTime := time.Now()

	claims := jwt.MapClaims{}
	for name, value := range profile {
		claims[name] = value
	}
	claims["iss"] = codec.issuer
	claims["iat"] = jwt.NewNumericDate(currentTime)
	claims["exp"] = jwt.NewNumericDate(currentTime.Add(codec.ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and expiry of a bearer token string.
//
// It is pure and side-effect-free: validity is determined solely by the
// signature and the embedded expiration instant. On success it returns the
// original claims with the registered fields stripped out.
func (codec *Codec) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
			}
			return codec.secret, nil
		},
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	claims := &Claims{Profile: map[string]any{}}
	for name, value := range mapClaims {
		switch name {
		case "iss", "iat", "exp", "nbf", "aud", "sub", "jti":
			continue
		}
		claims.Profile[name] = value
	}

	email, _ := claims.Profile["email"].(string)
	claims.Email = email

	return claims, nil
}

// TTL reports the codec's fixed validity window.
func (codec *Codec) TTL() time.Duration {
	return codec.ttl
}
