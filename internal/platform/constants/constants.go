// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Token bucket capacities and key TTLs.
  - Security: Credential issuer and validity window.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "reloop-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCapacity is the token bucket capacity per client IP.
	RateLimitCapacity = 150

	// RateLimitRefillTokens is the number of tokens restored every refill interval.
	RateLimitRefillTokens = 100

	// RateLimitRefillInterval is how often the bucket is refilled.
	RateLimitRefillInterval = 1 * time.Second

	// RateLimitKeyTTL is how long an idle client's bucket survives in Redis.
	RateLimitKeyTTL = 3 * time.Minute

	// RedisPrefixRateLimit namespaces rate limiter keys.
	RedisPrefixRateLimit = "ratelimit:ip:"
)

// # Credentials

const (
	// AuthIssuer is the standard 'iss' claim in issued bearer tokens.
	AuthIssuer = "reloop.market"

	// CredentialTTL is the fixed validity window of an issued bearer token.
	CredentialTTL = 30 * 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldSuccess = "success"
	FieldMessage = "message"
	FieldRole    = "role"
	FieldStatus  = "status"
	FieldEmail   = "email"
	FieldToken   = "token"
)

// # Database Schemas

const (
	SchemaMarket = "market"
)
