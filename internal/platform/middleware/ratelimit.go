// Copyright (c) 2026 Reloop. All rights reserved.
// Author: khoa.le.dev@gmail.com

package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lekhoa/reloop/internal/platform/constants"
	"github.com/lekhoa/reloop/internal/platform/ctxutil"
	"github.com/lekhoa/reloop/internal/platform/respond"
)

// tokenBucketScript implements an atomic token bucket in Redis. Running the
// refill-and-take as a single Lua script keeps the limiter race-free across
// API replicas.
var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local refill_tokens = tonumber(ARGV[3])
	local interval_ms = tonumber(ARGV[4])
	local ttl_seconds = tonumber(ARGV[5])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	local elapsed = math.max(0, now_ms - last_refill)
	local intervals = math.floor(elapsed / interval_ms)
	if intervals > 0 then
		tokens = math.min(capacity, tokens + (intervals * refill_tokens))
		last_refill = last_refill + (intervals * interval_ms)
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, retry_after_ms }
`)

// RateLimit limits requests per client IP using a Redis-backed token bucket.
//
// # Failure Mode
//
// The limiter fails open: if Redis is unreachable the request proceeds, since
// availability of the marketplace outweighs throttling precision.
func RateLimit(client *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := constants.RedisPrefixRateLimit + RealIP(request)

			args := []any{
				time.Now().UnixMilli(),
				constants.RateLimitCapacity,
				constants.RateLimitRefillTokens,
				constants.RateLimitRefillInterval.Milliseconds(),
				int64(constants.RateLimitKeyTTL / time.Second),
			}

			values, err := tokenBucketScript.Run(request.Context(), client, []string{key}, args...).Int64Slice()
			if err != nil || len(values) != 2 {
				ctxutil.GetLogger(request.Context()).WarnContext(request.Context(),
					"ratelimit_degraded", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			if values[0] != 1 {
				retryAfterSeconds := int(math.Ceil(float64(values[1]) / 1000.0))
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				respond.JSON(writer, http.StatusTooManyRequests, respond.Envelope{
					Success: false,
					Message: "Rate limit exceeded",
				})
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
