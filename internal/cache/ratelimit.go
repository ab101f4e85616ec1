package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// rateLimitIPPrefix is the Redis key prefix for IP rate limits.
const rateLimitIPPrefix = "ratelimit:ip:"

// RateLimitResult contains the result of a rate limit check.
type RateLimitResult struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// fixedWindowScript counts a hit in the current window. The window starts
// with the first hit and its key expires when the window ends.
var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local window_ms = tonumber(ARGV[1])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('PEXPIRE', key, window_ms)
	end

	local ttl = redis.call('PTTL', key)
	if ttl < 0 then
		redis.call('PEXPIRE', key, window_ms)
		ttl = window_ms
	end

	return {count, ttl}
`)

// CheckIPRateLimit counts a request from ip against a fixed window of
// max requests. IP is hashed to avoid storing raw addresses.
func (c *Cache) CheckIPRateLimit(ctx context.Context, ip string, max int, window time.Duration) (*RateLimitResult, error) {
	key := rateLimitIPPrefix + hashIP(ip)

	result, err := fixedWindowScript.Run(ctx, c.client,
		[]string{key},
		window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("rate limit script returned %d values", len(result))
	}

	return windowResult(result[0], time.Duration(result[1])*time.Millisecond, int64(max), time.Now()), nil
}

// windowResult turns a window hit count and remaining window time into a
// RateLimitResult.
func windowResult(count int64, ttl time.Duration, max int64, now time.Time) *RateLimitResult {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}

	res := &RateLimitResult{
		Allowed:   count <= max,
		Limit:     max,
		Remaining: remaining,
		ResetAt:   now.Add(ttl),
	}
	if !res.Allowed {
		res.RetryAfter = ttl
	}
	return res
}

// hashIP creates a truncated SHA256 hash of an IP address.
func hashIP(ip string) string {
	hash := sha256.Sum256([]byte(ip))
	return hex.EncodeToString(hash[:8]) // 16 hex chars
}
