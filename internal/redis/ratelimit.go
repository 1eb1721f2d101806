package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// RateLimitResult contains rate limit check result
type RateLimitResult struct {
	Allowed   bool
	Remaining int64
	ResetAt   time.Time
}

// slidingWindow trims entries older than the window, then admits the request
// if fewer than limit remain. Returns {allowed, remaining}.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call("ZREMRANGEBYSCORE", key, "-inf", window_start)

	local count = redis.call("ZCARD", key)

	if count < limit then
		redis.call("ZADD", key, now, now .. "-" .. math.random())
		redis.call("PEXPIRE", key, window_ms)
		return {1, limit - count - 1}
	end
	return {0, 0}
`)

// CheckRateLimit implements a sliding window rate limiter.
// key identifies the caller (e.g. "brcodes:ip:1.2.3.4").
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*RateLimitResult, error) {
	prefixedKey := c.prefixKey("ratelimit:" + key)
	now := time.Now()

	result, err := slidingWindow.Run(ctx, c.rdb, []string{prefixedKey},
		now.UnixMilli(),
		now.Add(-window).UnixMilli(),
		limit,
		window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("rate limit script: %w", err)
	}
	if len(result) != 2 {
		return nil, fmt.Errorf("rate limit script: unexpected reply %v", result)
	}

	return &RateLimitResult{
		Allowed:   result[0] == 1,
		Remaining: result[1],
		ResetAt:   now.Add(window),
	}, nil
}

// SimpleRateLimit is a fixed window limiter: one INCR per request, the
// window starting at the first request.
func (c *Client) SimpleRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	prefixedKey := c.prefixKey("ratelimit:fixed:" + key)

	count, err := c.rdb.Incr(ctx, prefixedKey).Result()
	if err != nil {
		return false, err
	}

	if count == 1 {
		if err := c.rdb.Expire(ctx, prefixedKey, window).Err(); err != nil {
			return false, err
		}
	}

	return count <= limit, nil
}
