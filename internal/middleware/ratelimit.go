package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Niiaks/pixcode/internal/config"
	"github.com/Niiaks/pixcode/internal/redis"
)

// RateLimiter is satisfied by *redis.Client.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*redis.RateLimitResult, error)
	SimpleRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error)
}

type RateLimit struct {
	limiter RateLimiter
	cfg     config.RateLimitConfig
}

func NewRateLimit(limiter RateLimiter, cfg config.RateLimitConfig) *RateLimit {
	return &RateLimit{
		limiter: limiter,
		cfg:     cfg,
	}
}

// Limit rejects callers that exceed the configured rate within scope with
// 429. Limiter errors are logged and the request is let through.
func (rl *RateLimit) Limit(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil || rl.limiter == nil || !rl.cfg.Enabled {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			logger := GetLogger(ctx)
			key := scope + ":ip:" + clientIP(r)

			allowed, remaining, err := rl.check(ctx, key)
			if err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rl.cfg.Limit, 10))
			if remaining >= 0 {
				w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
			}

			if !allowed {
				logger.Warn().Str("key", key).Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(rl.cfg.Window.Seconds())))
				http.Error(w, redis.ErrRateLimitExceeded.Error(), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// check returns remaining = -1 when the strategy does not report it.
func (rl *RateLimit) check(ctx context.Context, key string) (bool, int64, error) {
	if rl.cfg.Strategy == "fixed" {
		allowed, err := rl.limiter.SimpleRateLimit(ctx, key, rl.cfg.Limit, rl.cfg.Window)
		return allowed, -1, err
	}

	res, err := rl.limiter.CheckRateLimit(ctx, key, rl.cfg.Limit, rl.cfg.Window)
	if err != nil {
		return false, 0, err
	}
	return res.Allowed, res.Remaining, nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
