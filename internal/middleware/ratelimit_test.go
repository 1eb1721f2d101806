package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Niiaks/pixcode/internal/config"
	"github.com/Niiaks/pixcode/internal/redis"
)

type stubLimiter struct {
	allowed   bool
	remaining int64
	err       error
	keys      []string
}

func (s *stubLimiter) CheckRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (*redis.RateLimitResult, error) {
	s.keys = append(s.keys, key)
	if s.err != nil {
		return nil, s.err
	}
	return &redis.RateLimitResult{Allowed: s.allowed, Remaining: s.remaining}, nil
}

func (s *stubLimiter) SimpleRateLimit(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	s.keys = append(s.keys, "fixed|"+key)
	return s.allowed, s.err
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/brcodes", nil)
	req.RemoteAddr = "192.0.2.10:51234"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Strategy: "sliding", Limit: 10, Window: time.Minute}

	tests := []struct {
		name     string
		limiter  *stubLimiter
		wantCode int
	}{
		{"allowed", &stubLimiter{allowed: true, remaining: 9}, http.StatusOK},
		{"limited", &stubLimiter{allowed: false}, http.StatusTooManyRequests},
		{"limiter down fails open", &stubLimiter{err: errors.New("dial tcp: refused")}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewRateLimit(tt.limiter, cfg).Limit("api")(okHandler))
			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if len(tt.limiter.keys) != 1 || tt.limiter.keys[0] != "api:ip:192.0.2.10" {
				t.Fatalf("unexpected limiter keys %v", tt.limiter.keys)
			}
		})
	}
}

func TestRateLimitHeaders(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Strategy: "sliding", Limit: 10, Window: time.Minute}
	rec := serve(NewRateLimit(&stubLimiter{allowed: true, remaining: 4}, cfg).Limit("api")(okHandler))

	if got := rec.Header().Get("X-RateLimit-Limit"); got != "10" {
		t.Fatalf("expected limit header 10, got %q", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Fatalf("expected remaining header 4, got %q", got)
	}
}

func TestRateLimitFixedStrategy(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Strategy: "fixed", Limit: 1, Window: time.Minute}
	limiter := &stubLimiter{allowed: false}

	rec := serve(NewRateLimit(limiter, cfg).Limit("api")(okHandler))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" {
		t.Fatalf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
	}
	if limiter.keys[0] != "fixed|api:ip:192.0.2.10" {
		t.Fatalf("expected fixed window limiter, got %v", limiter.keys)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	rec := serve(NewRateLimit(limiter, config.RateLimitConfig{Enabled: false}).Limit("api")(okHandler))
	if rec.Code != http.StatusOK || len(limiter.keys) != 0 {
		t.Fatalf("expected pass-through, got %d with keys %v", rec.Code, limiter.keys)
	}

	var nilLimit *RateLimit
	if rec := serve(nilLimit.Limit("api")(okHandler)); rec.Code != http.StatusOK {
		t.Fatalf("expected nil limiter to pass through, got %d", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestIDFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when missing", "", false},
		{"kept when valid", "req-123", true},
		{"replaced when it has spaces", "req 123\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
				t.Fatalf("expected response header to echo %q, got %q", seen, rec.Header().Get(RequestIDHeader))
			}
			if (seen == tt.incoming) != tt.keep {
				t.Fatalf("incoming %q, context id %q, keep=%v", tt.incoming, seen, tt.keep)
			}
		})
	}
}
