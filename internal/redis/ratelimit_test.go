package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	log := zerolog.Nop()
	return NewFromClient(&log, rdb, "test:"), mr
}

func TestCheckRateLimit(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	for i := int64(0); i < 3; i++ {
		res, err := c.CheckRateLimit(ctx, "brcodes:ip:10.0.0.1", 3, time.Minute)
		if err != nil {
			t.Fatalf("request %d: unexpected error: %v", i, err)
		}
		if !res.Allowed {
			t.Fatalf("request %d: expected allowed", i)
		}
		if res.Remaining != 2-i {
			t.Fatalf("request %d: expected %d remaining, got %d", i, 2-i, res.Remaining)
		}
	}

	res, err := c.CheckRateLimit(ctx, "brcodes:ip:10.0.0.1", 3, time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Allowed {
		t.Fatal("expected fourth request to be limited")
	}

	other, err := c.CheckRateLimit(ctx, "brcodes:ip:10.0.0.2", 3, time.Minute)
	if err != nil || !other.Allowed {
		t.Fatalf("expected other client to be allowed, got %+v (%v)", other, err)
	}
}

func TestSimpleRateLimit(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := c.SimpleRateLimit(ctx, "ip:10.0.0.1", 2, time.Minute)
		if err != nil || !ok {
			t.Fatalf("request %d: expected allowed, got %v (%v)", i, ok, err)
		}
	}
	if ok, _ := c.SimpleRateLimit(ctx, "ip:10.0.0.1", 2, time.Minute); ok {
		t.Fatal("expected third request to be limited")
	}

	if ttl := mr.TTL("test:ratelimit:fixed:ip:10.0.0.1"); ttl != time.Minute {
		t.Fatalf("expected one minute ttl, got %s", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if ok, _ := c.SimpleRateLimit(ctx, "ip:10.0.0.1", 2, time.Minute); !ok {
		t.Fatal("expected request after window to be allowed")
	}
}

func TestPing(t *testing.T) {
	c, mr := newTestClient(t)
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.Close()
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected error after server shutdown")
	}
}
