package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

func TestRedisLimiter_Live(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := rdb.NewClient(&rdb.Options{Addr: addr})
	defer client.Close()

	l := NewRedisLimiter(client, fmt.Sprintf("rl-test-%d:", time.Now().UnixNano()), 2, time.Minute)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := l.Allow(ctx, "+33612345678")
		if err != nil || !res.Allowed {
			t.Fatalf("hit %d: %+v, %v", i+1, res, err)
		}
	}
	res, err := l.Allow(ctx, "+33612345678")
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if res.Allowed || res.RetryAfter <= 0 {
		t.Fatalf("third hit = %+v; want denied with RetryAfter", res)
	}
}

func TestRedisLimiter_Unreachable(t *testing.T) {
	client := rdb.NewClient(&rdb.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	l := NewRedisLimiter(client, "", 5, time.Minute)
	if _, err := l.Allow(context.Background(), "k"); err == nil {
		t.Fatal("expected error from unreachable redis")
	}
}

func TestRedisLimiter_LiveExpiry(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	client := rdb.NewClient(&rdb.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()

	fixed := time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC)
	prefix := fmt.Sprintf("rl-ttl-%d:", time.Now().UnixNano())
	l := NewRedisLimiter(client, prefix, 1, time.Minute)
	l.now = func() time.Time { return fixed }
	windowKey := func(key string) string {
		return fmt.Sprintf("%s%s:%d", prefix, key, fixed.Truncate(time.Minute).Unix())
	}

	t.Run("first hit sets expiry", func(t *testing.T) {
		if _, err := l.Allow(ctx, "fresh"); err != nil {
			t.Fatalf("Allow: %v", err)
		}
		ttl, err := client.TTL(ctx, windowKey("fresh")).Result()
		if err != nil {
			t.Fatalf("TTL: %v", err)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Errorf("TTL = %v, want within (0, 1m]", ttl)
		}
	})

	t.Run("key without expiry is repaired", func(t *testing.T) {
		if err := client.Set(ctx, windowKey("stuck"), 5, 0).Err(); err != nil {
			t.Fatalf("Set: %v", err)
		}
		res, err := l.Allow(ctx, "stuck")
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if res.Allowed || res.RetryAfter != time.Minute {
			t.Errorf("Allow = %+v, want denied with RetryAfter 1m", res)
		}
		ttl, err := client.TTL(ctx, windowKey("stuck")).Result()
		if err != nil {
			t.Fatalf("TTL: %v", err)
		}
		if ttl <= 0 {
			t.Errorf("TTL = %v, want positive", ttl)
		}
	})
}
