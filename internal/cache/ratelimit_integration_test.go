//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/swapnest/swapnest/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	c, err := New(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Close()
	})

	return ctx, c
}

func TestIntegrationCheckIPRateLimit_Burst(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	ip := fmt.Sprintf("10.1.2.%d", time.Now().UnixNano()%250)
	const burst = 5

	// The full burst is allowed.
	for i := 0; i < burst; i++ {
		result, err := c.CheckIPRateLimit(ctx, ip, 1, burst)
		if err != nil {
			t.Fatalf("check %d: %v", i, err)
		}
		if !result.Allowed {
			t.Fatalf("expected request %d within burst to be allowed", i)
		}
	}

	// The next request is denied with a retry hint.
	result, err := c.CheckIPRateLimit(ctx, ip, 1, burst)
	if err != nil {
		t.Fatalf("check after burst: %v", err)
	}
	if result.Allowed {
		t.Fatal("expected request beyond burst to be denied")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("expected positive retry-after, got %v", result.RetryAfter)
	}
}

func TestIntegrationCheckIPRateLimit_IndependentIPs(t *testing.T) {
	ctx, c := newCacheTestEnv(t)

	base := time.Now().UnixNano()
	first := fmt.Sprintf("10.9.0.%d", base%250)
	second := fmt.Sprintf("10.9.1.%d", base%250)

	if _, err := c.CheckIPRateLimit(ctx, first, 1, 1); err != nil {
		t.Fatalf("first ip: %v", err)
	}

	// Exhausting one IP's bucket leaves another untouched.
	result, err := c.CheckIPRateLimit(ctx, second, 1, 1)
	if err != nil {
		t.Fatalf("second ip: %v", err)
	}
	if !result.Allowed {
		t.Error("expected an untouched IP to be allowed")
	}
}
