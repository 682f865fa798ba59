package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ArpanNarula/Shop-Assesment/internal/apperr"
)

func testRedis(t *testing.T) *Redis {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	r, err := NewRedis(context.Background(), addr)
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRedisSetAndGet(t *testing.T) {
	r := testRedis(t)
	ctx := context.Background()

	key := "shop-test-cart"
	t.Cleanup(func() { r.client.Del(ctx, key) })

	if err := r.Set(ctx, key, []byte(`[{"id":7}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := r.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[{"id":7}]` {
		t.Errorf("value = %q", got)
	}
}

func TestRedisGetMissingSlot(t *testing.T) {
	r := testRedis(t)
	_, err := r.Get(context.Background(), "shop-test-missing-slot")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
