package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSummaryCache(t *testing.T) (*miniredis.Miniredis, *SummaryCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewSummaryCache(rdb, 30*time.Second)
}

func TestSummaryCache_SetGet(t *testing.T) {
	_, c := newSummaryCache(t)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "2024-03"); ok {
		t.Fatal("expected miss on empty cache")
	}

	payload := []byte(`[{"month":"2024-03-01"}]`)
	if err := c.Set(ctx, "2024-03", payload); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok := c.Get(ctx, "2024-03")
	if !ok || string(got) != string(payload) {
		t.Fatalf("Get = %q ok=%v, want payload back", got, ok)
	}

	// the unfiltered listing is a separate entry
	if _, ok := c.Get(ctx, ""); ok {
		t.Fatal("unfiltered entry should not exist yet")
	}
}

func TestSummaryCache_Expiry(t *testing.T) {
	mr, c := newSummaryCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "", []byte("[]")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(time.Minute)
	if _, ok := c.Get(ctx, ""); ok {
		t.Fatal("entry should have expired")
	}
}

func TestSummaryCache_Invalidate(t *testing.T) {
	mr, c := newSummaryCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "", []byte("[]"))
	_ = c.Set(ctx, "2024-03", []byte("[]"))
	mr.Set("unrelated", "keepme")

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok := c.Get(ctx, ""); ok {
		t.Fatal("unfiltered entry survived invalidation")
	}
	if _, ok := c.Get(ctx, "2024-03"); ok {
		t.Fatal("month entry survived invalidation")
	}
	if v, err := mr.Get("unrelated"); err != nil || v != "keepme" {
		t.Fatalf("unrelated key touched: v=%q err=%v", v, err)
	}
}
