package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "agg:monthly:"

// SummaryCache holds serialized monthly-summary responses for the read API.
// Entries expire on their own TTL and are dropped wholesale after each
// successful pipeline run, since the whole mart is rebuilt.
type SummaryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSummaryCache(rdb *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{rdb: rdb, ttl: ttl}
}

func summaryKey(month string) string {
	if month == "" {
		month = "all"
	}
	return summaryKeyPrefix + month
}

// Get returns the cached payload for a month filter ("" = unfiltered).
// A miss or a redis error both report not-found; the caller falls through
// to the database.
func (c *SummaryCache) Get(ctx context.Context, month string) ([]byte, bool) {
	b, err := c.rdb.Get(ctx, summaryKey(month)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *SummaryCache) Set(ctx context.Context, month string, payload []byte) error {
	return c.rdb.Set(ctx, summaryKey(month), payload, c.ttl).Err()
}

// Invalidate removes every cached summary payload.
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, summaryKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
