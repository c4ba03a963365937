package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1,
	})
}

// newTestSummaryCache skips the calling test when no local redis server is
// reachable, and flushes the test database otherwise.
func newTestSummaryCache(t *testing.T, ttl time.Duration) *SummaryCache {
	t.Helper()
	client := NewTestRedisClient()
	t.Cleanup(func() { client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("failed to flush redis database: %v", err)
	}

	return &SummaryCache{Client: client, TTL: ttl}
}
