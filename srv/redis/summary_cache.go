package redis

import (
	"context"
	"errors"
	"fmt"
	"studentrecords/srv"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "summary:"

// SummaryCache stores generated summaries under their content digest. Entries
// expire after TTL; a zero TTL keeps them until evicted.
type SummaryCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewSummaryCache(addr string, ttl time.Duration) *SummaryCache {
	return &SummaryCache{Client: setupClient(addr), TTL: ttl}
}

func (c SummaryCache) CheckConnection(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c SummaryCache) GetSummary(ctx context.Context, key string) (string, error) {
	summary, err := c.Client.Get(ctx, summaryKeyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", srv.ErrNotFound
		}
		return "", fmt.Errorf("failed to get summary from redis: %w", err)
	}
	return summary, nil
}

func (c SummaryCache) PersistSummary(ctx context.Context, key string, summary string) error {
	if err := c.Client.Set(ctx, summaryKeyPrefix+key, summary, c.TTL).Err(); err != nil {
		return fmt.Errorf("failed to persist summary to redis: %w", err)
	}
	return nil
}

func (c SummaryCache) Close() error {
	return c.Client.Close()
}

var _ srv.SummaryCache = SummaryCache{}
