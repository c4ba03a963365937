package redis

import (
	"context"
	"studentrecords/srv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCache(t *testing.T) {
	cache := newTestSummaryCache(t, time.Minute)
	ctx := context.Background()

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		_, err := cache.GetSummary(ctx, "absent")
		assert.ErrorIs(t, err, srv.ErrNotFound)
	})

	t.Run("persist then get", func(t *testing.T) {
		require.NoError(t, cache.PersistSummary(ctx, "abc", "Two students are enrolled."))

		got, err := cache.GetSummary(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "Two students are enrolled.", got)
	})

	t.Run("entries carry the configured ttl", func(t *testing.T) {
		require.NoError(t, cache.PersistSummary(ctx, "ttl", "x"))

		ttl, err := cache.Client.TTL(ctx, summaryKeyPrefix+"ttl").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}
