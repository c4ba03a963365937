package studentrecords

import (
	"context"
	"fmt"
	"studentrecords/common"
	"studentrecords/srv"
	"studentrecords/srv/redis"
	"studentrecords/srv/sqlite"
	"time"

	"github.com/rs/zerolog/log"
)

// GetService opens SQLite storage and, when a redis address is configured and
// reachable, a redis summary cache. Without one, summaries are not cached.
func GetService(settings common.Settings) (srv.Service, error) {
	storage, err := sqlite.NewStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite storage: %w", err)
	}
	log.Info().Msg("Using SQLite storage")

	var cache srv.SummaryCache
	if settings.RedisAddress != "" {
		redisCache := redis.NewSummaryCache(settings.RedisAddress, settings.SummaryCacheTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisCache.CheckConnection(ctx); err != nil {
			log.Warn().Err(err).Str("address", settings.RedisAddress).Msg("Redis unreachable, summaries will not be cached")
			redisCache.Close()
		} else {
			log.Info().Str("address", settings.RedisAddress).Dur("ttl", settings.SummaryCacheTTL).Msg("Using Redis summary cache")
			cache = redisCache
		}
	}

	return srv.NewDelegator(storage, cache), nil
}
