package redis

import (
	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
)

type Options = redis.Options

func NewClient(opt *Options) *redis.Client {
	return redis.NewClient(opt)
}

func setupClient(addr string) *redis.Client {
	if addr == "" {
		zlog.Info().Msg("Redis address defaulting to localhost:6379")
		addr = "localhost:6379"
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
	})
}
