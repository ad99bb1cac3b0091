package server

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/preston-bernstein/nfl-draft-service/internal/cache"
	"github.com/preston-bernstein/nfl-draft-service/internal/config"
	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
)

const cacheBackendRedis = "redis"

var openRedis = cache.OpenRedis

// buildCacheStore returns the configured cache store and a close func. An unreachable Redis
// falls back to the in-process store so the service still runs.
func buildCacheStore(cfg config.CacheConfig, clock clockwork.Clock, logger *slog.Logger) (cache.Store, func() error) {
	if cfg.Backend != cacheBackendRedis {
		return cache.NewMemoryStore(clock), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()

	store, err := openRedis(ctx, cfg.RedisURL)
	if err != nil {
		logging.Warn(logger, "redis cache unavailable, falling back to memory", "error", err)
		return cache.NewMemoryStore(clock), nil
	}
	logging.Info(logger, "using redis cache")
	return store, store.Close
}
