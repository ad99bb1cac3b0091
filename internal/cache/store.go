// Package cache wraps a key/value store with the feed caching policy: read-through lookups,
// caller-selected TTLs and no writes for empty results.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
	"github.com/preston-bernstein/nfl-draft-service/internal/metrics"
)

// Store is the minimal key/value contract the cache needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache applies read-through semantics over a Store.
type Cache struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// New constructs a Cache. A nil store disables caching.
func New(store Store, logger *slog.Logger, recorder *metrics.Recorder) *Cache {
	return &Cache{store: store, logger: logger, metrics: recorder}
}

// GetOrFetch returns the cached value for key when present. Otherwise it calls fetch and, when
// fetch reports a non-empty result, stores it with ttl. Nothing is stored once ctx is done.
// Store failures count as misses.
func GetOrFetch[T any](ctx context.Context, c *Cache, key Key, ttl time.Duration, fetch func(context.Context) (T, bool)) T {
	if c == nil || c.store == nil {
		value, _ := fetch(ctx)
		return value
	}
	logger := logging.FromContext(ctx, c.logger)

	raw, ok, err := c.store.Get(ctx, key.String())
	if err != nil {
		logging.Warn(logger, "cache read failed", logging.FieldCacheKey, key.String(), "error", err)
	}
	if ok && err == nil {
		var cached T
		decodeErr := json.Unmarshal(raw, &cached)
		if decodeErr == nil {
			c.metrics.RecordCacheLookup(key.Kind, true)
			return cached
		}
		logging.Warn(logger, "cache entry undecodable", logging.FieldCacheKey, key.String(), "error", decodeErr)
	}
	c.metrics.RecordCacheLookup(key.Kind, false)

	value, nonEmpty := fetch(ctx)
	if !nonEmpty || ctx.Err() != nil {
		return value
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		logging.Warn(logger, "cache encode failed", logging.FieldCacheKey, key.String(), "error", err)
		return value
	}
	if err := c.store.Set(ctx, key.String(), encoded, ttl); err != nil {
		logging.Warn(logger, "cache write failed", logging.FieldCacheKey, key.String(), "error", err)
	}
	return value
}
