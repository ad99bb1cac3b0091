package config

import "strings"

// CacheConfig selects the key/value store backing feed caching.
type CacheConfig struct {
	Backend  string
	RedisURL string
}

func loadCache(file fileCache) CacheConfig {
	return CacheConfig{
		Backend:  strings.ToLower(envOrDefault(envCacheBackend, firstNonEmpty(file.Backend, defaultCacheBackend))),
		RedisURL: envOrDefault(envRedisURL, firstNonEmpty(file.RedisURL, defaultRedisURL)),
	}
}
