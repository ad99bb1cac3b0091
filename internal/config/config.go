package config

import (
	"log/slog"
	"time"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port         string
	PollInterval Duration
	Provider     string
	AdminToken   string
	CORSOrigins  []string
	Draft        DraftConfig
	Cache        CacheConfig
	ESPN         ESPNConfig
	Archive      ArchiveConfig
	Metrics      MetricsConfig
}

// Load reads configuration from an optional YAML file overlaid by environment variables,
// falling back to sensible defaults. Problems are corrected, logged and never fatal.
func Load(logger *slog.Logger) Config {
	return loadAt(time.Now(), logger)
}

func loadAt(now time.Time, logger *slog.Logger) Config {
	file := loadFile(envOrDefault(envConfigFile, ""), logger)

	return Config{
		Port:         envOrDefault(envPort, firstNonEmpty(file.Port, defaultPort)),
		PollInterval: durationEnvOrDefault(envPollInterval, fileDuration(file.PollInterval, defaultPollInterval)),
		Provider:     envOrDefault(envProvider, firstNonEmpty(file.Provider, defaultProvider)),
		AdminToken:   envOrDefault(envAdminToken, ""),
		CORSOrigins:  listEnvOrDefault(envCORSOrigins, defaultCORSOrigins),
		Draft:        loadDraft(now, file.Draft, logger),
		Cache:        loadCache(file.Cache),
		ESPN:         loadESPN(file.ESPN),
		Archive:      loadArchive(file.Archive),
		Metrics:      loadMetrics(),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
