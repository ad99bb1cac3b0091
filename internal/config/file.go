package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the optional YAML config file. Environment variables win over it.
type fileConfig struct {
	Port         string      `yaml:"port"`
	PollInterval string      `yaml:"poll_interval"`
	Provider     string      `yaml:"provider"`
	Draft        fileDraft   `yaml:"draft"`
	Cache        fileCache   `yaml:"cache"`
	ESPN         fileESPN    `yaml:"espn"`
	Archive      fileArchive `yaml:"archive"`
}

type fileDraft struct {
	Rounds            string   `yaml:"rounds"`
	DraftYear         int      `yaml:"draft_year"`
	SimulateLive      bool     `yaml:"simulate_live"`
	SimulateYear      int      `yaml:"simulate_year"`
	FavoriteTeams     []string `yaml:"favorite_teams"`
	LiveRefresh       string   `yaml:"live_refresh_interval"`
	ProjectionRefresh string   `yaml:"projection_refresh_interval"`
}

type fileCache struct {
	Backend  string `yaml:"backend"`
	RedisURL string `yaml:"redis_url"`
}

type fileESPN struct {
	SiteBaseURL string `yaml:"site_base_url"`
	CoreBaseURL string `yaml:"core_base_url"`
	Retries     *int   `yaml:"retries"`
}

type fileArchive struct {
	Enabled       *bool  `yaml:"enabled"`
	Dir           string `yaml:"dir"`
	RetainSeasons int    `yaml:"retain_seasons"`
}

// loadFile reads the YAML config at path. A missing path yields an empty config; unreadable
// or malformed files are logged and ignored.
func loadFile(path string, logger *slog.Logger) fileConfig {
	if path == "" {
		return fileConfig{}
	}
	cfg, err := readFile(path)
	if err != nil {
		if logger != nil {
			logger.Warn("config file ignored", "path", path, "error", err)
		}
		return fileConfig{}
	}
	return cfg
}

func readFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func fileDuration(raw string, defaultValue time.Duration) time.Duration {
	if raw == "" {
		return defaultValue
	}
	if parsed, ok := parseDuration(raw); ok {
		return parsed
	}
	return defaultValue
}
