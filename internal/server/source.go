package server

import (
	"log/slog"
	"strings"

	"github.com/preston-bernstein/nfl-draft-service/internal/config"
	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
	"github.com/preston-bernstein/nfl-draft-service/internal/espn"
)

const (
	providerESPN    = "espn"
	providerFixture = "fixture"
)

// normalizeProvider lower-cases the configured provider name, defaulting to espn.
func normalizeProvider(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return providerESPN
	}
	return name
}

// selectSource picks the draft source for the configured provider and mode.
func selectSource(cfg config.Config, client *espn.Client, tracker *draft.Tracker, logger *slog.Logger) draft.Source {
	season := cfg.Draft.Season()
	rounds := cfg.Draft.Rounds

	switch normalizeProvider(cfg.Provider) {
	case providerFixture:
		return espn.NewFixtureSource(season, rounds)
	case providerESPN:
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to espn", slog.String("provider", cfg.Provider))
		}
	}

	if cfg.Draft.SimulateLive {
		return espn.NewHistoricalSource(client, season, rounds)
	}
	return espn.NewSiteSource(client, tracker, season, rounds)
}
