package cache

import (
	"fmt"
	"strconv"
	"strings"
)

// Resource kinds used as key prefixes and metric labels.
const (
	KindSite       = "site"
	KindProspects  = "prospects"
	KindTeams      = "teams"
	KindHistorical = "historical"
)

// Key identifies a cached resource by kind, season and an optional mode qualifier.
type Key struct {
	Kind      string
	Season    int
	Qualifier string
}

func (k Key) String() string {
	if k.Kind == KindTeams {
		return "nfl_teams_lookup"
	}
	key := fmt.Sprintf("nfl_draft_%s_%d", k.Kind, k.Season)
	if k.Qualifier != "" {
		key += "_" + k.Qualifier
	}
	return key
}

// SiteKey is the key for the site draft feed of a season.
func SiteKey(season int) Key { return Key{Kind: KindSite, Season: season} }

// ProspectsKey is the key for the ranked prospect list of a season.
func ProspectsKey(season int) Key { return Key{Kind: KindProspects, Season: season} }

// TeamsKey is the key for the team id lookup.
func TeamsKey() Key { return Key{Kind: KindTeams} }

// HistoricalKey is the key for a completed season's picks restricted to rounds.
func HistoricalKey(season int, rounds []int) Key {
	parts := make([]string, 0, len(rounds))
	for _, r := range rounds {
		parts = append(parts, strconv.Itoa(r))
	}
	qualifier := "all"
	if len(parts) > 0 {
		qualifier = "r" + strings.Join(parts, "-")
	}
	return Key{Kind: KindHistorical, Season: season, Qualifier: qualifier}
}
