// Package espn reads the provider's draft feeds and normalizes them into canonical picks.
package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-draft-service/internal/cache"
	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
	"github.com/preston-bernstein/nfl-draft-service/internal/logging"
)

// Fetcher is the subset of the fetch gateway the client needs.
type Fetcher interface {
	Fetch(ctx context.Context, url string, timeout time.Duration) json.RawMessage
	FetchMany(ctx context.Context, urls []string, limit int, timeout time.Duration) []json.RawMessage
}

// Config controls how the client reaches and caches the provider.
type Config struct {
	SiteBaseURL string
	CoreBaseURL string
	Fetcher     Fetcher
	Cache       *cache.Cache
	Policy      cache.Policy
	Logger      *slog.Logger
}

// Client fetches the provider's draft documents through the cache.
type Client struct {
	siteBase string
	coreBase string
	fetcher  Fetcher
	cache    *cache.Cache
	policy   cache.Policy
	logger   *slog.Logger
}

// NewClient constructs a Client.
func NewClient(cfg Config) *Client {
	return &Client{
		siteBase: normalizeBaseURL(cfg.SiteBaseURL, defaultSiteBaseURL),
		coreBase: normalizeBaseURL(cfg.CoreBaseURL, defaultCoreBaseURL),
		fetcher:  cfg.Fetcher,
		cache:    cfg.Cache,
		policy:   cfg.Policy,
		logger:   cfg.Logger,
	}
}

func normalizeBaseURL(raw, fallback string) string {
	if raw == "" {
		raw = fallback
	}
	return strings.TrimSuffix(raw, "/")
}

// SiteDraftURL is the site feed with pick slots and draft status.
func (c *Client) SiteDraftURL() string {
	return c.siteBase + "/draft"
}

// TeamsURL is the site team directory.
func (c *Client) TeamsURL() string {
	return fmt.Sprintf("%s/teams?limit=%d", c.siteBase, teamsLimit)
}

// AthletesURL is the ranked draft athletes reference list for season.
func (c *Client) AthletesURL(season int) string {
	return fmt.Sprintf("%s/seasons/%d/draft/athletes?limit=%d", c.coreBase, season, prospectListLimit)
}

// RoundsURL is the completed-draft rounds document for season.
func (c *Client) RoundsURL(season int) string {
	return fmt.Sprintf("%s/seasons/%d/draft/rounds?lang=en&region=us&limit=10", c.coreBase, season)
}

// SiteFeed returns the site draft feed. The cache TTL follows live. ok is false when the feed
// could not be fetched or carried nothing.
func (c *Client) SiteFeed(ctx context.Context, season int, live bool) (SiteFeed, bool) {
	logger := logging.FromContext(ctx, c.logger)
	raw := cache.GetOrFetch(ctx, c.cache, cache.SiteKey(season), c.policy.TTL(live), func(ctx context.Context) (json.RawMessage, bool) {
		doc := c.fetcher.Fetch(ctx, c.SiteDraftURL(), feedTimeout)
		_, ok := decodeSiteFeed(doc)
		return doc, ok
	})
	feed, ok := decodeSiteFeed(raw)
	if !ok {
		logging.Warn(logger, "no draft data returned from provider", logging.FieldSeason, season)
		return SiteFeed{}, false
	}
	logging.Info(logger, "site draft feed loaded", logging.FieldCount, len(feed.Picks))
	return feed, true
}

func decodeSiteFeed(raw json.RawMessage) (SiteFeed, bool) {
	if len(raw) == 0 {
		return SiteFeed{}, false
	}
	var feed SiteFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return SiteFeed{}, false
	}
	if feed.Status == nil && len(feed.Picks) == 0 && len(feed.Teams) == 0 {
		return SiteFeed{}, false
	}
	return feed, true
}

// Prospects returns the season's draft athletes ordered by overall rank. Only the first
// prospectResolveCap references are resolved; unresolvable athletes are skipped.
func (c *Client) Prospects(ctx context.Context, season int) []draft.Prospect {
	return cache.GetOrFetch(ctx, c.cache, cache.ProspectsKey(season), c.policy.TTL(false), func(ctx context.Context) ([]draft.Prospect, bool) {
		prospects := c.fetchProspects(ctx, season)
		return prospects, len(prospects) > 0 && ctx.Err() == nil
	})
}

func (c *Client) fetchProspects(ctx context.Context, season int) []draft.Prospect {
	logger := logging.FromContext(ctx, c.logger)
	var list RefList
	if !decode(c.fetcher.Fetch(ctx, c.AthletesURL(season), athleteListTimeout), &list) {
		logging.Warn(logger, "draft athletes list unavailable", logging.FieldSeason, season)
		return nil
	}
	urls := list.URLs()
	if len(urls) > prospectResolveCap {
		urls = urls[:prospectResolveCap]
	}

	docs := c.fetcher.FetchMany(ctx, urls, prospectWorkers, athleteTimeout)
	prospects := make([]draft.Prospect, 0, len(docs))
	for _, doc := range docs {
		var athlete Athlete
		if !decode(doc, &athlete) {
			continue
		}
		prospects = append(prospects, athlete.Prospect())
	}
	sort.SliceStable(prospects, func(i, j int) bool { return prospects[i].OverallRank < prospects[j].OverallRank })
	logging.Info(logger, "ranked draft prospects",
		logging.FieldSeason, season,
		logging.FieldCount, len(prospects),
	)
	return prospects
}

// Teams returns the team id to abbreviation lookup, cached for a day.
func (c *Client) Teams(ctx context.Context) draft.TeamLookup {
	return cache.GetOrFetch(ctx, c.cache, cache.TeamsKey(), cache.LongLived, func(ctx context.Context) (draft.TeamLookup, bool) {
		var dir TeamsDirectory
		if !decode(c.fetcher.Fetch(ctx, c.TeamsURL(), feedTimeout), &dir) {
			return draft.TeamLookup{}, false
		}
		lookup := dir.Lookup()
		logging.Info(logging.FromContext(ctx, c.logger), "fetched team abbreviations", logging.FieldCount, len(lookup))
		return lookup, len(lookup) > 0
	})
}

// Historical returns the completed picks of season for the given rounds, cached for a day.
func (c *Client) Historical(ctx context.Context, season int, rounds []int) []draft.Pick {
	return cache.GetOrFetch(ctx, c.cache, cache.HistoricalKey(season, rounds), cache.LongLived, func(ctx context.Context) ([]draft.Pick, bool) {
		picks := c.fetchHistorical(ctx, season, draft.NewRoundSet(rounds))
		// a cancelled batch leaves athletes unresolved
		return picks, len(picks) > 0 && ctx.Err() == nil
	})
}

func (c *Client) fetchHistorical(ctx context.Context, season int, rounds draft.RoundSet) []draft.Pick {
	logger := logging.FromContext(ctx, c.logger)
	teams := c.Teams(ctx)

	var feed RoundsFeed
	if !decode(c.fetcher.Fetch(ctx, c.RoundsURL(season), feedTimeout), &feed) {
		logging.Warn(logger, "draft rounds feed unavailable", logging.FieldSeason, season)
		return nil
	}
	roundPicks := feed.PicksIn(rounds)

	urls := make([]string, len(roundPicks))
	for i, rp := range roundPicks {
		urls[i] = rp.Pick.Athlete.Ref
	}
	docs := c.fetcher.FetchMany(ctx, urls, historicalWorkers, athleteTimeout)
	athletes := make([]*Athlete, len(docs))
	for i, doc := range docs {
		var athlete Athlete
		if decode(doc, &athlete) {
			athletes[i] = &athlete
		}
	}

	picks := HistoricalFeed{Picks: roundPicks, Athletes: athletes, Teams: teams}.Normalize(rounds)
	logging.Info(logger, "fetched historical picks",
		logging.FieldSeason, season,
		logging.FieldCount, len(picks),
	)
	return picks
}

func decode(raw json.RawMessage, into any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, into) == nil
}
