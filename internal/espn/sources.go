package espn

import (
	"context"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

// SiteSource loads the upcoming or in-progress draft from the site feed. Before the draft
// it projects prospects into open slots; once live it reports announced selections.
type SiteSource struct {
	client  *Client
	tracker *draft.Tracker
	season  int
	rounds  draft.RoundSet
}

// NewSiteSource builds a SiteSource for season.
func NewSiteSource(client *Client, tracker *draft.Tracker, season int, rounds []int) *SiteSource {
	return &SiteSource{client: client, tracker: tracker, season: season, rounds: draft.NewRoundSet(rounds)}
}

func (s *SiteSource) Mode() string { return "site" }

// Load fetches the feed, derives draft state and normalizes with the matching feed shape.
func (s *SiteSource) Load(ctx context.Context, prev draft.State) (draft.State, []draft.Pick, error) {
	feed, ok := s.client.SiteFeed(ctx, s.season, prev.IsLive)
	if !ok {
		return s.tracker.Fallback(s.season, prev), nil, draft.ErrFeedUnavailable
	}
	state := s.tracker.FromFeed(feed.Status.FeedStatus(), prev)
	return state, s.normalizer(ctx, feed, state).Normalize(s.rounds), nil
}

func (s *SiteSource) normalizer(ctx context.Context, feed SiteFeed, state draft.State) Normalizer {
	if state.Status == draft.StatusPre {
		return ProjectionFeed{Feed: feed, Prospects: s.client.Prospects(ctx, s.season)}
	}
	return LiveFeed{Feed: feed}
}

// HistoricalSource replays a completed draft for simulation.
type HistoricalSource struct {
	client *Client
	season int
	rounds []int
}

// NewHistoricalSource builds a HistoricalSource for season.
func NewHistoricalSource(client *Client, season int, rounds []int) *HistoricalSource {
	return &HistoricalSource{client: client, season: season, rounds: append([]int(nil), rounds...)}
}

func (s *HistoricalSource) Mode() string { return "historical" }

// Load returns every completed pick of the configured rounds.
func (s *HistoricalSource) Load(ctx context.Context, prev draft.State) (draft.State, []draft.Pick, error) {
	state := draft.Simulated(prev)
	picks := s.client.Historical(ctx, s.season, s.rounds)
	if len(picks) == 0 {
		return state, nil, draft.ErrFeedUnavailable
	}
	return state, picks, nil
}
