// Package draft holds the canonical draft-pick model and the logic that turns normalized
// feed output into the snapshot served to consumers: state tracking, round selection,
// on-the-clock marking and favorite-team highlights.
package draft

import (
	"errors"
	"time"
)

// PlayerTBD marks a pick whose selection has not been announced or resolved.
const PlayerTBD = "TBD"

// DefaultProspectRank is used when the provider omits a prospect's overall ranking.
const DefaultProspectRank = 999

// ErrFeedUnavailable reports that the primary feed for the configured mode returned nothing.
var ErrFeedUnavailable = errors.New("draft feed unavailable")

// Status is the derived lifecycle state of the tracked draft.
type Status string

const (
	StatusPre      Status = "pre"
	StatusLive     Status = "live"
	StatusComplete Status = "complete"
	StatusSimulate Status = "simulate"
)

// Pick is one draft selection slot with its resolved or pending occupant.
type Pick struct {
	PickNumber int    `json:"pick_number"`
	Round      int    `json:"round"`
	RoundPick  int    `json:"round_pick"`
	TeamAbbr   string `json:"team_abbr"`
	TeamName   string `json:"team_name"`
	PlayerName string `json:"player_name"`
	Position   string `json:"position"`
	College    string `json:"college"`
	OnClock    bool   `json:"on_clock"`
}

// Resolved reports whether the pick carries an announced or projected player.
func (p Pick) Resolved() bool {
	return p.PlayerName != "" && p.PlayerName != PlayerTBD
}

// Identifiable reports whether the pick carries enough data to be shown at all.
func (p Pick) Identifiable() bool {
	return p.TeamAbbr != "" || p.Resolved()
}

// Prospect is a ranked draft-eligible athlete used to backfill unannounced picks pre-draft.
type Prospect struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Position    string `json:"position"`
	College     string `json:"college"`
	OverallRank int    `json:"overall_rank"`
}

// TeamLookup maps provider team ids to team abbreviations.
type TeamLookup map[string]string

// Snapshot is the immutable view published after each successful update cycle.
type Snapshot struct {
	DraftYear      int       `json:"draft_year"`
	Status         Status    `json:"draft_status"`
	IsLive         bool      `json:"is_draft_live"`
	HasLiveContent bool      `json:"has_live_content"`
	CurrentRound   int       `json:"current_round"`
	DisplayRound   int       `json:"display_round"`
	Rounds         []int     `json:"rounds_configured"`
	Picks          []Pick    `json:"picks"`
	DisplayPicks   []Pick    `json:"display_picks"`
	Favorites      []Pick    `json:"favorites"`
	PicksLoaded    int       `json:"picks_loaded"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers may not mutate published state.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Rounds = append([]int(nil), s.Rounds...)
	out.Picks = clonePicks(s.Picks)
	out.DisplayPicks = clonePicks(s.DisplayPicks)
	out.Favorites = clonePicks(s.Favorites)
	return out
}

// PicksInRound returns the snapshot's picks belonging to round.
func (s Snapshot) PicksInRound(round int) []Pick {
	return picksInRound(s.Picks, round)
}

func clonePicks(picks []Pick) []Pick {
	if picks == nil {
		return nil
	}
	return append([]Pick(nil), picks...)
}
