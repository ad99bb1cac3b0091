package testutil

import (
	"time"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

// SamplePick returns a resolved pick.
func SamplePick(number, round, roundPick int, team, player string) draft.Pick {
	return draft.Pick{
		PickNumber: number,
		Round:      round,
		RoundPick:  roundPick,
		TeamAbbr:   team,
		PlayerName: player,
		Position:   "QB",
		College:    "State",
	}
}

// SampleSnapshot builds a live snapshot in round 2 with four picks across rounds 1 and 2
// and a single KC favorite.
func SampleSnapshot(year int) draft.Snapshot {
	onClock := draft.Pick{PickNumber: 34, Round: 2, RoundPick: 2, TeamAbbr: "NYG", PlayerName: draft.PlayerTBD, OnClock: true}
	picks := []draft.Pick{
		SamplePick(1, 1, 1, "TEN", "Cam Ward"),
		SamplePick(2, 1, 2, "KC", "Travis Hunter"),
		SamplePick(33, 2, 1, "CLE", "Mason Graham"),
		onClock,
	}
	return draft.Snapshot{
		DraftYear:      year,
		Status:         draft.StatusLive,
		IsLive:         true,
		HasLiveContent: true,
		CurrentRound:   2,
		DisplayRound:   2,
		Rounds:         []int{1, 2, 3},
		Picks:          picks,
		DisplayPicks:   []draft.Pick{picks[2], picks[3]},
		Favorites:      []draft.Pick{picks[1]},
		PicksLoaded:    len(picks),
		UpdatedAt:      time.Date(year, time.April, 24, 20, 0, 0, 0, time.UTC),
	}
}
