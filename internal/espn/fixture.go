package espn

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

const (
	fixtureTeams       = 32
	fixtureRounds      = 7
	fixtureLiveRound   = 2
	fixtureAnnouncedR2 = 10
)

var fixtureTeamAbbrs = []string{
	"TEN", "CLE", "NYG", "NE", "JAX", "LV", "NYJ", "CAR",
	"NO", "CHI", "SF", "DAL", "MIA", "IND", "ATL", "ARI",
	"CIN", "SEA", "TB", "DEN", "PIT", "LAC", "GB", "MIN",
	"HOU", "LAR", "BAL", "DET", "WSH", "BUF", "KC", "PHI",
}

var fixturePositions = []string{"QB", "EDGE", "WR", "OT", "CB", "DT", "S", "RB", "LB", "TE", "IOL"}

// FixtureSource serves a deterministic in-progress draft for local runs without network.
type FixtureSource struct {
	season int
	rounds draft.RoundSet
}

// NewFixtureSource builds a FixtureSource.
func NewFixtureSource(season int, rounds []int) *FixtureSource {
	return &FixtureSource{season: season, rounds: draft.NewRoundSet(rounds)}
}

func (s *FixtureSource) Mode() string { return "fixture" }

// Load returns round one fully announced and the first picks of round two, live in round two.
func (s *FixtureSource) Load(_ context.Context, _ draft.State) (draft.State, []draft.Pick, error) {
	feed := LiveFeed{Feed: fixtureFeed(s.season)}
	state := draft.State{Status: draft.StatusLive, IsLive: true, CurrentRound: fixtureLiveRound}
	return state, feed.Normalize(s.rounds), nil
}

func fixtureFeed(season int) SiteFeed {
	feed := SiteFeed{Status: &SiteStatus{State: "in", Round: looseInt{Value: fixtureLiveRound, Valid: true}}}
	for i, abbr := range fixtureTeamAbbrs {
		feed.Teams = append(feed.Teams, SiteTeam{
			ID:           flexString(fmt.Sprint(i + 1)),
			Abbreviation: abbr,
			DisplayName:  abbr,
		})
	}
	overall := 0
	for round := 1; round <= fixtureRounds; round++ {
		for slot := 1; slot <= fixtureTeams; slot++ {
			overall++
			pick := SitePick{
				Overall: looseInt{Value: overall, Valid: true},
				Round:   looseInt{Value: round, Valid: true},
				Pick:    looseInt{Value: slot, Valid: true},
				TeamID:  flexString(fmt.Sprint(slot)),
			}
			if round < fixtureLiveRound || (round == fixtureLiveRound && slot <= fixtureAnnouncedR2) {
				pick.Athlete = &Athlete{
					ID:          flexString(fmt.Sprintf("%d%03d", season, overall)),
					DisplayName: fmt.Sprintf("Prospect %d", overall),
					Position:    &Position{Abbreviation: fixturePositions[overall%len(fixturePositions)]},
					Team:        &CollegeRef{ShortDisplayName: fmt.Sprintf("College %d", overall%40+1)},
				}
			}
			feed.Picks = append(feed.Picks, pick)
		}
	}
	return feed
}
