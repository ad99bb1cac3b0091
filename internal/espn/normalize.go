package espn

import (
	"sort"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

// Normalizer converts one provider feed shape into canonical picks. Implementations are pure:
// every document they need has already been fetched.
type Normalizer interface {
	Normalize(rounds draft.RoundSet) []draft.Pick
}

// ProjectionFeed is the pre-draft site feed plus ranked prospects used as a mock draft.
type ProjectionFeed struct {
	Feed      SiteFeed
	Prospects []draft.Prospect
}

// LiveFeed is the site feed during or after the draft; embedded athletes are authoritative.
type LiveFeed struct {
	Feed SiteFeed
}

// HistoricalFeed is a completed draft from the core API with its references resolved.
// Athletes is index-aligned with Picks; a nil entry means the reference did not resolve.
type HistoricalFeed struct {
	Picks    []RoundPick
	Athletes []*Athlete
	Teams    draft.TeamLookup
}

var (
	_ Normalizer = ProjectionFeed{}
	_ Normalizer = LiveFeed{}
	_ Normalizer = HistoricalFeed{}
)

// Normalize assigns the i-th ranked prospect to the i-th slot without an announced athlete,
// in feed order. Slots beyond the prospect list stay TBD.
func (f ProjectionFeed) Normalize(rounds draft.RoundSet) []draft.Pick {
	ranked := append([]draft.Prospect(nil), f.Prospects...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].OverallRank < ranked[j].OverallRank })

	teams := siteTeams(f.Feed.Teams)
	picks := make([]draft.Pick, 0, len(f.Feed.Picks))
	next := 0
	for idx, raw := range f.Feed.Picks {
		p := sitePick(idx, raw, teams)
		if raw.Athlete != nil {
			applyAthlete(&p, raw.Athlete)
		} else {
			if next < len(ranked) {
				prospect := ranked[next]
				p.PlayerName = prospect.DisplayName
				if p.PlayerName == "" {
					p.PlayerName = draft.PlayerTBD
				}
				p.Position = prospect.Position
				p.College = prospect.College
			}
			next++
		}
		picks = append(picks, p)
	}
	return finalize(picks, rounds)
}

// Normalize uses each slot's embedded athlete when present and leaves the rest TBD.
func (f LiveFeed) Normalize(rounds draft.RoundSet) []draft.Pick {
	teams := siteTeams(f.Feed.Teams)
	picks := make([]draft.Pick, 0, len(f.Feed.Picks))
	for idx, raw := range f.Feed.Picks {
		p := sitePick(idx, raw, teams)
		if raw.Athlete != nil {
			applyAthlete(&p, raw.Athlete)
		}
		picks = append(picks, p)
	}
	return finalize(picks, rounds)
}

// Normalize joins each completed pick with its resolved athlete and team abbreviation.
func (f HistoricalFeed) Normalize(rounds draft.RoundSet) []draft.Pick {
	picks := make([]draft.Pick, 0, len(f.Picks))
	for i, rp := range f.Picks {
		p := draft.Pick{
			PickNumber: i + 1,
			Round:      rp.Round,
			RoundPick:  rp.Pick.Pick.Value,
			TeamAbbr:   f.Teams[TeamIDFromRef(rp.Pick.Team.Ref)],
			PlayerName: draft.PlayerTBD,
		}
		switch {
		case rp.Pick.Overall.Valid:
			p.PickNumber = rp.Pick.Overall.Value
		case rp.Position > 0:
			p.PickNumber = rp.Position
		}
		if i < len(f.Athletes) && f.Athletes[i] != nil {
			athlete := f.Athletes[i]
			p.PlayerName = athlete.PlayerName()
			p.Position = athlete.PositionAbbr()
		}
		picks = append(picks, p)
	}
	return finalize(picks, rounds)
}

type teamInfo struct {
	abbr string
	name string
}

func siteTeams(teams []SiteTeam) map[string]teamInfo {
	out := make(map[string]teamInfo, len(teams))
	for _, t := range teams {
		if t.ID == "" {
			continue
		}
		out[string(t.ID)] = teamInfo{abbr: t.Abbreviation, name: t.DisplayName}
	}
	return out
}

func sitePick(idx int, raw SitePick, teams map[string]teamInfo) draft.Pick {
	p := draft.Pick{
		PickNumber: idx + 1,
		Round:      1,
		RoundPick:  raw.Pick.Value,
		PlayerName: draft.PlayerTBD,
	}
	if raw.Overall.Valid {
		p.PickNumber = raw.Overall.Value
	}
	if raw.Round.Valid {
		p.Round = raw.Round.Value
	}
	if team, ok := teams[string(raw.TeamID)]; ok {
		p.TeamAbbr = team.abbr
		p.TeamName = team.name
	}
	return p
}

func applyAthlete(p *draft.Pick, athlete *Athlete) {
	p.PlayerName = athlete.PlayerName()
	p.Position = athlete.PositionAbbr()
	p.College = athlete.College()
}

// finalize keeps identifiable picks in the configured rounds, sorted and unique by number.
func finalize(picks []draft.Pick, rounds draft.RoundSet) []draft.Pick {
	kept := make([]draft.Pick, 0, len(picks))
	for _, p := range picks {
		if p.PickNumber <= 0 || !p.Identifiable() {
			continue
		}
		kept = append(kept, p)
	}
	return draft.SortPicks(draft.FilterRounds(kept, rounds))
}
