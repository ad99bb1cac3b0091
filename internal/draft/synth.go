package draft

import (
	"sort"
	"strings"
	"time"
)

// MaxFavorites caps both the configured favorite teams and the highlight list.
const MaxFavorites = 3

// Synthesizer turns normalized picks and tracked state into a publishable Snapshot.
type Synthesizer struct {
	rounds    RoundSet
	roundList []int
	favorites map[string]struct{}
}

// NewSynthesizer builds a Synthesizer for the configured rounds and favorite teams.
// Favorites beyond MaxFavorites are ignored.
func NewSynthesizer(rounds []int, favorites []string) *Synthesizer {
	fav := make(map[string]struct{}, MaxFavorites)
	for _, team := range favorites {
		if len(fav) == MaxFavorites {
			break
		}
		team = strings.ToUpper(strings.TrimSpace(team))
		if team != "" {
			fav[team] = struct{}{}
		}
	}
	return &Synthesizer{
		rounds:    NewRoundSet(rounds),
		roundList: append([]int(nil), rounds...),
		favorites: fav,
	}
}

// Synthesize produces the snapshot for one cycle. The input slice is not modified.
func (s *Synthesizer) Synthesize(year int, state State, picks []Pick, now time.Time) Snapshot {
	ordered := SortPicks(FilterRounds(picks, s.rounds))

	live := state.Status == StatusLive
	MarkOnClock(ordered, state.CurrentRound, live)

	snap := Snapshot{
		DraftYear:      year,
		Status:         state.Status,
		IsLive:         live,
		HasLiveContent: live && len(ordered) > 0,
		CurrentRound:   state.CurrentRound,
		DisplayRound:   state.CurrentRound,
		Rounds:         append([]int(nil), s.roundList...),
		Picks:          ordered,
		DisplayPicks:   ordered,
		Favorites:      FavoritePicks(ordered, s.favorites),
		PicksLoaded:    len(ordered),
		UpdatedAt:      now,
	}
	if live {
		snap.DisplayRound, snap.DisplayPicks = SelectRound(ordered, state.CurrentRound)
	}
	return snap.Clone()
}

// FilterRounds drops picks outside the configured rounds.
func FilterRounds(picks []Pick, rounds RoundSet) []Pick {
	out := make([]Pick, 0, len(picks))
	for _, p := range picks {
		if rounds.Contains(p.Round) {
			out = append(out, p)
		}
	}
	return out
}

// SortPicks returns picks ordered by ascending pick number with duplicates removed.
// When two picks share a number the earlier one in the input wins.
func SortPicks(picks []Pick) []Pick {
	out := append([]Pick(nil), picks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PickNumber < out[j].PickNumber })
	deduped := make([]Pick, 0, len(out))
	for _, p := range out {
		if n := len(deduped); n > 0 && deduped[n-1].PickNumber == p.PickNumber {
			continue
		}
		deduped = append(deduped, p)
	}
	return deduped
}

// MarkOnClock clears any stale on-clock flag and, when live, flags the first unresolved pick
// of the current round. picks must already be sorted.
func MarkOnClock(picks []Pick, currentRound int, live bool) {
	for i := range picks {
		picks[i].OnClock = false
	}
	if !live {
		return
	}
	for i := range picks {
		if picks[i].Round == currentRound && !picks[i].Resolved() {
			picks[i].OnClock = true
			return
		}
	}
}

// SelectRound picks the round to surface during live play. The current round is used once
// it has a resolved selection; before that the latest round with any resolved pick is shown.
func SelectRound(picks []Pick, currentRound int) (int, []Pick) {
	current := picksInRound(picks, currentRound)
	for _, p := range current {
		if p.Resolved() {
			return currentRound, current
		}
	}

	latest := 0
	for _, p := range picks {
		if p.Resolved() && p.Round > latest {
			latest = p.Round
		}
	}
	if latest == 0 {
		return currentRound, current
	}
	return latest, picksInRound(picks, latest)
}

// FavoritePicks returns up to MaxFavorites resolved picks made by the given teams, most
// recent first. Team keys must be upper case.
func FavoritePicks(picks []Pick, teams map[string]struct{}) []Pick {
	out := make([]Pick, 0, MaxFavorites)
	if len(teams) == 0 {
		return out
	}
	for _, p := range picks {
		if !p.Resolved() {
			continue
		}
		if _, ok := teams[strings.ToUpper(p.TeamAbbr)]; ok {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PickNumber > out[j].PickNumber })
	if len(out) > MaxFavorites {
		out = out[:MaxFavorites]
	}
	return out
}

func picksInRound(picks []Pick, round int) []Pick {
	out := make([]Pick, 0)
	for _, p := range picks {
		if p.Round == round {
			out = append(out, p)
		}
	}
	return out
}
