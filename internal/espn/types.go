package espn

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

// flexString decodes a JSON string or number into a string. The provider is inconsistent
// about which it sends for ids.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// looseInt decodes an integer if the value is one and records absence otherwise.
type looseInt struct {
	Value int
	Valid bool
}

func (l *looseInt) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*l = looseInt{}
		return nil
	}
	v, err := strconv.Atoi(n.String())
	if err != nil {
		*l = looseInt{}
		return nil
	}
	*l = looseInt{Value: v, Valid: true}
	return nil
}

// SiteFeed is the site API draft document used for both projections and live results.
type SiteFeed struct {
	Status *SiteStatus `json:"status"`
	Teams  []SiteTeam  `json:"teams"`
	Picks  []SitePick  `json:"picks"`
}

// SiteStatus is the draft-wide status object.
type SiteStatus struct {
	State string   `json:"state"`
	Round looseInt `json:"round"`
}

// FeedStatus converts to the tracker's input. A nil receiver yields nil.
func (s *SiteStatus) FeedStatus() *draft.FeedStatus {
	if s == nil {
		return nil
	}
	out := &draft.FeedStatus{State: s.State}
	if s.Round.Valid {
		round := s.Round.Value
		out.Round = &round
	}
	return out
}

// SiteTeam is an entry of the feed's team list.
type SiteTeam struct {
	ID           flexString `json:"id"`
	Abbreviation string     `json:"abbreviation"`
	DisplayName  string     `json:"displayName"`
}

// SitePick is one pick slot of the site feed.
type SitePick struct {
	Overall looseInt   `json:"overall"`
	Round   looseInt   `json:"round"`
	Pick    looseInt   `json:"pick"`
	TeamID  flexString `json:"teamId"`
	Athlete *Athlete   `json:"athlete"`
}

// Athlete is an athlete object, either embedded in a pick or fetched by reference.
type Athlete struct {
	ID          flexString  `json:"id"`
	DisplayName string      `json:"displayName"`
	Position    *Position   `json:"position"`
	Team        *CollegeRef `json:"team"`
	Attributes  []Attribute `json:"attributes"`
}

// Position carries the position abbreviation.
type Position struct {
	Abbreviation string `json:"abbreviation"`
}

// CollegeRef is the athlete's college team. In core API documents it is only a $ref.
type CollegeRef struct {
	ShortDisplayName string `json:"shortDisplayName"`
	Name             string `json:"name"`
}

// Attribute is a named ranking attribute of a draft athlete.
type Attribute struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// PlayerName returns the display name, or TBD when missing.
func (a *Athlete) PlayerName() string {
	if a == nil || strings.TrimSpace(a.DisplayName) == "" {
		return draft.PlayerTBD
	}
	return a.DisplayName
}

// PositionAbbr returns the position abbreviation or "".
func (a *Athlete) PositionAbbr() string {
	if a == nil || a.Position == nil {
		return ""
	}
	return a.Position.Abbreviation
}

// College returns the college short name, falling back to its full name.
func (a *Athlete) College() string {
	if a == nil || a.Team == nil {
		return ""
	}
	if a.Team.ShortDisplayName != "" {
		return a.Team.ShortDisplayName
	}
	return a.Team.Name
}

// OverallRank returns the "overall" attribute as an integer, defaulting to 999.
func (a *Athlete) OverallRank() int {
	if a == nil {
		return draft.DefaultProspectRank
	}
	for _, attr := range a.Attributes {
		if attr.Name != "overall" {
			continue
		}
		if rank, ok := parseRank(attr.Value); ok {
			return rank
		}
	}
	return draft.DefaultProspectRank
}

// Prospect converts a fetched athlete into a ranked prospect.
func (a *Athlete) Prospect() draft.Prospect {
	name := "Unknown"
	if a.DisplayName != "" {
		name = a.DisplayName
	}
	return draft.Prospect{
		ID:          string(a.ID),
		DisplayName: name,
		Position:    a.PositionAbbr(),
		College:     a.College(),
		OverallRank: a.OverallRank(),
	}
}

func parseRank(raw json.RawMessage) (int, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return int(f), true
		}
	}
	return 0, false
}

// Ref is a core API reference object.
type Ref struct {
	Ref string `json:"$ref"`
}

// RefList is a paged list of references, such as the draft athletes list.
type RefList struct {
	Count int   `json:"count"`
	Items []Ref `json:"items"`
}

// URLs returns the non-empty reference URLs in order.
func (l RefList) URLs() []string {
	out := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		if item.Ref != "" {
			out = append(out, item.Ref)
		}
	}
	return out
}

// RoundsFeed is the core API rounds document; each item embeds its picks.
type RoundsFeed struct {
	Items []RoundItem `json:"items"`
}

// RoundItem is one round with its inline picks.
type RoundItem struct {
	Number int        `json:"number"`
	Picks  []CorePick `json:"picks"`
}

// CorePick is a completed pick whose athlete and team are references.
type CorePick struct {
	Overall looseInt `json:"overall"`
	Pick    looseInt `json:"pick"`
	Athlete Ref      `json:"athlete"`
	Team    Ref      `json:"team"`
}

// RoundPick pairs a core pick with the round it was listed under. Position is the
// pick's 1-based place across every round of the feed, before any round filter.
type RoundPick struct {
	Round    int
	Position int
	Pick     CorePick
}

// PicksIn flattens the picks of the given rounds in feed order.
func (f RoundsFeed) PicksIn(rounds draft.RoundSet) []RoundPick {
	var out []RoundPick
	position := 0
	for _, item := range f.Items {
		for _, p := range item.Picks {
			position++
			if rounds.Contains(item.Number) {
				out = append(out, RoundPick{Round: item.Number, Position: position, Pick: p})
			}
		}
	}
	return out
}

// TeamsDirectory is the site API teams listing.
type TeamsDirectory struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team struct {
					ID           flexString `json:"id"`
					Abbreviation string     `json:"abbreviation"`
				} `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// Lookup builds the team id to abbreviation map from the first sport and league.
func (d TeamsDirectory) Lookup() draft.TeamLookup {
	out := make(draft.TeamLookup)
	if len(d.Sports) == 0 || len(d.Sports[0].Leagues) == 0 {
		return out
	}
	for _, entry := range d.Sports[0].Leagues[0].Teams {
		id := string(entry.Team.ID)
		if id != "" && entry.Team.Abbreviation != "" {
			out[id] = entry.Team.Abbreviation
		}
	}
	return out
}

// TeamIDFromRef extracts the trailing path segment of a team reference, ignoring any query.
func TeamIDFromRef(ref string) string {
	if ref == "" {
		return ""
	}
	if i := strings.IndexByte(ref, '?'); i >= 0 {
		ref = ref[:i]
	}
	ref = strings.TrimRight(ref, "/")
	if i := strings.LastIndexByte(ref, '/'); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
