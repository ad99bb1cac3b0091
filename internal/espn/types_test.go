package espn

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

func TestSiteStatusFeedStatus(t *testing.T) {
	var feed SiteFeed
	require.NoError(t, json.Unmarshal([]byte(`{"status":{"state":"IN","round":3}}`), &feed))
	status := feed.Status.FeedStatus()
	require.NotNil(t, status)
	assert.Equal(t, "IN", status.State)
	require.NotNil(t, status.Round)
	assert.Equal(t, 3, *status.Round)

	require.NoError(t, json.Unmarshal([]byte(`{"status":{"state":"post","round":"final"}}`), &feed))
	assert.Nil(t, feed.Status.FeedStatus().Round)

	var empty SiteFeed
	assert.Nil(t, empty.Status.FeedStatus())
}

func TestAthleteOverallRank(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{`{"attributes":[{"name":"overall","value":4}]}`, 4},
		{`{"attributes":[{"name":"overall","value":"7.0"}]}`, 7},
		{`{"attributes":[{"name":"overall","value":12.9}]}`, 12},
		{`{"attributes":[{"name":"grade","value":80}]}`, draft.DefaultProspectRank},
		{`{"attributes":[{"name":"overall","value":"unranked"}]}`, draft.DefaultProspectRank},
		{`{}`, draft.DefaultProspectRank},
	}
	for _, tc := range cases {
		var athlete Athlete
		require.NoError(t, json.Unmarshal([]byte(tc.raw), &athlete))
		assert.Equal(t, tc.want, athlete.OverallRank(), tc.raw)
	}
}

func TestAthleteProspectDefaults(t *testing.T) {
	var athlete Athlete
	require.NoError(t, json.Unmarshal([]byte(`{"id":4432,"team":{"name":"Ohio State"}}`), &athlete))
	p := athlete.Prospect()
	assert.Equal(t, "4432", p.ID)
	assert.Equal(t, "Unknown", p.DisplayName)
	assert.Equal(t, "Ohio State", p.College)
	assert.Empty(t, p.Position)

	var nilAthlete *Athlete
	assert.Equal(t, draft.PlayerTBD, nilAthlete.PlayerName())
}

func TestTeamsDirectoryLookup(t *testing.T) {
	var dir TeamsDirectory
	require.NoError(t, json.Unmarshal([]byte(`{"sports":[{"leagues":[{"teams":[
	  {"team":{"id":"12","abbreviation":"KC"}},
	  {"team":{"id":6,"abbreviation":"DAL"}},
	  {"team":{"id":"","abbreviation":"XX"}}
	]}]}]}`), &dir))
	assert.Equal(t, draft.TeamLookup{"12": "KC", "6": "DAL"}, dir.Lookup())
	assert.Empty(t, TeamsDirectory{}.Lookup())
}

func TestTeamIDFromRef(t *testing.T) {
	assert.Equal(t, "12", TeamIDFromRef("http://core/v2/sports/football/leagues/nfl/seasons/2025/teams/12?lang=en&region=us"))
	assert.Equal(t, "12", TeamIDFromRef("http://core/teams/12/"))
	assert.Equal(t, "", TeamIDFromRef(""))
	assert.Equal(t, "7", TeamIDFromRef("7"))
}

func TestRefListURLsSkipsEmpty(t *testing.T) {
	list := RefList{Items: []Ref{{Ref: "a"}, {}, {Ref: "b"}}}
	assert.Equal(t, []string{"a", "b"}, list.URLs())
}
