package espn

import "time"

const (
	defaultSiteBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultCoreBaseURL = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl"

	athleteListTimeout = 30 * time.Second
	feedTimeout        = 15 * time.Second
	athleteTimeout     = 10 * time.Second

	prospectListLimit  = 300
	prospectResolveCap = 150
	prospectWorkers    = 10
	historicalWorkers  = 15
	teamsLimit         = 50
)
