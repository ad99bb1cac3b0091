package config

import "time"

const (
	envPort               = "PORT"
	envPollInterval       = "POLL_INTERVAL"
	envProvider           = "PROVIDER"
	envMetricsPort        = "METRICS_PORT"
	envMetricsOn          = "METRICS_ENABLED"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken         = "ADMIN_TOKEN"
	envConfigFile         = "DRAFT_CONFIG_FILE"
	envRounds             = "DRAFT_ROUNDS"
	envDraftYear          = "DRAFT_YEAR"
	envSimulateLive       = "SIMULATE_LIVE"
	envSimulateYear       = "SIMULATE_YEAR"
	envFavoriteTeams      = "FAVORITE_TEAMS"
	envLiveRefresh        = "LIVE_REFRESH_INTERVAL"
	envProjectionRefresh  = "PROJECTION_REFRESH_INTERVAL"
	envCacheBackend       = "CACHE_BACKEND"
	envRedisURL           = "REDIS_URL"
	envSiteBaseURL        = "ESPN_SITE_BASE_URL"
	envCoreBaseURL        = "ESPN_CORE_BASE_URL"
	envFetchRetries       = "ESPN_FETCH_RETRIES"
	envArchiveDir         = "ARCHIVE_DIR"
	envArchiveEnabled     = "ARCHIVE_ENABLED"
	envArchiveRetainYears = "ARCHIVE_RETAIN_SEASONS"
	envCORSOrigins        = "CORS_ORIGINS"

	defaultPort         = "4000"
	defaultPollInterval = Duration(time.Minute)
	defaultProvider     = "espn"
	defaultMetricsPort  = "9090"

	// Refresh cadence: short while the draft is on the clock, daily otherwise.
	defaultLiveRefresh       = 600 * Duration(time.Second)
	defaultProjectionRefresh = 86400 * Duration(time.Second)
	defaultSimulateYear      = 2025
	maxFavoriteTeams         = 3

	defaultCacheBackend = "memory"
	defaultRedisURL     = "redis://localhost:6379/0"

	defaultSiteBaseURL  = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"
	defaultCoreBaseURL  = "https://sports.core.api.espn.com/v2/sports/football/leagues/nfl"
	defaultFetchRetries = 2

	defaultArchiveDir         = "data/archive"
	defaultArchiveRetainYears = 10
)

var (
	defaultRounds      = []int{1, 2, 3}
	defaultCORSOrigins = []string{"*"}
)
