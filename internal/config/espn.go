package config

// ESPNConfig controls how we talk to the draft data provider.
type ESPNConfig struct {
	SiteBaseURL string
	CoreBaseURL string
	Retries     int
}

func loadESPN(file fileESPN) ESPNConfig {
	retries := defaultFetchRetries
	if file.Retries != nil {
		retries = *file.Retries
	}
	return ESPNConfig{
		SiteBaseURL: envOrDefault(envSiteBaseURL, firstNonEmpty(file.SiteBaseURL, defaultSiteBaseURL)),
		CoreBaseURL: envOrDefault(envCoreBaseURL, firstNonEmpty(file.CoreBaseURL, defaultCoreBaseURL)),
		Retries:     intEnvOrDefault(envFetchRetries, retries),
	}
}
