package config

// ArchiveConfig controls export of finished draft snapshots to disk.
type ArchiveConfig struct {
	Enabled       bool
	Dir           string
	RetainSeasons int
}

func loadArchive(file fileArchive) ArchiveConfig {
	enabled := true
	if file.Enabled != nil {
		enabled = *file.Enabled
	}
	retain := file.RetainSeasons
	if retain <= 0 {
		retain = defaultArchiveRetainYears
	}
	return ArchiveConfig{
		Enabled:       boolEnvOrDefault(envArchiveEnabled, enabled),
		Dir:           envOrDefault(envArchiveDir, firstNonEmpty(file.Dir, defaultArchiveDir)),
		RetainSeasons: intEnvOrDefault(envArchiveRetainYears, retain),
	}
}
