package server

import (
	"github.com/preston-bernstein/nfl-draft-service/internal/archive"
	"github.com/preston-bernstein/nfl-draft-service/internal/config"
	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

type archiveComponents struct {
	store    archive.Store
	archiver draft.Archiver
}

// buildArchive always serves archived seasons from Dir; writing is gated on Enabled.
func buildArchive(cfg config.ArchiveConfig) archiveComponents {
	components := archiveComponents{store: archive.NewFSStore(cfg.Dir)}
	if cfg.Enabled {
		components.archiver = archive.NewWriter(cfg.Dir, cfg.RetainSeasons)
	}
	return components
}
