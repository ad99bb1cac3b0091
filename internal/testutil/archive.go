package testutil

import (
	"testing"

	"github.com/preston-bernstein/nfl-draft-service/internal/archive"
	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

// NewTempArchive returns an archive writer rooted in a temp dir.
func NewTempArchive(t *testing.T, retain int) *archive.Writer {
	t.Helper()
	return archive.NewWriter(t.TempDir(), retain)
}

// ArchiveSeason writes a completed sample season for year.
func ArchiveSeason(t *testing.T, w *archive.Writer, year int) {
	t.Helper()
	snap := SampleSnapshot(year)
	snap.Status = draft.StatusComplete
	snap.IsLive = false
	snap.HasLiveContent = false
	if err := w.WriteSeason(snap); err != nil {
		t.Fatalf("failed to archive season %d: %v", year, err)
	}
}
