package archive

import (
	"os"
	"testing"
	"time"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

func seasonSnapshot(year int) draft.Snapshot {
	return draft.Snapshot{
		DraftYear: year,
		Status:    draft.StatusComplete,
		Picks: []draft.Pick{
			{PickNumber: 1, Round: 1, RoundPick: 1, TeamAbbr: "KC", PlayerName: "Player A", Position: "QB"},
		},
		UpdatedAt: time.Date(year, time.April, 26, 0, 0, 0, 0, time.UTC),
	}
}

func writeSeason(t *testing.T, w *Writer, snap draft.Snapshot) {
	t.Helper()
	if w == nil {
		t.Fatalf("writer is nil for season %d", snap.DraftYear)
	}
	if err := w.WriteSeason(snap); err != nil {
		t.Fatalf("failed to write season %d: %v", snap.DraftYear, err)
	}
}

func requireSeasonExists(t *testing.T, w *Writer, year int) {
	t.Helper()
	if _, err := os.Stat(SeasonPath(w.BasePath(), year)); err != nil {
		t.Fatalf("expected season %d to be written: %v", year, err)
	}
}

func assertYearsEqual(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("years length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("years mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}
