// Package archive exports finished draft snapshots to disk, one file per season, and serves
// them back for the archive endpoint. Archived seasons are never loaded into live state.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

const defaultRetainSeasons = 10

// Writer persists season snapshots and the manifest, pruning the oldest seasons.
type Writer struct {
	basePath      string
	retainSeasons int
}

// NewWriter constructs a writer rooted at basePath keeping the newest retainSeasons seasons.
func NewWriter(basePath string, retainSeasons int) *Writer {
	if retainSeasons <= 0 {
		retainSeasons = defaultRetainSeasons
	}
	return &Writer{
		basePath:      basePath,
		retainSeasons: retainSeasons,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteSeason writes the snapshot for its draft year and prunes old seasons. Writing an
// identical snapshot only refreshes the manifest.
func (w *Writer) WriteSeason(snap draft.Snapshot) error {
	if w == nil {
		return errors.New("archive writer not configured")
	}
	if snap.DraftYear <= 0 {
		return errors.New("draft year required")
	}

	target := SeasonPath(w.basePath, snap.DraftYear)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if existing, ok := w.load(target); ok && sameContent(existing, snap) {
		return w.updateManifest(snap.DraftYear)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		return err
	}
	return w.updateManifest(snap.DraftYear)
}

func (w *Writer) load(path string) (draft.Snapshot, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return draft.Snapshot{}, false
	}
	var snap draft.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return draft.Snapshot{}, false
	}
	return snap, true
}

// sameContent ignores UpdatedAt, which moves on every cycle.
func sameContent(a, b draft.Snapshot) bool {
	a.UpdatedAt, b.UpdatedAt = time.Time{}, time.Time{}
	left, errA := json.Marshal(a)
	right, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(left, right)
}

func (w *Writer) updateManifest(year int) error {
	m, _ := readManifest(filepath.Join(w.basePath, manifestName), w.retainSeasons)

	years, err := w.listYears()
	if err != nil {
		return err
	}
	if !containsYear(years, year) {
		years = append(years, year)
		sort.Ints(years)
	}

	m.Seasons.Years = w.pruneOldSeasons(years)
	m.Seasons.LastRefreshed = time.Now().UTC()
	m.Retention.Seasons = w.retainSeasons
	return writeManifest(w.basePath, m)
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}

func (w *Writer) listYears() ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, seasonsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []int{}, nil
		}
		return nil, err
	}
	years := make([]int, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(name, ".json"))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// pruneOldSeasons removes all but the newest retainSeasons files; years must be sorted.
func (w *Writer) pruneOldSeasons(years []int) []int {
	if len(years) <= w.retainSeasons {
		return years
	}
	drop := years[:len(years)-w.retainSeasons]
	for _, y := range drop {
		_ = os.Remove(SeasonPath(w.basePath, y))
	}
	return append([]int(nil), years[len(years)-w.retainSeasons:]...)
}
