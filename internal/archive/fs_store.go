package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/nfl-draft-service/internal/draft"
)

// ErrSeasonNotArchived reports that no snapshot exists for the requested year.
var ErrSeasonNotArchived = errors.New("season not archived")

// Store defines how archived seasons are loaded.
type Store interface {
	LoadSeason(year int) (draft.Snapshot, error)
}

// FSStore loads archived seasons from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed archive store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadSeason reads {basePath}/seasons/{year}.json.
func (s *FSStore) LoadSeason(year int) (draft.Snapshot, error) {
	if s == nil {
		return draft.Snapshot{}, errors.New("archive store not configured")
	}
	if year <= 0 {
		return draft.Snapshot{}, fmt.Errorf("invalid season %d", year)
	}
	f, err := os.Open(SeasonPath(s.basePath, year))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return draft.Snapshot{}, fmt.Errorf("%w: %d", ErrSeasonNotArchived, year)
		}
		return draft.Snapshot{}, err
	}
	defer f.Close()

	var snap draft.Snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return draft.Snapshot{}, fmt.Errorf("decode season %d: %w", year, err)
	}
	if snap.DraftYear == 0 {
		snap.DraftYear = year
	}
	return snap, nil
}
