package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const manifestName = "manifest.json"

// Manifest tracks which seasons are archived.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Retention   Retention   `json:"retention"`
	Seasons     SeasonsMeta `json:"seasons"`
}

type Retention struct {
	Seasons int `json:"seasons"`
}

type SeasonsMeta struct {
	Years         []int     `json:"years"`
	LastRefreshed time.Time `json:"lastRefreshed"`
}

func defaultManifest(retainSeasons int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention: Retention{
			Seasons: retainSeasons,
		},
		Seasons: SeasonsMeta{
			Years: []int{},
		},
	}
}

func readManifest(path string, retainSeasons int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(retainSeasons), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(retainSeasons), err
	}
	return m, nil
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	return readManifest(filepath.Join(basePath, manifestName), 0)
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	path := filepath.Join(basePath, manifestName)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
