package archive

import (
	"fmt"
	"path/filepath"
)

const seasonsDir = "seasons"

// SeasonPath builds the path to the archived snapshot of a draft year.
func SeasonPath(basePath string, year int) string {
	return filepath.Join(basePath, seasonsDir, fmt.Sprintf("%d.json", year))
}
