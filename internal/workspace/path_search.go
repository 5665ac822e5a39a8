package workspace

import (
	"path/filepath"

	"github.com/tlcsdm/eclipse-maven-view/internal/filesystem"
)

// findMarkerDir returns the closest directory at or above startDir that
// contains one of markers. Markers are checked in order at each level, so a
// nearer directory always wins over a preferred marker further up.
func findMarkerDir(fs filesystem.FileSystem, startDir string, markers ...string) (string, bool) {
	for dir := filepath.Clean(startDir); ; dir = filepath.Dir(dir) {
		for _, marker := range markers {
			if fs.Exists(filepath.Join(dir, marker)) {
				return dir, true
			}
		}
		if filepath.Dir(dir) == dir {
			return "", false
		}
	}
}
