// Package scan selects the input images of a collage directory.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// OutputName is the collage file written into the scanned directory. It is
// never picked up as an input.
const OutputName = "collage.png"

// Images returns the image files directly inside dir, sorted by name.
// Subdirectories are not descended into.
func Images(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == OutputName || !IsImageExt(filepath.Ext(name)) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// IsImageExt reports whether ext (including the dot) is an accepted input
// extension. Matching is case-insensitive.
func IsImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}
