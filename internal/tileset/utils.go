package tileset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FindLatest finds the most recently modified tileset document in dir.
func FindLatest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read tileset directory: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = filepath.Join(dir, entry.Name())
			latestTime = info.ModTime()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no tileset files found in %s", dir)
	}
	return latest, nil
}

// ImagePath resolves the tileset image relative to the document at docPath.
func (ts *Tileset) ImagePath(docPath string) string {
	if ts.Image == "" || filepath.IsAbs(ts.Image) {
		return ts.Image
	}
	return filepath.Join(filepath.Dir(docPath), ts.Image)
}
