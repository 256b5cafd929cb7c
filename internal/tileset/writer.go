package tileset

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Write saves the tileset to path. The document is written to a temporary
// file in the same directory and renamed over path, so readers never see a
// half-written tileset.
func Write(ts *Tileset, path string) error {
	ts.mu.RLock()
	data, err := yaml.Marshal(ts)
	ts.mu.RUnlock()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Read loads a tileset document from path.
func Read(path string) (*Tileset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ts Tileset
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &ts, nil
}
