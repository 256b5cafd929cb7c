package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/bulkanim/internal/anim"
	"github.com/ivlev/bulkanim/internal/bounds"
)

// Manifest is a batch of independent animation jobs.
type Manifest struct {
	Workers int   `yaml:"workers"`
	Jobs    []Job `yaml:"jobs"`
}

// Job is one create or clear operation on one tileset.
type Job struct {
	Name        string    `yaml:"name"`
	Tileset     string    `yaml:"tileset"`
	Output      string    `yaml:"output"`
	Selection   Selection `yaml:"selection"`
	Clear       bool      `yaml:"clear"`
	Direction   string    `yaml:"direction"`
	StrideRight *int      `yaml:"stride_right"`
	StrideDown  *int      `yaml:"stride_down"`
	Frames      int       `yaml:"frames"`
	DurationMs  *int      `yaml:"duration_ms"`
	Overwrite   bool      `yaml:"overwrite"`
}

// Target is the file the job writes.
func (j Job) Target() string {
	if j.Output != "" {
		return j.Output
	}
	return j.Tileset
}

// LoadManifest reads a manifest and resolves job paths relative to it.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range m.Jobs {
		j := &m.Jobs[i]
		if j.Name == "" {
			j.Name = fmt.Sprintf("job-%d", i+1)
		}
		if j.Tileset != "" && !filepath.IsAbs(j.Tileset) {
			j.Tileset = filepath.Join(base, j.Tileset)
		}
		if j.Output != "" && !filepath.IsAbs(j.Output) {
			j.Output = filepath.Join(base, j.Output)
		}
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &m, nil
}

// Validate rejects manifests whose jobs would race on the same file, either
// by writing it twice or by one job reading what another writes.
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 {
		return fmt.Errorf("manifest has no jobs")
	}

	targets := make(map[string]int, len(m.Jobs))
	for i, j := range m.Jobs {
		if j.Tileset == "" {
			return fmt.Errorf("job %s: tileset is required", j.Name)
		}
		if j.Selection.Empty() {
			return fmt.Errorf("job %s: selection is required", j.Name)
		}
		target := filepath.Clean(j.Target())
		if other, dup := targets[target]; dup {
			return fmt.Errorf("jobs %s and %s both write %s", m.Jobs[other].Name, j.Name, target)
		}
		targets[target] = i
	}

	for i, j := range m.Jobs {
		source := filepath.Clean(j.Tileset)
		if writer, ok := targets[source]; ok && writer != i {
			return fmt.Errorf("job %s reads %s, which job %s writes", j.Name, source, m.Jobs[writer].Name)
		}
	}
	return nil
}

// Config converts the job into a run configuration. Batch jobs never prompt.
func (j Job) Config(buildVersion string) (Config, error) {
	cfg := Config{
		TilesetPath:  j.Tileset,
		OutputPath:   j.Target(),
		Selection:    j.Selection,
		StrideRight:  j.StrideRight,
		StrideDown:   j.StrideDown,
		Frames:       j.Frames,
		DurationMs:   anim.DefaultDurationMs,
		Force:        j.Overwrite,
		BuildVersion: buildVersion,
	}
	if j.DurationMs != nil {
		cfg.DurationMs = *j.DurationMs
	}
	if j.Direction != "" {
		d, err := bounds.ParseDirection(j.Direction)
		if err != nil {
			return Config{}, fmt.Errorf("job %s: %w", j.Name, err)
		}
		cfg.Direction = d
		cfg.HasDirection = true
	}
	return cfg, nil
}
