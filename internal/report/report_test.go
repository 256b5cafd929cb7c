package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnosticFormat(t *testing.T) {
	d := NewDiagnostic(context.Background(), "Create Animations", errors.New("boom"), "1.2.3")
	d.Config = map[string]int{"frames": 4}
	d.Tileset = &TilesetInfo{Path: "sets/water.yaml", ImageWidth: 192, ImageHeight: 128, TileWidth: 32, TileHeight: 32, Spacing: 1, Margin: 2}

	out := d.Format()
	for _, want := range []string{
		"boom",
		"Action: Create Animations",
		"Version: 1.2.3",
		"Host: ",
		"frames: 4",
		"Image width: 192",
		"Tile spacing: 1",
		"Margin: 2",
	} {
		assert.Contains(t, out, want)
	}
	assert.True(t, strings.HasSuffix(out, rule))
}

func TestDiagnosticWithoutExtras(t *testing.T) {
	d := &Diagnostic{Action: "Clear Animations", Err: errors.New("nope")}
	out := d.Format()
	assert.NotContains(t, out, "Config:")
	assert.NotContains(t, out, "Tileset Information:")
}

func TestStats(t *testing.T) {
	s := Stats{
		Build:    "dev",
		Action:   "create",
		Tileset:  "/x/sets/water.yaml",
		Tiles:    4,
		Frames:   36,
		Elapsed:  1500 * time.Microsecond,
		Finished: time.Date(2026, 2, 13, 1, 0, 0, 0, time.UTC),
	}

	assert.Contains(t, s.Format(), "Frames: 36")
	assert.Equal(t, "[2026-02-13 01:00:00] Build: dev | Action: create | Tileset: water.yaml | Tiles: 4 | Frames: 36 | Total: 1.5ms\n", s.Line())

	path := filepath.Join(t.TempDir(), "bulkanim.log")
	require.NoError(t, s.Append(path))
	require.NoError(t, s.Append(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}
