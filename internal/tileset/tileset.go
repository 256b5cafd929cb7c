// Package tileset is the cell catalog the animation engine runs against: a
// tileset image cut into a grid, plus the frame lists of animated tiles.
package tileset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ivlev/bulkanim/internal/anim"
	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
)

// Tileset is the on-disk tileset document.
type Tileset struct {
	Name        string `yaml:"name"`
	Image       string `yaml:"image"`
	ImageWidth  int    `yaml:"image_width"`
	ImageHeight int    `yaml:"image_height"`
	TileWidth   int    `yaml:"tile_width"`
	TileHeight  int    `yaml:"tile_height"`
	Spacing     int    `yaml:"spacing"`
	Margin      int    `yaml:"margin"`
	// TileCount limits the catalog below the grid size; 0 means every cell.
	TileCount int    `yaml:"tile_count,omitempty"`
	Tiles     []Tile `yaml:"tiles,omitempty"`

	mu sync.RWMutex
}

// Tile is an animated tile. Tiles without frames are not stored.
type Tile struct {
	ID     int          `yaml:"id"`
	Frames []anim.Frame `yaml:"frames"`
}

// Grid derives the cell grid from the image and tile geometry.
func (ts *Tileset) Grid() (grid.Grid, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.gridLocked()
}

func (ts *Tileset) gridLocked() (grid.Grid, error) {
	return grid.FromImage(ts.ImageWidth, ts.ImageHeight, ts.TileWidth, ts.TileHeight, ts.Spacing, ts.Margin)
}

// Snapshot is an immutable view of a Tileset taken under its lock. The
// engine reads only from snapshots so concurrent edits cannot change the
// catalog halfway through an operation.
type Snapshot struct {
	grid   grid.Grid
	count  int
	frames map[int][]anim.Frame
}

// Snapshot copies the current catalog state.
func (ts *Tileset) Snapshot() (*Snapshot, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	g, err := ts.gridLocked()
	if err != nil {
		return nil, err
	}

	count := g.Size()
	if ts.TileCount > 0 && ts.TileCount < count {
		count = ts.TileCount
	}

	frames := make(map[int][]anim.Frame, len(ts.Tiles))
	for _, t := range ts.Tiles {
		if len(t.Frames) > 0 {
			frames[t.ID] = append([]anim.Frame(nil), t.Frames...)
		}
	}
	return &Snapshot{grid: g, count: count, frames: frames}, nil
}

func (s *Snapshot) Grid() grid.Grid { return s.grid }

// Has reports whether id is a tile of the catalog.
func (s *Snapshot) Has(id int) bool {
	return id >= 0 && id < s.count
}

// Len is the number of tiles in the catalog.
func (s *Snapshot) Len() int { return s.count }

// HasFrames reports whether tile id already carries an animation.
func (s *Snapshot) HasFrames(id int) bool {
	return len(s.frames[id]) > 0
}

// Frames returns a copy of the frames of tile id.
func (s *Snapshot) Frames(id int) []anim.Frame {
	return append([]anim.Frame(nil), s.frames[id]...)
}

// Animated returns the ids among ids that already carry an animation.
func (s *Snapshot) Animated(ids []int) []int {
	var out []int
	for _, id := range ids {
		if s.HasFrames(id) {
			out = append(out, id)
		}
	}
	return out
}

// AnimatedCount is the number of tiles with frames in the snapshot.
func (s *Snapshot) AnimatedCount() int {
	return len(s.frames)
}

// Apply assigns every animation in one step. All tile and frame ids are
// checked against the catalog first; on error nothing is changed.
func (ts *Tileset) Apply(anims []anim.Animation) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	g, err := ts.gridLocked()
	if err != nil {
		return err
	}
	count := g.Size()
	if ts.TileCount > 0 && ts.TileCount < count {
		count = ts.TileCount
	}

	for _, a := range anims {
		if a.TileID < 0 || a.TileID >= count {
			return fault.New(fault.ErrTypeOutOfRange, "cell_id", a.TileID, count, "tile not found in tileset")
		}
		for i, f := range a.Frames {
			if f.TileID < 0 || f.TileID >= count {
				return fmt.Errorf("tile %d: %w", a.TileID,
					fault.New(fault.ErrTypeOutOfRange, fmt.Sprintf("frame[%d].tile_id", i), f.TileID, count, "tile not found in tileset"))
			}
		}
	}

	byID := ts.indexLocked()
	for _, a := range anims {
		byID[a.TileID] = append([]anim.Frame(nil), a.Frames...)
	}
	ts.storeLocked(byID)
	return nil
}

// Clear drops the animations of ids and returns how many tiles changed.
func (ts *Tileset) Clear(ids []int) int {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	byID := ts.indexLocked()
	cleared := 0
	for _, id := range ids {
		if len(byID[id]) > 0 {
			delete(byID, id)
			cleared++
		}
	}
	ts.storeLocked(byID)
	return cleared
}

func (ts *Tileset) indexLocked() map[int][]anim.Frame {
	byID := make(map[int][]anim.Frame, len(ts.Tiles))
	for _, t := range ts.Tiles {
		byID[t.ID] = t.Frames
	}
	return byID
}

func (ts *Tileset) storeLocked(byID map[int][]anim.Frame) {
	tiles := make([]Tile, 0, len(byID))
	for id, frames := range byID {
		if len(frames) == 0 {
			continue
		}
		tiles = append(tiles, Tile{ID: id, Frames: frames})
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].ID < tiles[j].ID })
	ts.Tiles = tiles
}
