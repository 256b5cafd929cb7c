package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
	"github.com/ivlev/bulkanim/internal/selection"
)

func tileIDs(frames []Frame) []int {
	ids := make([]int, len(frames))
	for i, f := range frames {
		ids[i] = f.TileID
	}
	return ids
}

func mustPlan(t *testing.T, b *Builder) Plan {
	t.Helper()
	p, err := b.Build()
	require.NoError(t, err)
	return p
}

func TestGenerateRight(t *testing.T) {
	b, err := NewBuilder(grid.Grid{Columns: 6, Rows: 6}, []int{0})
	require.NoError(t, err)
	p := mustPlan(t, b.Direction(bounds.Right).StrideRight(1).Frames(3).DurationMs(80))

	frames, err := Generate(p, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, tileIDs(frames))
	for _, f := range frames {
		assert.Equal(t, 80, f.DurationMs)
	}
}

func TestGenerateDown(t *testing.T) {
	b, err := NewBuilder(grid.Grid{Columns: 6, Rows: 6}, []int{0})
	require.NoError(t, err)
	p := mustPlan(t, b.Direction(bounds.Down).StrideDown(1).Frames(3))

	frames, err := Generate(p, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 6, 12}, tileIDs(frames))
}

func TestGenerateBothWrapsAtRowCapacity(t *testing.T) {
	g := grid.Grid{Columns: 6, Rows: 6}
	b, err := NewBuilder(g, []int{0})
	require.NoError(t, err)
	p := mustPlan(t, b.Direction(bounds.Both).StrideRight(1).StrideDown(1).Frames(4))

	// 1 + (6-1)/1 = 6 frames per row, so four frames never wrap.
	capacity := b.Calculator().RowCapacity(1)
	require.Equal(t, 6, capacity)

	frames, err := Generate(p, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, tileIDs(frames))

	p.Frames = capacity + 2
	frames, err = Generate(p, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, tileIDs(frames))
}

func TestGenerateBothBlock(t *testing.T) {
	g := grid.Grid{Columns: 6, Rows: 6}
	b, err := NewBuilder(g, []int{0, 1, 6, 7})
	require.NoError(t, err)
	p := mustPlan(t, b.Direction(bounds.Both))

	assert.Equal(t, 2, p.StrideRight)
	assert.Equal(t, 2, p.StrideDown)
	assert.Equal(t, 9, p.Frames)

	anims, err := GenerateAll(p)
	require.NoError(t, err)
	require.Len(t, anims, 4)

	want := map[int][]int{
		0: {0, 2, 4, 12, 14, 16, 24, 26, 28},
		1: {1, 3, 5, 13, 15, 17, 25, 27, 29},
		6: {6, 8, 10, 18, 20, 22, 30, 32, 34},
		7: {7, 9, 11, 19, 21, 23, 31, 33, 35},
	}
	for _, a := range anims {
		assert.Equal(t, want[a.TileID], tileIDs(a.Frames), "tile %d", a.TileID)
	}
}

func TestGenerateBothOffsetSelection(t *testing.T) {
	// Page width is 1 + (7-2)/2 = 3, so 3*2 != 7 columns: the carriage
	// return must land back on column 1, not column 0.
	g := grid.Grid{Columns: 7, Rows: 3}
	b, err := NewBuilder(g, []int{1})
	require.NoError(t, err)
	p := mustPlan(t, b.Direction(bounds.Both).StrideRight(2).StrideDown(1).Frames(6))

	frames, err := Generate(p, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5, 8, 10, 12}, tileIDs(frames))
}

func TestGenerateBothSweepProperty(t *testing.T) {
	g := grid.Grid{Columns: 7, Rows: 5}

	for y := 0; y < g.Rows; y++ {
		for x := 0; x < g.Columns; x++ {
			for h := 1; y+h < g.Rows; h++ {
				for w := 1; x+w < g.Columns; w++ {
					ext := selection.Extent{X: x, Y: y, Width: w, Height: h}
					ids, err := selection.Rect(g, ext)
					require.NoError(t, err)
					b, err := NewBuilder(g, ids)
					require.NoError(t, err)
					maxRight, maxDown := b.Calculator().MaxStride()

					for sr := 1; sr <= maxRight; sr++ {
						for sd := 1; sd <= maxDown; sd++ {
							p := mustPlan(t, b.Direction(bounds.Both).StrideRight(sr).StrideDown(sd).Frames(0))
							pageWidth := b.Calculator().RowCapacity(sr)

							anims, err := GenerateAll(p)
							require.NoError(t, err, "ext %v sr %d sd %d", ext, sr, sd)

							for _, a := range anims {
								base, _ := g.CoordinateOf(a.TileID)
								seen := map[int]bool{}
								for k, f := range a.Frames {
									c, err := g.CoordinateOf(f.TileID)
									require.NoError(t, err)
									assert.Equal(t, base.Column+(k%pageWidth)*sr, c.Column)
									assert.Equal(t, base.Row+(k/pageWidth)*sd, c.Row)
									assert.False(t, seen[f.TileID])
									seen[f.TileID] = true
								}
							}
						}
					}
				}
			}
		}
	}
}

func TestBuildRejectsInsteadOfClamping(t *testing.T) {
	g := grid.Grid{Columns: 6, Rows: 6}

	tests := []struct {
		name  string
		apply func(*Builder)
		want  fault.ErrorType
	}{
		{"stride too large", func(b *Builder) { b.Direction(bounds.Right).StrideRight(5) }, fault.ErrTypeInvalidStride},
		{"stride zero", func(b *Builder) { b.Direction(bounds.Down).StrideDown(0) }, fault.ErrTypeInvalidStride},
		{"frames too many", func(b *Builder) { b.Direction(bounds.Right).StrideRight(2).Frames(4) }, fault.ErrTypeInvalidFrameCount},
		{"frames negative", func(b *Builder) { b.Direction(bounds.Down).Frames(-1) }, fault.ErrTypeInvalidFrameCount},
		{"both too many", func(b *Builder) { b.Direction(bounds.Both).Frames(10) }, fault.ErrTypeInvalidFrameCount},
		{"zero duration", func(b *Builder) { b.DurationMs(0) }, fault.ErrTypeInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBuilder(g, []int{0, 1, 6, 7})
			require.NoError(t, err)
			tt.apply(b)
			_, err = b.Build()
			assert.True(t, fault.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	g := grid.Grid{Columns: 8, Rows: 4}

	b, err := NewBuilder(g, []int{9, 10, 11})
	require.NoError(t, err)
	p := mustPlan(t, b)
	assert.Equal(t, bounds.Right, p.Direction)
	assert.Equal(t, 3, p.StrideRight)
	assert.Equal(t, 1, p.StrideDown)
	assert.Equal(t, 2, p.Frames)
	assert.Equal(t, DefaultDurationMs, p.DurationMs)
	assert.Equal(t, []int{9, 10, 11}, p.Cells)

	// Non-rectangular: strides fall back to 1.
	b, err = NewBuilder(g, []int{0, 9})
	require.NoError(t, err)
	p = mustPlan(t, b.Direction(bounds.Down))
	assert.Equal(t, 1, p.StrideDown)
	assert.Equal(t, 3, p.Frames)
}

func TestBuildIgnoresUnusedAxis(t *testing.T) {
	b, err := NewBuilder(grid.Grid{Columns: 6, Rows: 2}, []int{0, 1, 6, 7})
	require.NoError(t, err)

	// Nothing fits below the block, but a Right animation never looks down.
	p := mustPlan(t, b.Direction(bounds.Right).StrideDown(99))
	assert.Equal(t, 2, p.StrideDown)
	assert.Equal(t, 3, p.Frames)

	_, err = b.Direction(bounds.Down).Build()
	assert.True(t, fault.Is(err, fault.ErrTypeInvalidStride))
}

func TestGenerateAllIsAtomic(t *testing.T) {
	g := grid.Grid{Columns: 5, Rows: 4}
	p := Plan{
		Grid:        g,
		Extent:      selection.Extent{X: 0, Y: 0, Width: 2, Height: 1},
		Cells:       []int{0, 1},
		Direction:   bounds.Right,
		StrideRight: 2,
		StrideDown:  1,
		Frames:      2,
		DurationMs:  100,
	}

	anims, err := GenerateAll(p)
	require.NoError(t, err)
	require.Len(t, anims, 2)

	// Tile 1 would run off the right edge on a third frame; tile 0 would not.
	p.Frames = 3
	anims, err = GenerateAll(p)
	assert.Nil(t, anims)
	assert.True(t, fault.Is(err, fault.ErrTypeOutOfRange), "got %v", err)
}

func TestGenerateDoesNotWrapRows(t *testing.T) {
	g := grid.Grid{Columns: 4, Rows: 4}
	p := Plan{Grid: g, Cells: []int{3}, Direction: bounds.Right, StrideRight: 1, StrideDown: 1, Frames: 2, DurationMs: 100}

	// Id 4 exists, but it is on the next row.
	_, err := Generate(p, 3)
	assert.True(t, fault.Is(err, fault.ErrTypeOutOfRange))
}

// firstN is a catalog holding tiles [0, n).
type firstN int

func (n firstN) Has(id int) bool { return id >= 0 && id < int(n) }
func (n firstN) Len() int        { return int(n) }

func TestGenerateStaysInCatalog(t *testing.T) {
	g := grid.Grid{Columns: 6, Rows: 4}
	b, err := NewBuilder(g, []int{0, 1})
	require.NoError(t, err)
	p := mustPlan(t, b.Direction(bounds.Down).StrideDown(1).Catalog(firstN(15)))
	require.Equal(t, 4, p.Frames)

	anims, err := GenerateAll(p)
	require.Error(t, err)
	assert.Nil(t, anims)
	assert.True(t, fault.Is(err, fault.ErrTypeOutOfRange))

	fe, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, "frame[3].tile_id", fe.Field)
	assert.Equal(t, 18, fe.Value)
	assert.Equal(t, 15, fe.Bound)

	b, err = NewBuilder(g, []int{0, 1})
	require.NoError(t, err)
	p = mustPlan(t, b.Direction(bounds.Down).StrideDown(1).Frames(3).Catalog(firstN(15)))
	anims, err = GenerateAll(p)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 7, 13}, tileIDs(anims[1].Frames))
}
