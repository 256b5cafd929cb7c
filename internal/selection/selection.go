// Package selection classifies a set of selected cells against the grid
// they were picked from.
package selection

import (
	"fmt"
	"sort"

	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
)

// Extent is the bounding rectangle of a selection in cell units.
type Extent struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"w"`
	Height int `yaml:"h"`
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d)", e.Width, e.Height, e.X, e.Y)
}

// Right is the first column past the extent.
func (e Extent) Right() int { return e.X + e.Width }

// Bottom is the first row past the extent.
func (e Extent) Bottom() int { return e.Y + e.Height }

// Analysis is the classification of one selection.
type Analysis struct {
	IDs         []int
	Extent      Extent
	Rectangular bool
	Square      bool
}

// ExtentOf returns the minimal rectangle covering coords.
func ExtentOf(coords []grid.Coordinate) (Extent, error) {
	if len(coords) == 0 {
		return Extent{}, fault.EmptySelection()
	}

	minC, minR := coords[0].Column, coords[0].Row
	maxC, maxR := minC, minR
	for _, c := range coords[1:] {
		minC = min(minC, c.Column)
		maxC = max(maxC, c.Column)
		minR = min(minR, c.Row)
		maxR = max(maxR, c.Row)
	}

	return Extent{X: minC, Y: minR, Width: maxC - minC + 1, Height: maxR - minR + 1}, nil
}

// IsRectangular reports whether ids are exactly the cells of their bounding
// extent: scanning the extent row-major must reproduce the sorted ids one for
// one, with nothing left over.
func IsRectangular(g grid.Grid, ids []int) bool {
	if len(ids) == 0 {
		return false
	}

	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	coords := make([]grid.Coordinate, 0, len(sorted))
	for _, id := range sorted {
		c, err := g.CoordinateOf(id)
		if err != nil {
			return false
		}
		coords = append(coords, c)
	}
	ext, _ := ExtentOf(coords)

	i := 0
	for row := ext.Y; row < ext.Bottom(); row++ {
		for col := ext.X; col < ext.Right(); col++ {
			if i >= len(sorted) || sorted[i] != row*g.Columns+col {
				return false
			}
			i++
		}
	}
	return i == len(sorted)
}

// IsSquare reports whether the extent is as wide as it is tall.
func IsSquare(e Extent) bool {
	return e.Width == e.Height
}

// Analyze sorts and dedupes ids, resolves them on g and classifies the result.
func Analyze(g grid.Grid, ids []int) (Analysis, error) {
	if len(ids) == 0 {
		return Analysis{}, fault.EmptySelection()
	}

	sorted := dedupe(ids)
	coords := make([]grid.Coordinate, len(sorted))
	for i, id := range sorted {
		c, err := g.CoordinateOf(id)
		if err != nil {
			return Analysis{}, err
		}
		coords[i] = c
	}

	ext, err := ExtentOf(coords)
	if err != nil {
		return Analysis{}, err
	}

	return Analysis{
		IDs:         sorted,
		Extent:      ext,
		Rectangular: IsRectangular(g, sorted),
		Square:      IsSquare(ext),
	}, nil
}

// Rect returns the ids of the w x h rectangle at (x, y), row-major.
func Rect(g grid.Grid, e Extent) ([]int, error) {
	if e.Width < 1 || e.Height < 1 {
		return nil, fault.EmptySelection()
	}
	if !g.Contains(grid.Coordinate{Column: e.X, Row: e.Y}) {
		return nil, fault.OutOfRange("rect_origin", g.IDOf(grid.Coordinate{Column: e.X, Row: e.Y}), g.Size())
	}
	if e.Right() > g.Columns {
		return nil, fault.OutOfRange("rect_right", e.Right(), g.Columns)
	}
	if e.Bottom() > g.Rows {
		return nil, fault.OutOfRange("rect_bottom", e.Bottom(), g.Rows)
	}

	ids := make([]int, 0, e.Width*e.Height)
	for row := e.Y; row < e.Bottom(); row++ {
		for col := e.X; col < e.Right(); col++ {
			ids = append(ids, g.IDOf(grid.Coordinate{Column: col, Row: row}))
		}
	}
	return ids, nil
}

func dedupe(ids []int) []int {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)

	out := make([]int, 0, len(sorted))
	for _, id := range sorted {
		if n := len(out); n > 0 && out[n-1] == id {
			continue
		}
		out = append(out, id)
	}
	return out
}
