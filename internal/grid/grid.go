package grid

import (
	"fmt"

	"github.com/ivlev/bulkanim/internal/fault"
)

// Grid describes a tileset image cut into Columns x Rows equal cells.
type Grid struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// Coordinate is a cell position, column first.
type Coordinate struct {
	Column int `yaml:"column"`
	Row    int `yaml:"row"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

// Membership is a catalog of cell ids that actually exist.
type Membership interface {
	Has(id int) bool
}

// New validates the counts and returns a Grid.
func New(columns, rows int) (Grid, error) {
	if columns < 1 {
		return Grid{}, fault.New(fault.ErrTypeInvalidGrid, "columns", columns, 1, "grid needs at least one column")
	}
	if rows < 1 {
		return Grid{}, fault.New(fault.ErrTypeInvalidGrid, "rows", rows, 1, "grid needs at least one row")
	}
	return Grid{Columns: columns, Rows: rows}, nil
}

// FromImage derives the grid from pixel dimensions.
// Per axis: count = floor((imageSize + spacing - 2*margin) / (cellSize + spacing)).
func FromImage(imageWidth, imageHeight, cellWidth, cellHeight, spacing, margin int) (Grid, error) {
	if cellWidth <= 0 {
		return Grid{}, fault.New(fault.ErrTypeInvalidGrid, "tile_width", cellWidth, 1, "tile width must be positive")
	}
	if cellHeight <= 0 {
		return Grid{}, fault.New(fault.ErrTypeInvalidGrid, "tile_height", cellHeight, 1, "tile height must be positive")
	}
	if spacing < 0 {
		return Grid{}, fault.New(fault.ErrTypeInvalidGrid, "spacing", spacing, 0, "spacing must not be negative")
	}
	if margin < 0 {
		return Grid{}, fault.New(fault.ErrTypeInvalidGrid, "margin", margin, 0, "margin must not be negative")
	}
	return New(axisCount(imageWidth, cellWidth, spacing, margin), axisCount(imageHeight, cellHeight, spacing, margin))
}

func axisCount(imageSize, cellSize, spacing, margin int) int {
	usable := imageSize + spacing - 2*margin
	if usable <= 0 {
		return 0
	}
	return usable / (cellSize + spacing)
}

// Size is the number of cells in the grid.
func (g Grid) Size() int {
	return g.Columns * g.Rows
}

// Contains reports whether c lies on the grid.
func (g Grid) Contains(c Coordinate) bool {
	return c.Column >= 0 && c.Column < g.Columns && c.Row >= 0 && c.Row < g.Rows
}

// CoordinateOf maps a row-major cell id to its coordinate.
func (g Grid) CoordinateOf(id int) (Coordinate, error) {
	if id < 0 || id >= g.Size() {
		return Coordinate{}, fault.OutOfRange("cell_id", id, g.Size())
	}
	return Coordinate{Column: id % g.Columns, Row: id / g.Columns}, nil
}

// IDOf maps a coordinate to its row-major cell id. Callers bound-check first.
func (g Grid) IDOf(c Coordinate) int {
	return c.Row*g.Columns + c.Column
}

// Resolve is CoordinateOf restricted to ids present in catalog.
func (g Grid) Resolve(catalog Membership, id int) (Coordinate, error) {
	if !catalog.Has(id) {
		return Coordinate{}, fault.New(fault.ErrTypeOutOfRange, "cell_id", id, g.Size(), "tile not found in tileset")
	}
	return g.CoordinateOf(id)
}
