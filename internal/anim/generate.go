// Package anim turns a validated Plan into per-tile frame sequences.
package anim

import (
	"fmt"

	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
)

// Animation is the frame sequence generated for one base tile.
type Animation struct {
	TileID int     `yaml:"tile_id"`
	Frames []Frame `yaml:"frames"`
}

// rowCapacity is the page width of a Both sweep.
func (p Plan) rowCapacity() int {
	calc := bounds.Calculator{Grid: p.Grid, Extent: p.Extent}
	return calc.RowCapacity(p.StrideRight)
}

// Generate returns the frames for base. Both sweeps in raster order: frame k
// sits rowCapacity-wide pages across, i.e. at page column k%cap and page row
// k/cap, so the carriage return lands back on base's column.
func Generate(p Plan, base int) ([]Frame, error) {
	g := p.Grid
	origin, err := g.CoordinateOf(base)
	if err != nil {
		return nil, err
	}
	if p.Frames <= 0 {
		return nil, fault.New(fault.ErrTypeInvalidFrameCount, "frames", p.Frames, 1, "plan has no frames")
	}

	pageWidth := 1
	if p.Direction == bounds.Both {
		pageWidth = p.rowCapacity()
	}

	frames := make([]Frame, 0, p.Frames)
	for k := 0; k < p.Frames; k++ {
		var c grid.Coordinate
		switch p.Direction {
		case bounds.Right:
			c = grid.Coordinate{Column: origin.Column + k*p.StrideRight, Row: origin.Row}
		case bounds.Down:
			c = grid.Coordinate{Column: origin.Column, Row: origin.Row + k*p.StrideDown}
		case bounds.Both:
			c = grid.Coordinate{
				Column: origin.Column + (k%pageWidth)*p.StrideRight,
				Row:    origin.Row + (k/pageWidth)*p.StrideDown,
			}
		default:
			return nil, fmt.Errorf("unsupported direction %v", p.Direction)
		}

		if c.Column < 0 || c.Column >= g.Columns {
			return nil, fault.OutOfRange(fmt.Sprintf("frame[%d].column", k), c.Column, g.Columns)
		}
		if c.Row < 0 || c.Row >= g.Rows {
			return nil, fault.OutOfRange(fmt.Sprintf("frame[%d].row", k), c.Row, g.Rows)
		}

		id := g.IDOf(c)
		if p.catalog != nil && !p.catalog.Has(id) {
			return nil, fault.New(fault.ErrTypeOutOfRange, fmt.Sprintf("frame[%d].tile_id", k), id, catalogSize(p), "tile not found in tileset")
		}
		frames = append(frames, Frame{TileID: id, DurationMs: p.DurationMs})
	}
	return frames, nil
}

// catalogSize is the tile count of the plan's catalog when it reports one.
func catalogSize(p Plan) int {
	if sized, ok := p.catalog.(interface{ Len() int }); ok {
		return sized.Len()
	}
	return p.Grid.Size()
}

// GenerateAll generates frames for every cell of the plan. Either every
// sequence is returned or none is.
func GenerateAll(p Plan) ([]Animation, error) {
	out := make([]Animation, 0, len(p.Cells))
	for _, id := range p.Cells {
		frames, err := Generate(p, id)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", id, err)
		}
		out = append(out, Animation{TileID: id, Frames: frames})
	}
	return out, nil
}
