// Package bounds computes default and maximum strides and frame counts for a
// selection on a grid.
package bounds

import (
	"fmt"
	"strings"

	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
	"github.com/ivlev/bulkanim/internal/selection"
)

// Direction is where the remaining frames of an animation sit in the image.
type Direction int

const (
	Right Direction = iota
	Down
	Both
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// UsesRight reports whether frames advance along columns.
func (d Direction) UsesRight() bool { return d == Right || d == Both }

// UsesDown reports whether frames advance along rows.
func (d Direction) UsesDown() bool { return d == Down || d == Both }

// ParseDirection accepts "r", "d", "b" or any word starting with them.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty direction")
	}
	switch s[0] {
	case 'r':
		return Right, nil
	case 'd':
		return Down, nil
	case 'b':
		return Both, nil
	}
	return 0, fmt.Errorf("unknown direction %q (want right, down or both)", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Calculator bounds strides and frame counts for one selection.
type Calculator struct {
	Grid        grid.Grid
	Extent      selection.Extent
	Rectangular bool
}

// NewCalculator builds a Calculator from an analyzed selection.
func NewCalculator(g grid.Grid, a selection.Analysis) Calculator {
	return Calculator{Grid: g, Extent: a.Extent, Rectangular: a.Rectangular}
}

// DefaultStride returns the rectangular default for each axis: the extent
// width rightwards and the extent height downwards. A non-rectangular
// selection has no geometric unit to infer from and falls back to 1.
func (c Calculator) DefaultStride() (right, down int) {
	if !c.Rectangular {
		return 1, 1
	}
	return c.Extent.Width, c.Extent.Height
}

// MaxStride returns the whole cells left past the selection's far edge on
// each axis. A value <= 0 means no further frame fits on that axis.
func (c Calculator) MaxStride() (right, down int) {
	return c.Grid.Columns - c.Extent.Right(), c.Grid.Rows - c.Extent.Bottom()
}

// RowCapacity is the number of frames that fit along one row of the sweep.
// strideRight must be positive.
func (c Calculator) RowCapacity(strideRight int) int {
	return 1 + (c.Grid.Columns-c.Extent.Right())/strideRight
}

// ColumnCapacity is the number of frames that fit down one column of the
// sweep. strideDown must be positive.
func (c Calculator) ColumnCapacity(strideDown int) int {
	return 1 + (c.Grid.Rows-c.Extent.Bottom())/strideDown
}

// MaxFrameCount returns the largest frame count d allows for the strides.
// Strides must be positive on the axes d uses.
func (c Calculator) MaxFrameCount(d Direction, strideRight, strideDown int) int {
	switch d {
	case Right:
		return c.RowCapacity(strideRight)
	case Down:
		return c.ColumnCapacity(strideDown)
	default:
		return c.RowCapacity(strideRight) * c.ColumnCapacity(strideDown)
	}
}

// ValidateStride checks the strides on the axes d uses.
func (c Calculator) ValidateStride(d Direction, strideRight, strideDown int) error {
	maxRight, maxDown := c.MaxStride()
	if d.UsesRight() {
		if err := checkStride("stride_right", strideRight, maxRight); err != nil {
			return err
		}
	}
	if d.UsesDown() {
		if err := checkStride("stride_down", strideDown, maxDown); err != nil {
			return err
		}
	}
	return nil
}

func checkStride(field string, stride, limit int) error {
	if stride <= 0 {
		return fault.New(fault.ErrTypeInvalidStride, field, stride, limit, "stride should be greater than zero")
	}
	if limit <= 0 {
		return fault.New(fault.ErrTypeInvalidStride, field, stride, limit, "no room left in the tileset past the selection")
	}
	if stride > limit {
		return fault.New(fault.ErrTypeInvalidStride, field, stride, limit, "stride exceeds the maximum")
	}
	return nil
}

// ValidateFrameCount checks frames against the maximum for d. Zero is the
// fill-to-maximum sentinel and is accepted. Strides must already be valid.
func (c Calculator) ValidateFrameCount(d Direction, strideRight, strideDown, frames int) error {
	limit := c.MaxFrameCount(d, strideRight, strideDown)
	if frames < 0 {
		return fault.New(fault.ErrTypeInvalidFrameCount, "frames", frames, limit, "frame count must not be negative")
	}
	if frames > limit {
		return fault.New(fault.ErrTypeInvalidFrameCount, "frames", frames, limit, "frame count exceeds the maximum")
	}
	return nil
}
