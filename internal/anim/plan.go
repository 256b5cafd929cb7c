package anim

import (
	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
	"github.com/ivlev/bulkanim/internal/selection"
)

// DefaultDurationMs is the per-frame duration offered when none is given.
const DefaultDurationMs = 100

// Frame is one step of a tile's animation cycle.
type Frame struct {
	TileID     int `yaml:"tile_id"`
	DurationMs int `yaml:"duration_ms"`
}

// Plan is a validated animation configuration. Build it with a Builder;
// a Plan is consumed once by GenerateAll.
type Plan struct {
	Grid        grid.Grid        `yaml:"grid"`
	Extent      selection.Extent `yaml:"extent"`
	Cells       []int            `yaml:"cells"`
	Direction   bounds.Direction `yaml:"direction"`
	StrideRight int              `yaml:"stride_right"`
	StrideDown  int              `yaml:"stride_down"`
	Frames      int              `yaml:"frames"`
	DurationMs  int              `yaml:"duration_ms"`

	// catalog, when set, must contain every generated frame.
	catalog grid.Membership
}

// Builder collects user choices for one selection and validates them all
// at once in Build.
type Builder struct {
	grid     grid.Grid
	analysis selection.Analysis
	calc     bounds.Calculator

	direction   bounds.Direction
	strideRight int
	strideDown  int
	frames      int
	durationMs  int
	catalog     grid.Membership
}

// NewBuilder analyzes ids on g and seeds every choice with its default:
// direction Right, rectangular strides, fill-to-maximum frames and
// DefaultDurationMs.
func NewBuilder(g grid.Grid, ids []int) (*Builder, error) {
	a, err := selection.Analyze(g, ids)
	if err != nil {
		return nil, err
	}
	calc := bounds.NewCalculator(g, a)
	right, down := calc.DefaultStride()

	return &Builder{
		grid:        g,
		analysis:    a,
		calc:        calc,
		direction:   bounds.Right,
		strideRight: right,
		strideDown:  down,
		durationMs:  DefaultDurationMs,
	}, nil
}

// Analysis returns the selection classification the builder works from.
func (b *Builder) Analysis() selection.Analysis { return b.analysis }

// Calculator returns the bounds for the builder's selection.
func (b *Builder) Calculator() bounds.Calculator { return b.calc }

func (b *Builder) Direction(d bounds.Direction) *Builder {
	b.direction = d
	return b
}

func (b *Builder) StrideRight(n int) *Builder {
	b.strideRight = n
	return b
}

func (b *Builder) StrideDown(n int) *Builder {
	b.strideDown = n
	return b
}

// Frames sets the frame count; 0 fills to the maximum.
func (b *Builder) Frames(n int) *Builder {
	b.frames = n
	return b
}

func (b *Builder) DurationMs(ms int) *Builder {
	b.durationMs = ms
	return b
}

// Catalog restricts generated frames to tiles present in m. Without it
// every cell of the grid is a valid frame.
func (b *Builder) Catalog(m grid.Membership) *Builder {
	b.catalog = m
	return b
}

// Build validates every choice and resolves the frame-count sentinel.
func (b *Builder) Build() (Plan, error) {
	if err := b.calc.ValidateStride(b.direction, b.strideRight, b.strideDown); err != nil {
		return Plan{}, err
	}
	if err := b.calc.ValidateFrameCount(b.direction, b.strideRight, b.strideDown, b.frames); err != nil {
		return Plan{}, err
	}
	if b.durationMs <= 0 {
		return Plan{}, fault.New(fault.ErrTypeInvalidDuration, "duration_ms", b.durationMs, 1, "duration must be greater than zero")
	}

	frames := b.frames
	if frames == 0 {
		frames = b.calc.MaxFrameCount(b.direction, b.strideRight, b.strideDown)
	}

	right, down := b.calc.DefaultStride()
	if b.direction.UsesRight() {
		right = b.strideRight
	}
	if b.direction.UsesDown() {
		down = b.strideDown
	}

	return Plan{
		Grid:        b.grid,
		Extent:      b.analysis.Extent,
		Cells:       append([]int(nil), b.analysis.IDs...),
		Direction:   b.direction,
		StrideRight: right,
		StrideDown:  down,
		Frames:      frames,
		DurationMs:  b.durationMs,
		catalog:     b.catalog,
	}, nil
}
