// Package engine runs create, clear and inspect operations against one
// tileset document, and batches of them.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ivlev/bulkanim/internal/anim"
	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/config"
	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/grid"
	"github.com/ivlev/bulkanim/internal/report"
	"github.com/ivlev/bulkanim/internal/source"
	"github.com/ivlev/bulkanim/internal/tileset"
)

// StatsLog is the file run statistics are appended to, next to the output.
const StatsLog = "bulkanim.log"

// Project binds a loaded tileset to its run configuration.
type Project struct {
	Config  *config.Config
	Tileset *tileset.Tileset
	Front   Front
}

// Result describes a finished operation.
type Result struct {
	Action     string
	Plan       *anim.Plan
	Animations []anim.Animation
	Cleared    int
	Output     string
	Written    bool
	Elapsed    time.Duration
}

// Frames is the total number of frames generated.
func (r *Result) Frames() int {
	n := 0
	for _, a := range r.Animations {
		n += len(a.Frames)
	}
	return n
}

// Open reads the tileset named by cfg. When the document does not record
// image dimensions they are probed from the image header.
func Open(cfg *config.Config, front Front) (*Project, error) {
	if cfg.TilesetPath == "" {
		return nil, errors.New("no tileset given")
	}
	ts, err := tileset.Read(cfg.TilesetPath)
	if err != nil {
		return nil, err
	}

	if (ts.ImageWidth == 0 || ts.ImageHeight == 0) && ts.Image != "" {
		path := ts.ImagePath(cfg.TilesetPath)
		if !source.Supported(path) {
			return nil, fmt.Errorf("tileset %s: unsupported image format %s", cfg.TilesetPath, filepath.Ext(path))
		}
		w, h, format, err := source.Dimensions(path)
		if err != nil {
			return nil, fmt.Errorf("tileset %s records no image size: %w", cfg.TilesetPath, err)
		}
		ts.ImageWidth, ts.ImageHeight = w, h
		log.Debug().Str("image", path).Str("format", format).Int("width", w).Int("height", h).Msg("probed image size")
	}

	if front == nil {
		front = Scripted{Config: cfg}
	}
	return &Project{Config: cfg, Tileset: ts, Front: front}, nil
}

// DefaultDirection follows the longer side of the tileset image.
func (p *Project) DefaultDirection() bounds.Direction {
	if p.Tileset.ImageWidth >= p.Tileset.ImageHeight {
		return bounds.Right
	}
	return bounds.Down
}

// selected resolves the configured selection and checks every id against
// the catalog.
func (p *Project) selected(snap *tileset.Snapshot) ([]int, error) {
	g := snap.Grid()
	ids, err := p.Config.Selection.Resolve(g)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fault.EmptySelection()
	}
	for _, id := range ids {
		if _, err := g.Resolve(snap, id); err != nil {
			return nil, err
		}
	}
	return ids, nil
}

// Create builds a plan from the front's answers, generates every sequence
// and assigns them in one step.
func (p *Project) Create(ctx context.Context) (*Result, error) {
	start := time.Now()

	snap, err := p.Tileset.Snapshot()
	if err != nil {
		return nil, err
	}
	ids, err := p.selected(snap)
	if err != nil {
		return nil, err
	}

	if animated := snap.Animated(ids); len(animated) > 0 {
		ok, err := p.Front.ConfirmOverwrite(len(animated))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
		log.Debug().Ints("tiles", animated).Msg("existing animations will be replaced")
	}

	b, err := anim.NewBuilder(snap.Grid(), ids)
	if err != nil {
		return nil, err
	}
	calc := b.Calculator()

	dir, err := p.Front.Direction(p.DefaultDirection())
	if err != nil {
		return nil, err
	}
	right, down, err := p.Front.Strides(dir, calc)
	if err != nil {
		return nil, err
	}
	frames, err := p.Front.Frames(dir, calc, right, down)
	if err != nil {
		return nil, err
	}
	duration, err := p.Front.DurationMs(p.Config.DurationMs)
	if err != nil {
		return nil, err
	}

	plan, err := b.Direction(dir).
		StrideRight(right).
		StrideDown(down).
		Frames(frames).
		DurationMs(duration).
		Catalog(snap).
		Build()
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("extent", plan.Extent.String()).
		Bool("rectangular", b.Analysis().Rectangular).
		Str("direction", plan.Direction.String()).
		Int("stride_right", plan.StrideRight).
		Int("stride_down", plan.StrideDown).
		Int("frames", plan.Frames).
		Msg("plan built")

	anims, err := anim.GenerateAll(plan)
	if err != nil {
		return nil, err
	}

	res := &Result{Action: "create", Plan: &plan, Animations: anims, Output: p.Config.OutputPath}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.Config.DryRun {
		if err := p.Tileset.Apply(anims); err != nil {
			return nil, err
		}
		if err := p.write(); err != nil {
			return nil, err
		}
		res.Written = true
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// Clear removes the animations of the selected tiles.
func (p *Project) Clear(ctx context.Context) (*Result, error) {
	start := time.Now()

	snap, err := p.Tileset.Snapshot()
	if err != nil {
		return nil, err
	}
	ids, err := p.selected(snap)
	if err != nil {
		return nil, err
	}

	res := &Result{Action: "clear", Output: p.Config.OutputPath}
	animated := snap.Animated(ids)
	if len(animated) == 0 {
		res.Elapsed = time.Since(start)
		return res, nil
	}

	ok, err := p.Front.ConfirmClear(len(animated))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAborted
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.Config.DryRun {
		res.Cleared = len(animated)
	} else {
		res.Cleared = p.Tileset.Clear(ids)
		if err := p.write(); err != nil {
			return nil, err
		}
		res.Written = true
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (p *Project) write() error {
	if err := tileset.Write(p.Tileset, p.Config.OutputPath); err != nil {
		return err
	}
	log.Info().Str("path", p.Config.OutputPath).Msg("tileset written")
	return nil
}

// Inspection summarizes the bounds of the configured selection.
type Inspection struct {
	Grid         grid.Grid
	Extent       string
	Cells        int
	Rectangular  bool
	Square       bool
	Animated     []int
	DefaultRight int
	DefaultDown  int
	MaxRight     int
	MaxDown      int
	// MaxFrames per direction at the default strides, clipped to the
	// maximum; 0 when the direction has no room.
	MaxFrames map[bounds.Direction]int
}

// Inspect reports what a create run on the selection could do.
func (p *Project) Inspect() (*Inspection, error) {
	snap, err := p.Tileset.Snapshot()
	if err != nil {
		return nil, err
	}
	ids, err := p.selected(snap)
	if err != nil {
		return nil, err
	}
	b, err := anim.NewBuilder(snap.Grid(), ids)
	if err != nil {
		return nil, err
	}
	a, calc := b.Analysis(), b.Calculator()

	in := &Inspection{
		Grid:        snap.Grid(),
		Extent:      a.Extent.String(),
		Cells:       len(a.IDs),
		Rectangular: a.Rectangular,
		Square:      a.Square,
		Animated:    snap.Animated(a.IDs),
		MaxFrames:   make(map[bounds.Direction]int, 3),
	}
	in.DefaultRight, in.DefaultDown = calc.DefaultStride()
	in.MaxRight, in.MaxDown = calc.MaxStride()

	right, down := min(in.DefaultRight, in.MaxRight), min(in.DefaultDown, in.MaxDown)
	for _, d := range []bounds.Direction{bounds.Right, bounds.Down, bounds.Both} {
		if calc.ValidateStride(d, right, down) != nil {
			in.MaxFrames[d] = 0
			continue
		}
		in.MaxFrames[d] = calc.MaxFrameCount(d, right, down)
	}
	return in, nil
}

// Stats reports res for the run report.
func (p *Project) Stats(res *Result) report.Stats {
	tiles := len(res.Animations)
	if res.Action == "clear" {
		tiles = res.Cleared
	}
	return report.Stats{
		Build:    p.Config.BuildVersion,
		Action:   res.Action,
		Tileset:  p.Config.TilesetPath,
		Tiles:    tiles,
		Frames:   res.Frames(),
		Elapsed:  res.Elapsed,
		Finished: time.Now(),
	}
}

// RecordStats prints the run report and appends it to StatsLog beside the
// output document.
func (p *Project) RecordStats(res *Result) report.Stats {
	s := p.Stats(res)
	path := filepath.Join(filepath.Dir(p.Config.OutputPath), StatsLog)
	if err := s.Append(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("could not write stats log")
	}
	return s
}

// Diagnostic describes an unexpected failure of action with the project's
// tileset geometry and, when one was built, the plan.
func (p *Project) Diagnostic(ctx context.Context, action string, err error, plan *anim.Plan) *report.Diagnostic {
	d := report.NewDiagnostic(ctx, action, err, p.Config.BuildVersion)
	if plan != nil {
		d.Config = plan
	}
	if ts := p.Tileset; ts != nil {
		d.Tileset = &report.TilesetInfo{
			Path:        p.Config.TilesetPath,
			ImageWidth:  ts.ImageWidth,
			ImageHeight: ts.ImageHeight,
			TileWidth:   ts.TileWidth,
			TileHeight:  ts.TileHeight,
			Spacing:     ts.Spacing,
			Margin:      ts.Margin,
		}
	}
	return d
}

// Expected reports whether err is a user-facing outcome (validation,
// abort, cancellation) rather than a failure worth a diagnostic.
func Expected(err error) bool {
	if _, ok := fault.As(err); ok {
		return true
	}
	return errors.Is(err, ErrAborted) || errors.Is(err, ErrNeedsForce) || errors.Is(err, context.Canceled)
}
