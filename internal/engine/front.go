package engine

import (
	"errors"
	"fmt"

	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/config"
)

// ErrAborted is returned when the user declines a confirmation or cancels
// a prompt. Nothing has been written when it is returned.
var ErrAborted = errors.New("operation aborted")

// ErrNeedsForce is returned by a non-interactive run that would replace
// existing animations without --force.
var ErrNeedsForce = errors.New("pass --force to overwrite")

// Front supplies the choices of a run. Scripted answers from the resolved
// config; the interactive front in package prompt asks on a terminal.
type Front interface {
	// ConfirmOverwrite is asked when animated tiles are already selected.
	ConfirmOverwrite(animated int) (bool, error)
	// ConfirmClear is asked before animations are removed.
	ConfirmClear(animated int) (bool, error)
	Direction(def bounds.Direction) (bounds.Direction, error)
	// Strides returns a stride for both axes; unused axes get the default.
	Strides(d bounds.Direction, calc bounds.Calculator) (right, down int, err error)
	// Frames returns the frame count, 0 meaning as many as fit.
	Frames(d bounds.Direction, calc bounds.Calculator, strideRight, strideDown int) (int, error)
	DurationMs(def int) (int, error)
}

// Scripted answers every question from a resolved config and never blocks.
type Scripted struct {
	Config *config.Config
}

func (s Scripted) ConfirmOverwrite(animated int) (bool, error) {
	if s.Config.Force {
		return true, nil
	}
	return false, fmt.Errorf("%d selected tile(s) already have animations: %w", animated, ErrNeedsForce)
}

func (s Scripted) ConfirmClear(int) (bool, error) {
	return true, nil
}

func (s Scripted) Direction(def bounds.Direction) (bounds.Direction, error) {
	if s.Config.HasDirection {
		return s.Config.Direction, nil
	}
	return def, nil
}

func (s Scripted) Strides(_ bounds.Direction, calc bounds.Calculator) (int, int, error) {
	right, down := calc.DefaultStride()
	if s.Config.StrideRight != nil {
		right = *s.Config.StrideRight
	}
	if s.Config.StrideDown != nil {
		down = *s.Config.StrideDown
	}
	return right, down, nil
}

func (s Scripted) Frames(bounds.Direction, bounds.Calculator, int, int) (int, error) {
	return s.Config.Frames, nil
}

func (s Scripted) DurationMs(int) (int, error) {
	return s.Config.DurationMs, nil
}
