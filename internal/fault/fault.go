// Package fault defines the structured errors returned by grid, selection,
// stride and frame validation. Callers branch on Type to render a specific
// retry prompt instead of parsing messages.
package fault

import (
	"errors"
	"fmt"
)

// ErrorType categorizes a failure.
type ErrorType int

const (
	// ErrTypeEmptySelection indicates no cells were selected.
	ErrTypeEmptySelection ErrorType = iota
	// ErrTypeOutOfRange indicates a cell id or coordinate outside the grid.
	ErrTypeOutOfRange
	// ErrTypeInvalidStride indicates a stride <= 0 or above the computed maximum.
	ErrTypeInvalidStride
	// ErrTypeInvalidFrameCount indicates a frame count < 0 or above the computed maximum.
	ErrTypeInvalidFrameCount
	// ErrTypeInvalidDuration indicates a frame duration <= 0.
	ErrTypeInvalidDuration
	// ErrTypeInvalidGrid indicates grid parameters that yield no whole cell.
	ErrTypeInvalidGrid
)

func (t ErrorType) String() string {
	switch t {
	case ErrTypeEmptySelection:
		return "empty_selection"
	case ErrTypeOutOfRange:
		return "out_of_range"
	case ErrTypeInvalidStride:
		return "invalid_stride"
	case ErrTypeInvalidFrameCount:
		return "invalid_frame_count"
	case ErrTypeInvalidDuration:
		return "invalid_duration"
	case ErrTypeInvalidGrid:
		return "invalid_grid"
	default:
		return fmt.Sprintf("error_type(%d)", int(t))
	}
}

// Error carries the offending value and, where one exists, the computed
// bound it was checked against.
type Error struct {
	Type    ErrorType
	Field   string
	Value   int
	Bound   int
	Message string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s (value=%d, bound=%d)", e.Field, e.Message, e.Value, e.Bound)
}

// New builds an *Error.
func New(t ErrorType, field string, value, bound int, msg string) *Error {
	return &Error{Type: t, Field: field, Value: value, Bound: bound, Message: msg}
}

// EmptySelection is returned when a selection has no cells.
func EmptySelection() *Error {
	return &Error{Type: ErrTypeEmptySelection, Message: "no cells are selected"}
}

// OutOfRange reports a cell id or coordinate component outside [0, bound).
func OutOfRange(field string, value, bound int) *Error {
	return New(ErrTypeOutOfRange, field, value, bound, "outside grid bounds")
}

// Is reports whether err (or anything it wraps) is an *Error of type t.
func Is(err error, t ErrorType) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Type == t
	}
	return false
}

// As extracts the *Error from err.
func As(err error) (*Error, bool) {
	var fe *Error
	ok := errors.As(err, &fe)
	return fe, ok
}
