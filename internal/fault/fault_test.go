package fault

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(ErrTypeInvalidStride, "stride_right", 7, 4, "stride exceeds the maximum")
	want := "stride_right: stride exceeds the maximum (value=7, bound=4)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if got := EmptySelection().Error(); got != "no cells are selected" {
		t.Errorf("EmptySelection().Error() = %q", got)
	}
}

func TestIsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("tile 3: %w", OutOfRange("frame[2].row", 4, 4))

	if !Is(wrapped, ErrTypeOutOfRange) {
		t.Error("Is should see through wrapping")
	}
	if Is(wrapped, ErrTypeInvalidStride) {
		t.Error("Is matched the wrong type")
	}
	fe, ok := As(wrapped)
	if !ok || fe.Field != "frame[2].row" || fe.Bound != 4 {
		t.Errorf("As = %+v, %v", fe, ok)
	}

	if Is(errors.New("plain"), ErrTypeOutOfRange) {
		t.Error("plain error matched")
	}
	if _, ok := As(errors.New("plain")); ok {
		t.Error("As matched a plain error")
	}
}

func TestTypeString(t *testing.T) {
	if ErrTypeInvalidGrid.String() != "invalid_grid" {
		t.Errorf("got %s", ErrTypeInvalidGrid)
	}
	if ErrorType(42).String() != "error_type(42)" {
		t.Errorf("got %s", ErrorType(42))
	}
}
