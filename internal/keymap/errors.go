package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/padkeys/internal/input/button"
)

// Errors returned by keymap operations.
var (
	// ErrNotFound indicates no keymap with the requested id exists.
	ErrNotFound = errors.New("keymap not found")

	// ErrInvalidID indicates a keymap id that cannot name a file.
	ErrInvalidID = errors.New("invalid keymap id")
)

// FormatError describes a keymap source that could not be loaded.
type FormatError struct {
	// Source is the keymap id or file path.
	Source string
	// Line is the line number where the problem was found (if available).
	Line int
	// Message describes the problem.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("keymap %s: line %d: %s", e.Source, e.Line, e.Message)
	}
	return fmt.Sprintf("keymap %s: %s", e.Source, e.Message)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IndexError reports a lookup outside the 9x4 grid.
type IndexError struct {
	Direction int
	Button    int
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("keymap index out of range: direction %d, button %d", e.Direction, e.Button)
}

// UnsupportedButtonError is returned when a non-face button is used as a
// column index.
type UnsupportedButtonError struct {
	Button button.Button
}

// Error implements the error interface.
func (e *UnsupportedButtonError) Error() string {
	return fmt.Sprintf("button %s has no keymap column", e.Button)
}
