package keymap

import (
	"unicode"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
)

// Grid dimensions.
const (
	Directions = stick.Count
	Buttons    = 4
)

// Entry is one cell of a table. A zero Alt means the shifted character is
// derived from Primary by case folding.
type Entry struct {
	Primary rune
	Alt     rune
}

// HasAlt reports whether the entry carries an explicit alt character.
func (e Entry) HasAlt() bool {
	return e.Alt != 0
}

// Resolve returns the character typed for this entry.
func (e Entry) Resolve(shift bool) rune {
	if e.Alt == 0 {
		if shift {
			return unicode.ToUpper(e.Primary)
		}
		return unicode.ToLower(e.Primary)
	}
	if shift {
		return e.Alt
	}
	return e.Primary
}

// Cells is the raw grid of a table.
type Cells [Directions][Buttons]Entry

// Table is an immutable character table for one language or symbol set.
type Table struct {
	id    string
	name  string
	cells Cells
}

// NewTable creates a table from a grid. The grid is copied.
func NewTable(id, name string, cells Cells) *Table {
	return &Table{id: id, name: name, cells: cells}
}

// ID returns the keymap id (the file stem, e.g. "english").
func (t *Table) ID() string {
	return t.id
}

// Name returns the display name, falling back to the id.
func (t *Table) Name() string {
	if t.name == "" {
		return t.id
	}
	return t.name
}

func inRange(dir stick.Direction, index int) bool {
	return dir < Directions && index >= 0 && index < Buttons
}

// Entry returns the raw cell at (dir, index).
func (t *Table) Entry(dir stick.Direction, index int) (Entry, error) {
	if !inRange(dir, index) {
		return Entry{}, &IndexError{Direction: int(dir), Button: index}
	}
	return t.cells[dir][index], nil
}

// Lookup returns the character at (dir, index) for the given shift state.
// Unassigned cells yield 0.
func (t *Table) Lookup(dir stick.Direction, index int, shift bool) (rune, error) {
	e, err := t.Entry(dir, index)
	if err != nil {
		return 0, err
	}
	return e.Resolve(shift), nil
}

// Cells returns a copy of the raw grid.
func (t *Table) Cells() Cells {
	return t.cells
}

// Grid returns the resolved characters for every cell.
func (t *Table) Grid(shift bool) [Directions][Buttons]rune {
	var g [Directions][Buttons]rune
	for d := range t.cells {
		for b := range t.cells[d] {
			g[d][b] = t.cells[d][b].Resolve(shift)
		}
	}
	return g
}

// ButtonIndex returns the column for a face button: A, B, X, Y map to 0..3.
func ButtonIndex(b button.Button) (int, error) {
	switch b {
	case button.A:
		return 0, nil
	case button.B:
		return 1, nil
	case button.X:
		return 2, nil
	case button.Y:
		return 3, nil
	default:
		return -1, &UnsupportedButtonError{Button: b}
	}
}

// ColumnButton returns the face button for a column index.
func ColumnButton(index int) button.Button {
	switch index {
	case 0:
		return button.A
	case 1:
		return button.B
	case 2:
		return button.X
	case 3:
		return button.Y
	default:
		return button.None
	}
}
