package machine

import (
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/keymap"
)

// Snapshot is an immutable view of the machine for renderers.
type Snapshot struct {
	// Table is the active table, nil when none is loaded.
	Table     *keymap.Table
	Symbols   bool
	Shift     bool
	Primary   stick.Direction
	Secondary stick.Direction
	Suspended bool
	Field     FieldClass

	Languages     []string
	LanguageIndex int
	Session       string
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	langs := make([]string, len(m.languages))
	for i, t := range m.languages {
		langs[i] = t.ID()
	}
	return Snapshot{
		Table:         m.Active(),
		Symbols:       m.symbolsActive && m.symbols != nil,
		Shift:         m.shift,
		Primary:       m.primary,
		Secondary:     m.secondary,
		Suspended:     m.Suspended(),
		Field:         m.field,
		Languages:     langs,
		LanguageIndex: m.langIndex,
		Session:       m.session,
	}
}

// Grid returns the characters of the active table under the snapshot's
// shift state. ok is false when no table is loaded.
func (s Snapshot) Grid() (grid [keymap.Directions][keymap.Buttons]rune, ok bool) {
	if s.Table == nil {
		return grid, false
	}
	return s.Table.Grid(s.Shift), true
}
