package machine

import (
	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/repeat"
)

// Event is an input to Machine.Handle.
type Event interface {
	isEvent()
}

// ButtonDown reports a button press.
type ButtonDown struct {
	Button button.Button
}

// ButtonUp reports a button release.
type ButtonUp struct {
	Button button.Button
}

// PrimaryStick reports a dead-zone filtered sample of the left stick or
// D-pad. Positive Y is north.
type PrimaryStick struct {
	X, Y float64
}

// SecondaryStick reports a dead-zone filtered sample of the right stick.
type SecondaryStick struct {
	X, Y float64
}

// FieldFocus reports that an input field gained focus.
type FieldFocus struct {
	Class FieldClass
	// Restarting is set when the same field is re-attached, for example
	// after its text was replaced programmatically.
	Restarting bool
}

// FieldBlur reports that the focused field lost focus.
type FieldBlur struct{}

// RepeatTick delivers a tick scheduled by the repeat driver.
type RepeatTick struct {
	Tick repeat.Tick
}

// KeymapsReloaded replaces the loaded tables.
type KeymapsReloaded struct {
	Set keymap.Set
}

func (ButtonDown) isEvent()      {}
func (ButtonUp) isEvent()        {}
func (PrimaryStick) isEvent()    {}
func (SecondaryStick) isEvent()  {}
func (FieldFocus) isEvent()      {}
func (FieldBlur) isEvent()       {}
func (RepeatTick) isEvent()      {}
func (KeymapsReloaded) isEvent() {}

// FieldClass describes what an input field accepts.
type FieldClass uint8

const (
	// FieldNone is a field that accepts no text. It suspends the machine.
	FieldNone FieldClass = iota
	FieldText
	FieldNumber
	FieldDateTime
	FieldPhone
)

// String returns the name of the class.
func (c FieldClass) String() string {
	switch c {
	case FieldNone:
		return "none"
	case FieldText:
		return "text"
	case FieldNumber:
		return "number"
	case FieldDateTime:
		return "datetime"
	case FieldPhone:
		return "phone"
	default:
		return "unknown"
	}
}

// Numeric reports whether focusing the class selects the symbols table.
func (c FieldClass) Numeric() bool {
	return c == FieldNumber || c == FieldDateTime || c == FieldPhone
}
