package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/machine"
)

// Help lists the keyboard controls.
const Help = "arrows stick  shift+arrows nav  space center  a b x y type  " +
	"r space  l erase  1 enter  2 shift  [ ] language  - symbols  F1/F2/F3 text/number/blur  esc quit"

// runeButtons are keys that tap a button.
var runeButtons = map[rune]button.Button{
	'a': button.A,
	'b': button.B,
	'x': button.X,
	'y': button.Y,
	'r': button.R1,
	'l': button.L1,
	'1': button.R2,
	'[': button.HatLeft,
	']': button.HatRight,
	'-': button.HatDown,
	'=': button.HatUp,
	's': button.Start,
}

// upperFace types a shifted character with L2 held around the tap.
var upperFace = map[rune]button.Button{
	'A': button.A,
	'B': button.B,
	'X': button.X,
	'Y': button.Y,
}

// emulator maps terminal keys to gamepad events. Terminals report presses
// only, so the primary stick keeps its arms until space recenters it and
// the trigger on '2' toggles between held and released.
type emulator struct {
	up, down, left, right bool
	l2Held                bool
}

func tap(b button.Button) []machine.Event {
	return []machine.Event{machine.ButtonDown{Button: b}, machine.ButtonUp{Button: b}}
}

func (e *emulator) primary() machine.Event {
	x, y := stick.FromDpad(e.up, e.down, e.left, e.right)
	return machine.PrimaryStick{X: x, Y: y}
}

// arm holds one D-pad arm and releases its opposite.
func (e *emulator) arm(k tcell.Key) machine.Event {
	switch k {
	case tcell.KeyUp:
		e.up, e.down = true, false
	case tcell.KeyDown:
		e.up, e.down = false, true
	case tcell.KeyLeft:
		e.left, e.right = true, false
	case tcell.KeyRight:
		e.left, e.right = false, true
	}
	return e.primary()
}

func secondarySample(k tcell.Key) machine.Event {
	switch k {
	case tcell.KeyUp:
		return machine.SecondaryStick{X: 0, Y: 1}
	case tcell.KeyDown:
		return machine.SecondaryStick{X: 0, Y: -1}
	case tcell.KeyLeft:
		return machine.SecondaryStick{X: -1, Y: 0}
	default:
		return machine.SecondaryStick{X: 1, Y: 0}
	}
}

// translate returns the events for one key press. quit is set for the keys
// that end the session.
func (e *emulator) translate(ev *tcell.EventKey) (events []machine.Event, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return nil, true
	case tcell.KeyUp, tcell.KeyDown, tcell.KeyLeft, tcell.KeyRight:
		if ev.Modifiers()&tcell.ModShift != 0 {
			return []machine.Event{secondarySample(ev.Key())}, false
		}
		return []machine.Event{e.arm(ev.Key())}, false
	case tcell.KeyEnter:
		return tap(button.R2), false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return tap(button.L1), false
	case tcell.KeyF1:
		return []machine.Event{machine.FieldFocus{Class: machine.FieldText}}, false
	case tcell.KeyF2:
		return []machine.Event{machine.FieldFocus{Class: machine.FieldNumber}}, false
	case tcell.KeyF3:
		return []machine.Event{machine.FieldBlur{}}, false
	case tcell.KeyRune:
		return e.rune(ev.Rune()), false
	}
	return nil, false
}

func (e *emulator) rune(r rune) []machine.Event {
	if b, ok := runeButtons[r]; ok {
		return tap(b)
	}
	if b, ok := upperFace[r]; ok {
		out := []machine.Event{machine.ButtonDown{Button: button.L2}}
		out = append(out, tap(b)...)
		if !e.l2Held {
			out = append(out, machine.ButtonUp{Button: button.L2})
		}
		return out
	}
	switch r {
	case ' ':
		e.up, e.down, e.left, e.right = false, false, false, false
		return []machine.Event{e.primary(), machine.SecondaryStick{}}
	case '2':
		e.l2Held = !e.l2Held
		if e.l2Held {
			return []machine.Event{machine.ButtonDown{Button: button.L2}}
		}
		return []machine.Event{machine.ButtonUp{Button: button.L2}}
	}
	return nil
}
