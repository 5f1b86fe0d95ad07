// Package button names the discrete gamepad controls the keyboard reacts to.
package button

import (
	"fmt"
	"strings"
)

// Button identifies a discrete gamepad control.
type Button uint8

const (
	// None represents no button.
	None Button = iota

	// Face buttons
	A
	B
	X
	Y

	// Shoulders and triggers
	L1
	R1
	L2
	R2

	// Hat (D-pad reported as buttons)
	HatUp
	HatDown
	HatLeft
	HatRight

	Start
	Select
)

var buttonNames = [...]string{
	None:     "none",
	A:        "a",
	B:        "b",
	X:        "x",
	Y:        "y",
	L1:       "l1",
	R1:       "r1",
	L2:       "l2",
	R2:       "r2",
	HatUp:    "hat_up",
	HatDown:  "hat_down",
	HatLeft:  "hat_left",
	HatRight: "hat_right",
	Start:    "start",
	Select:   "select",
}

// String returns the configuration name of the button.
func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return fmt.Sprintf("button(%d)", b)
}

// IsFace returns true for A, B, X and Y.
func (b Button) IsFace() bool {
	return b >= A && b <= Y
}

// IsHat returns true for the four hat directions.
func (b Button) IsHat() bool {
	return b >= HatUp && b <= HatRight
}

// aliases accepted by Parse in addition to the canonical names.
var aliases = map[string]Button{
	"south":      A,
	"east":       B,
	"west":       X,
	"north":      Y,
	"lb":         L1,
	"rb":         R1,
	"lt":         L2,
	"rt":         R2,
	"dpad_up":    HatUp,
	"dpad_down":  HatDown,
	"dpad_left":  HatLeft,
	"dpad_right": HatRight,
	"back":       Select,
}

// Parse returns the button for a name (case-insensitive).
func Parse(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "-", "_")
	for i, n := range buttonNames {
		if Button(i) != None && n == name {
			return Button(i), nil
		}
	}
	if b, ok := aliases[name]; ok {
		return b, nil
	}
	return None, fmt.Errorf("unknown button %q", name)
}

// All returns every real button in declaration order.
func All() []Button {
	out := make([]Button, 0, len(buttonNames)-1)
	for i := range buttonNames {
		if Button(i) != None {
			out = append(out, Button(i))
		}
	}
	return out
}
