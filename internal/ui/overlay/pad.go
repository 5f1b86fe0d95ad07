package overlay

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/machine"
)

// DeadZone is the deflection below which a stick axis reads as centered.
const DeadZone = 0.25

// standardButtons maps the standard gamepad layout to buttons.
var standardButtons = []struct {
	std ebiten.StandardGamepadButton
	btn button.Button
}{
	{ebiten.StandardGamepadButtonRightBottom, button.A},
	{ebiten.StandardGamepadButtonRightRight, button.B},
	{ebiten.StandardGamepadButtonRightLeft, button.X},
	{ebiten.StandardGamepadButtonRightTop, button.Y},
	{ebiten.StandardGamepadButtonFrontTopLeft, button.L1},
	{ebiten.StandardGamepadButtonFrontTopRight, button.R1},
	{ebiten.StandardGamepadButtonFrontBottomLeft, button.L2},
	{ebiten.StandardGamepadButtonFrontBottomRight, button.R2},
	{ebiten.StandardGamepadButtonLeftTop, button.HatUp},
	{ebiten.StandardGamepadButtonLeftBottom, button.HatDown},
	{ebiten.StandardGamepadButtonLeftLeft, button.HatLeft},
	{ebiten.StandardGamepadButtonLeftRight, button.HatRight},
	{ebiten.StandardGamepadButtonCenterRight, button.Start},
	{ebiten.StandardGamepadButtonCenterLeft, button.Select},
}

// pad reads one gamepad in the standard layout.
type pad interface {
	axis(a ebiten.StandardGamepadAxis) float64
	pressed(b ebiten.StandardGamepadButton) bool
}

type ebitenPad ebiten.GamepadID

func (p ebitenPad) axis(a ebiten.StandardGamepadAxis) float64 {
	return ebiten.StandardGamepadAxisValue(ebiten.GamepadID(p), a)
}

func (p ebitenPad) pressed(b ebiten.StandardGamepadButton) bool {
	return ebiten.IsStandardGamepadButtonPressed(ebiten.GamepadID(p), b)
}

type sample struct {
	x, y float64
}

// deadZone zeroes each axis inside DeadZone and flips Y so north is
// positive.
func deadZone(x, y float64) sample {
	return sample{x: axisDeadZone(x), y: -axisDeadZone(y)}
}

func axisDeadZone(v float64) float64 {
	if math.Abs(v) < DeadZone {
		return 0
	}
	return v
}

// tracker turns per-frame gamepad state into edge events. Stick samples
// are posted only when they change.
type tracker struct {
	held      map[button.Button]bool
	primary   sample
	secondary sample
}

func newTracker() *tracker {
	return &tracker{held: make(map[button.Button]bool)}
}

// poll compares p against the previous frame.
func (t *tracker) poll(p pad, post func(machine.Event)) {
	if s := deadZone(
		p.axis(ebiten.StandardGamepadAxisLeftStickHorizontal),
		p.axis(ebiten.StandardGamepadAxisLeftStickVertical),
	); s != t.primary {
		t.primary = s
		post(machine.PrimaryStick{X: s.x, Y: s.y})
	}
	if s := deadZone(
		p.axis(ebiten.StandardGamepadAxisRightStickHorizontal),
		p.axis(ebiten.StandardGamepadAxisRightStickVertical),
	); s != t.secondary {
		t.secondary = s
		post(machine.SecondaryStick{X: s.x, Y: s.y})
	}

	for _, m := range standardButtons {
		down := p.pressed(m.std)
		if down == t.held[m.btn] {
			continue
		}
		t.held[m.btn] = down
		if down {
			post(machine.ButtonDown{Button: m.btn})
		} else {
			post(machine.ButtonUp{Button: m.btn})
		}
	}
}

// release posts ups for held buttons and centers the sticks, for when the
// gamepad disconnects.
func (t *tracker) release(post func(machine.Event)) {
	for _, m := range standardButtons {
		if t.held[m.btn] {
			t.held[m.btn] = false
			post(machine.ButtonUp{Button: m.btn})
		}
	}
	if t.primary != (sample{}) {
		t.primary = sample{}
		post(machine.PrimaryStick{})
	}
	if t.secondary != (sample{}) {
		t.secondary = sample{}
		post(machine.SecondaryStick{})
	}
}
