//go:build linux

package evdevpad

import (
	evdev "github.com/holoplot/go-evdev"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/machine"
)

// buttonCodes maps gamepad key codes to buttons by position, so a pad that
// labels its west button "Y" still types column X.
var buttonCodes = map[evdev.EvCode]button.Button{
	evdev.BTN_SOUTH:      button.A,
	evdev.BTN_EAST:       button.B,
	evdev.BTN_WEST:       button.X,
	evdev.BTN_NORTH:      button.Y,
	evdev.BTN_TL:         button.L1,
	evdev.BTN_TR:         button.R1,
	evdev.BTN_TL2:        button.L2,
	evdev.BTN_TR2:        button.R2,
	evdev.BTN_START:      button.Start,
	evdev.BTN_SELECT:     button.Select,
	evdev.BTN_DPAD_UP:    button.HatUp,
	evdev.BTN_DPAD_DOWN:  button.HatDown,
	evdev.BTN_DPAD_LEFT:  button.HatLeft,
	evdev.BTN_DPAD_RIGHT: button.HatRight,
}

type axisRange struct {
	min, max, flat int32
}

func (r axisRange) scale(raw int32) float64 {
	mid := r.min + (r.max-r.min)/2
	if stick.Flat(raw-mid, r.flat) == 0 {
		return 0
	}
	return stick.Normalize(raw, r.min, r.max)
}

// translator turns raw evdev events into machine events. Stick samples are
// posted once per SYN_REPORT frame.
type translator struct {
	ranges    map[evdev.EvCode]axisRange
	raw       map[evdev.EvCode]int32
	dpadStick bool

	primaryDirty   bool
	secondaryDirty bool
	hatX, hatY     int32
}

func newTranslator(infos map[evdev.EvCode]evdev.AbsInfo, dpadStick bool) *translator {
	t := &translator{
		ranges:    make(map[evdev.EvCode]axisRange, len(infos)),
		raw:       make(map[evdev.EvCode]int32, len(infos)),
		dpadStick: dpadStick,
	}
	for code, info := range infos {
		t.ranges[code] = axisRange{min: info.Minimum, max: info.Maximum, flat: info.Flat}
		t.raw[code] = info.Value
	}
	return t
}

func (t *translator) axis(code evdev.EvCode) float64 {
	r, ok := t.ranges[code]
	if !ok {
		return 0
	}
	return r.scale(t.raw[code])
}

func (t *translator) handle(ev *evdev.InputEvent, post func(machine.Event)) {
	switch ev.Type {
	case evdev.EV_KEY:
		b, ok := buttonCodes[ev.Code]
		if !ok {
			return
		}
		switch ev.Value {
		case 1:
			post(machine.ButtonDown{Button: b})
		case 0:
			post(machine.ButtonUp{Button: b})
		}

	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_X, evdev.ABS_Y:
			t.raw[ev.Code] = ev.Value
			t.primaryDirty = true
		case evdev.ABS_RX, evdev.ABS_RY:
			t.raw[ev.Code] = ev.Value
			t.secondaryDirty = true
		case evdev.ABS_HAT0X:
			t.hatX = t.hat(t.hatX, ev.Value, button.HatLeft, button.HatRight, post)
		case evdev.ABS_HAT0Y:
			t.hatY = t.hat(t.hatY, ev.Value, button.HatUp, button.HatDown, post)
		}

	case evdev.EV_SYN:
		if ev.Code != evdev.SYN_REPORT {
			return
		}
		if t.primaryDirty {
			t.primaryDirty = false
			post(machine.PrimaryStick{X: t.axis(evdev.ABS_X), Y: -t.axis(evdev.ABS_Y)})
		}
		if t.secondaryDirty {
			t.secondaryDirty = false
			post(machine.SecondaryStick{X: t.axis(evdev.ABS_RX), Y: -t.axis(evdev.ABS_RY)})
		}
	}
}

// hat converts a hat axis change into button edges, negative first. In D-pad
// stick mode it marks the primary stick dirty instead.
func (t *translator) hat(prev, next int32, neg, pos button.Button, post func(machine.Event)) int32 {
	next = sign(next)
	if next == prev {
		return prev
	}
	if t.dpadStick {
		hx, hy := t.hatX, t.hatY
		if neg == button.HatLeft {
			hx = next
		} else {
			hy = next
		}
		x, y := stick.FromDpad(hy < 0, hy > 0, hx < 0, hx > 0)
		post(machine.PrimaryStick{X: x, Y: y})
		return next
	}
	switch prev {
	case -1:
		post(machine.ButtonUp{Button: neg})
	case 1:
		post(machine.ButtonUp{Button: pos})
	}
	switch next {
	case -1:
		post(machine.ButtonDown{Button: neg})
	case 1:
		post(machine.ButtonDown{Button: pos})
	}
	return next
}

func sign(v int32) int32 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
