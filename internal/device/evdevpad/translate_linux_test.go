//go:build linux

package evdevpad

import (
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/machine"
)

func testInfos() map[evdev.EvCode]evdev.AbsInfo {
	full := evdev.AbsInfo{Minimum: -32768, Maximum: 32767, Flat: 4000}
	return map[evdev.EvCode]evdev.AbsInfo{
		evdev.ABS_X:     full,
		evdev.ABS_Y:     full,
		evdev.ABS_RX:    full,
		evdev.ABS_RY:    full,
		evdev.ABS_HAT0X: {Minimum: -1, Maximum: 1},
		evdev.ABS_HAT0Y: {Minimum: -1, Maximum: 1},
	}
}

type recorder struct {
	events []machine.Event
}

func (r *recorder) post(ev machine.Event) {
	r.events = append(r.events, ev)
}

func send(t *translator, r *recorder, typ evdev.EvType, code evdev.EvCode, value int32) {
	t.handle(&evdev.InputEvent{Type: typ, Code: code, Value: value}, r.post)
}

func TestTranslatorButtons(t *testing.T) {
	tr := newTranslator(testInfos(), false)
	r := &recorder{}

	send(tr, r, evdev.EV_KEY, evdev.BTN_SOUTH, 1)
	send(tr, r, evdev.EV_KEY, evdev.BTN_SOUTH, 2)
	send(tr, r, evdev.EV_KEY, evdev.BTN_SOUTH, 0)
	send(tr, r, evdev.EV_KEY, evdev.BTN_NORTH, 1)
	send(tr, r, evdev.EV_KEY, evdev.BTN_MODE, 1)

	assert.Equal(t, []machine.Event{
		machine.ButtonDown{Button: button.A},
		machine.ButtonUp{Button: button.A},
		machine.ButtonDown{Button: button.Y},
	}, r.events)
}

func TestTranslatorSticksPostOnSync(t *testing.T) {
	tr := newTranslator(testInfos(), false)
	r := &recorder{}

	send(tr, r, evdev.EV_ABS, evdev.ABS_X, 0)
	send(tr, r, evdev.EV_ABS, evdev.ABS_Y, 32767)
	assert.Empty(t, r.events, "samples wait for SYN_REPORT")

	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)
	require.Len(t, r.events, 1)
	ev, ok := r.events[0].(machine.PrimaryStick)
	require.True(t, ok)
	assert.Equal(t, stick.South, stick.ClassifyPrimary(ev.X, ev.Y), "evdev +Y is down")

	send(tr, r, evdev.EV_ABS, evdev.ABS_RX, 32767)
	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)
	require.Len(t, r.events, 2)
	sec, ok := r.events[1].(machine.SecondaryStick)
	require.True(t, ok)
	assert.Equal(t, stick.East, stick.ClassifyRight(sec.X, sec.Y))

	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)
	assert.Len(t, r.events, 2, "clean frame posts nothing")
}

func TestTranslatorFlatRange(t *testing.T) {
	tr := newTranslator(testInfos(), false)
	r := &recorder{}

	send(tr, r, evdev.EV_ABS, evdev.ABS_X, 3000)
	send(tr, r, evdev.EV_ABS, evdev.ABS_Y, -2000)
	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)

	require.Len(t, r.events, 1)
	ev := r.events[0].(machine.PrimaryStick)
	assert.Equal(t, stick.Center, stick.ClassifyPrimary(ev.X, ev.Y))
}

func TestTranslatorFlatBoundary(t *testing.T) {
	tr := newTranslator(testInfos(), false)
	r := &recorder{}

	// The axis midpoint is -1, so 3999 sits exactly on the flat edge.
	send(tr, r, evdev.EV_ABS, evdev.ABS_X, 3999)
	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)
	send(tr, r, evdev.EV_ABS, evdev.ABS_X, 4000)
	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)

	require.Len(t, r.events, 2)
	assert.Equal(t, machine.PrimaryStick{X: 0, Y: 0}, r.events[0])
	ev := r.events[1].(machine.PrimaryStick)
	assert.Greater(t, ev.X, 0.0)
}

func TestAxisRangeOffCenter(t *testing.T) {
	r := axisRange{min: 0, max: 255, flat: 15}
	assert.InDelta(t, 0, r.scale(130), 0.01, "within flat of the midpoint")
	assert.InDelta(t, 1, r.scale(255), 0.001)
	assert.InDelta(t, -1, r.scale(0), 0.001)
}

func TestTranslatorHatButtons(t *testing.T) {
	tr := newTranslator(testInfos(), false)
	r := &recorder{}

	send(tr, r, evdev.EV_ABS, evdev.ABS_HAT0Y, 1)
	send(tr, r, evdev.EV_ABS, evdev.ABS_HAT0Y, -1)
	send(tr, r, evdev.EV_ABS, evdev.ABS_HAT0Y, 0)
	send(tr, r, evdev.EV_ABS, evdev.ABS_HAT0X, 1)

	assert.Equal(t, []machine.Event{
		machine.ButtonDown{Button: button.HatDown},
		machine.ButtonUp{Button: button.HatDown},
		machine.ButtonDown{Button: button.HatUp},
		machine.ButtonUp{Button: button.HatUp},
		machine.ButtonDown{Button: button.HatRight},
	}, r.events)
}

func TestTranslatorDpadStick(t *testing.T) {
	tr := newTranslator(testInfos(), true)
	r := &recorder{}

	send(tr, r, evdev.EV_ABS, evdev.ABS_HAT0Y, -1)
	send(tr, r, evdev.EV_ABS, evdev.ABS_HAT0X, 1)
	send(tr, r, evdev.EV_SYN, evdev.SYN_REPORT, 0)

	assert.Equal(t, []machine.Event{
		machine.PrimaryStick{X: 0, Y: 1},
		machine.PrimaryStick{X: stick.DiagonalScale, Y: stick.DiagonalScale},
	}, r.events)
	assert.Equal(t, stick.NorthEast, stick.ClassifyPrimary(stick.DiagonalScale, stick.DiagonalScale))
}
