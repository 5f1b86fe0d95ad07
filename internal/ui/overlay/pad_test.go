package overlay

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/machine"
)

type fakePad struct {
	axes    map[ebiten.StandardGamepadAxis]float64
	buttons map[ebiten.StandardGamepadButton]bool
}

func newFakePad() *fakePad {
	return &fakePad{
		axes:    make(map[ebiten.StandardGamepadAxis]float64),
		buttons: make(map[ebiten.StandardGamepadButton]bool),
	}
}

func (p *fakePad) axis(a ebiten.StandardGamepadAxis) float64     { return p.axes[a] }
func (p *fakePad) pressed(b ebiten.StandardGamepadButton) bool   { return p.buttons[b] }
func (p *fakePad) set(b ebiten.StandardGamepadButton, down bool) { p.buttons[b] = down }
func (p *fakePad) stick(h, v ebiten.StandardGamepadAxis, x, y float64) {
	p.axes[h], p.axes[v] = x, y
}

type recorder []machine.Event

func (r *recorder) post(ev machine.Event) { *r = append(*r, ev) }

func TestTrackerButtonEdges(t *testing.T) {
	p := newFakePad()
	tr := newTracker()
	var got recorder

	p.set(ebiten.StandardGamepadButtonRightBottom, true)
	tr.poll(p, got.post)
	tr.poll(p, got.post)
	p.set(ebiten.StandardGamepadButtonRightBottom, false)
	p.set(ebiten.StandardGamepadButtonFrontBottomLeft, true)
	tr.poll(p, got.post)

	assert.Equal(t, recorder{
		machine.ButtonDown{Button: button.A},
		machine.ButtonUp{Button: button.A},
		machine.ButtonDown{Button: button.L2},
	}, got)
}

func TestTrackerStickFlipsY(t *testing.T) {
	p := newFakePad()
	tr := newTracker()
	var got recorder

	// Standard layout reports down as positive.
	p.stick(ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical, 0, 1)
	tr.poll(p, got.post)
	tr.poll(p, got.post)

	assert.Len(t, got, 1, "unchanged samples are not reposted")
	ev := got[0].(machine.PrimaryStick)
	assert.Equal(t, stick.South, stick.ClassifyPrimary(ev.X, ev.Y))
}

func TestTrackerDeadZone(t *testing.T) {
	p := newFakePad()
	tr := newTracker()
	var got recorder

	p.stick(ebiten.StandardGamepadAxisRightStickHorizontal, ebiten.StandardGamepadAxisRightStickVertical, 0.1, -0.1)
	tr.poll(p, got.post)
	assert.Empty(t, got)

	p.stick(ebiten.StandardGamepadAxisRightStickHorizontal, ebiten.StandardGamepadAxisRightStickVertical, 0.9, 0)
	tr.poll(p, got.post)
	assert.Equal(t, recorder{machine.SecondaryStick{X: 0.9, Y: 0}}, got)
}

func TestTrackerDeadZonePerAxis(t *testing.T) {
	p := newFakePad()
	tr := newTracker()
	var got recorder

	// A small vertical wobble on a hard right push stays east.
	p.stick(ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical, 0.9, -0.2)
	tr.poll(p, got.post)
	require.Len(t, got, 1)
	ev := got[0].(machine.PrimaryStick)
	assert.Equal(t, 0.0, ev.Y)
	assert.Equal(t, stick.East, stick.ClassifyPrimary(ev.X, ev.Y))

	// Each axis past the threshold survives.
	got = nil
	p.stick(ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical, 0.25, -0.3)
	tr.poll(p, got.post)
	assert.Equal(t, recorder{machine.PrimaryStick{X: 0.25, Y: 0.3}}, got)

	// Diagonal samples below the threshold on both axes are centered even
	// when their length is not.
	got = nil
	p.stick(ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical, 0.2, 0.2)
	tr.poll(p, got.post)
	assert.Equal(t, recorder{machine.PrimaryStick{}}, got)
}

func TestTrackerRelease(t *testing.T) {
	p := newFakePad()
	tr := newTracker()
	var got recorder

	p.set(ebiten.StandardGamepadButtonFrontBottomLeft, true)
	p.stick(ebiten.StandardGamepadAxisLeftStickHorizontal, ebiten.StandardGamepadAxisLeftStickVertical, -1, 0)
	tr.poll(p, got.post)
	got = nil

	tr.release(got.post)
	assert.Equal(t, recorder{
		machine.ButtonUp{Button: button.L2},
		machine.PrimaryStick{},
	}, got)

	got = nil
	tr.release(got.post)
	assert.Empty(t, got)
}

func TestLayoutGeometry(t *testing.T) {
	x, y := cellPos(stick.NorthWest)
	assert.Equal(t, margin, x)
	assert.Equal(t, headerH+margin, y)

	x, y = cellPos(stick.SouthEast)
	assert.Equal(t, windowWidth-margin-cellW, x)
	assert.Equal(t, windowHeight-margin-cellH, y)

	cx, cy := cellPos(stick.Center)
	_, ay := glyphPos(cx, cy, 0)
	_, yy := glyphPos(cx, cy, 3)
	assert.Greater(t, ay, yy, "A sits below Y")
}
