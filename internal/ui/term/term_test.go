package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/padkeys/internal/app"
	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/machine"
	"github.com/dshills/padkeys/internal/sink"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, scr.Init())
	t.Cleanup(scr.Fini)
	scr.SetSize(80, 30)
	return scr
}

func englishSnapshot(t *testing.T, events ...machine.Event) machine.Snapshot {
	t.Helper()
	set := keymap.NewRegistry("", zerolog.Nop()).Assemble([]string{"english"}, "symbols")
	m := machine.New(set, machine.Options{Logger: zerolog.Nop()})
	for _, ev := range events {
		m.Handle(ev)
	}
	return m.Snapshot()
}

func cell(scr tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := scr.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return r, style
}

func TestDrawHighlightsPrimary(t *testing.T) {
	scr := newScreen(t)
	snap := englishSnapshot(t,
		machine.FieldFocus{Class: machine.FieldText},
		machine.PrimaryStick{X: 0, Y: -1},
	)

	draw(scr, &snap, []string{"hello"})

	x, y := cellOrigin(stick.South)
	r, style := cell(scr, x+diamond[0][0], y+diamond[0][1])
	assert.Equal(t, 'c', r)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "active cell is highlighted")

	x, y = cellOrigin(stick.Center)
	r, style = cell(scr, x+diamond[3][0], y+diamond[3][1])
	assert.Equal(t, 'o', r, "center Y")
	_, _, attrs = style.Decompose()
	assert.Zero(t, attrs&tcell.AttrReverse)

	r, _ = cell(scr, 0, textTop+1)
	assert.Equal(t, 'h', r)
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "padkeys  starting", status(nil))

	snap := englishSnapshot(t)
	assert.Equal(t, "padkeys  English  suspended", status(&snap))

	snap = englishSnapshot(t, machine.FieldFocus{Class: machine.FieldNumber})
	assert.Contains(t, status(&snap), "field number")
}

func TestRunPostsAndQuits(t *testing.T) {
	scr := newScreen(t)
	ui := New(scr, sink.NewBuffer(0), zerolog.Nop())

	var posted []machine.Event
	done := make(chan error, 1)
	go func() {
		done <- ui.Run(context.Background(), func(ev machine.Event) {
			posted = append(posted, ev)
		})
	}()

	scr.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	scr.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, app.ErrQuit)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Equal(t, tap(button.X), posted)
}

func TestRunStopsOnCancel(t *testing.T) {
	scr := newScreen(t)
	ui := New(scr, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ui.Run(ctx, func(machine.Event) {}) }()

	ui.Publish(englishSnapshot(t), nil)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
