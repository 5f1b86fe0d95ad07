// Package term is the docked front end: a terminal view of the keyboard
// grid and the typed text. Keyboard keys stand in for gamepad buttons, so
// it doubles as a way to try keymaps without a controller.
package term

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/app"
	"github.com/dshills/padkeys/internal/machine"
	"github.com/dshills/padkeys/internal/sink"
)

// UI draws the keyboard on a tcell screen and emulates a gamepad from key
// presses. It is an app.Source; pass Publish as the app's OnUpdate.
type UI struct {
	screen tcell.Screen
	text   *sink.Buffer
	emu    emulator
	snap   atomic.Pointer[machine.Snapshot]
	log    zerolog.Logger
}

// New creates a UI on screen. text may be nil when typed output goes
// elsewhere.
func New(screen tcell.Screen, text *sink.Buffer, logger zerolog.Logger) *UI {
	return &UI{
		screen: screen,
		text:   text,
		log:    logger.With().Str("component", "term").Logger(),
	}
}

// Publish stores snap and asks the UI goroutine to redraw. Safe for
// concurrent use.
func (u *UI) Publish(snap machine.Snapshot, _ []machine.Command) {
	u.snap.Store(&snap)
	// A full queue already holds a pending redraw.
	_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (u *UI) lines() []string {
	if u.text == nil {
		return nil
	}
	return u.text.Lines()
}

func (u *UI) redraw() {
	draw(u.screen, u.snap.Load(), u.lines())
}

// stopRun is the interrupt payload that ends Run.
type stopRun struct{}

// Run polls the screen until ctx is done or a quit key is pressed, which
// returns app.ErrQuit. The caller initializes and finalizes the screen.
func (u *UI) Run(ctx context.Context, post func(machine.Event)) error {
	returned := make(chan struct{})
	defer close(returned)
	stop := context.AfterFunc(ctx, func() {
		for u.screen.PostEvent(tcell.NewEventInterrupt(stopRun{})) != nil {
			select {
			case <-returned:
				return
			case <-time.After(10 * time.Millisecond):
			}
		}
	})
	defer stop()

	u.screen.HideCursor()
	u.redraw()

	for {
		switch ev := u.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			u.screen.Sync()
			u.redraw()
		case *tcell.EventInterrupt:
			if _, ok := ev.Data().(stopRun); ok {
				return nil
			}
			u.redraw()
		case *tcell.EventKey:
			events, quit := u.emu.translate(ev)
			if quit {
				u.log.Debug().Msg("Quit key pressed")
				return app.ErrQuit
			}
			for _, e := range events {
				post(e)
			}
		}
	}
}
