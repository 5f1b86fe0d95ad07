// Package overlay is the floating front end: a small undecorated window
// that stays above other windows, reads the gamepad through ebiten and
// draws the keyboard grid.
package overlay

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/app"
	"github.com/dshills/padkeys/internal/machine"
)

// Overlay implements ebiten.Game. Gamepad input is posted to the app;
// Publish feeds back the state to draw.
type Overlay struct {
	post    func(machine.Event)
	snap    atomic.Pointer[machine.Snapshot]
	tracker *tracker

	gamepad   ebiten.GamepadID
	connected bool
	ids       []ebiten.GamepadID

	ctx  context.Context
	quit bool
	log  zerolog.Logger
}

// New creates an overlay that posts gamepad events with post.
func New(post func(machine.Event), logger zerolog.Logger) *Overlay {
	return &Overlay{
		post:    post,
		tracker: newTracker(),
		ctx:     context.Background(),
		log:     logger.With().Str("component", "overlay").Logger(),
	}
}

// Publish stores the state to draw on the next frame. Safe for concurrent
// use.
func (o *Overlay) Publish(snap machine.Snapshot, _ []machine.Command) {
	o.snap.Store(&snap)
}

// Run opens the window and blocks until ctx is done or the user quits,
// which returns app.ErrQuit. It must be called from the main goroutine.
func (o *Overlay) Run(ctx context.Context) error {
	o.ctx = ctx

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("padkeys")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)
	ebiten.SetWindowMousePassthrough(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetTPS(60)

	err := ebiten.RunGameWithOptions(o, &ebiten.RunGameOptions{
		ScreenTransparent: true,
	})
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return &app.ComponentError{Component: "overlay", Err: err}
	}
	if o.quit {
		return app.ErrQuit
	}
	return nil
}

// Update implements ebiten.Game.
func (o *Overlay) Update() error {
	if o.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		o.quit = true
		return ebiten.Termination
	}

	for _, id := range inpututil.AppendJustConnectedGamepadIDs(nil) {
		o.log.Info().Int("id", int(id)).Str("name", ebiten.GamepadName(id)).Msg("Gamepad connected")
	}
	if o.connected && inpututil.IsGamepadJustDisconnected(o.gamepad) {
		o.log.Info().Int("id", int(o.gamepad)).Msg("Gamepad disconnected")
		o.tracker.release(o.post)
		o.connected = false
	}
	if !o.connected {
		o.pickGamepad()
		if !o.connected {
			return nil
		}
	}

	p := ebitenPad(o.gamepad)
	if p.pressed(ebiten.StandardGamepadButtonCenterLeft) && p.pressed(ebiten.StandardGamepadButtonCenterRight) {
		o.quit = true
		return ebiten.Termination
	}
	o.tracker.poll(p, o.post)
	return nil
}

// pickGamepad selects the first gamepad with a standard layout mapping.
func (o *Overlay) pickGamepad() {
	o.ids = ebiten.AppendGamepadIDs(o.ids[:0])
	for _, id := range o.ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			o.gamepad = id
			o.connected = true
			o.log.Debug().Int("id", int(id)).Msg("Using gamepad")
			return
		}
	}
}

// Draw implements ebiten.Game.
func (o *Overlay) Draw(screen *ebiten.Image) {
	render(screen, o.snap.Load(), o.connected)
}

// Layout implements ebiten.Game.
func (o *Overlay) Layout(int, int) (int, int) {
	return windowWidth, windowHeight
}
