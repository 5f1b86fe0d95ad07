package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/padkeys/internal/app"
	"github.com/dshills/padkeys/internal/machine"
	"github.com/dshills/padkeys/internal/ui/overlay"
)

type overlayFlags struct {
	sink string
}

func newOverlayCommand(e *env) *cobra.Command {
	var f overlayFlags
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Show the keyboard in a floating window",
		Long: `Open a small always-on-top window that reads the gamepad and types into
the focused application. Press Select and Start together, or Escape while
the window has focus, to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer e.close()
			return runOverlay(cmd, e, f)
		},
	}
	cmd.Flags().StringVar(&f.sink, "sink", "", "text sink: uinput or robotgo (default device.sink)")
	return cmd
}

// runOverlay runs the window on the calling goroutine, which must be the
// main one, and the event loop beside it.
func runOverlay(cmd *cobra.Command, e *env, f overlayFlags) error {
	log, err := e.logger(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	if f.sink != "" {
		e.cfg.Device.Sink = f.sink
	}
	out, err := openSink(e, log)
	if err != nil {
		return err
	}

	var win *overlay.Overlay
	a, err := newApp(e, log, out, func(o *app.Options) {
		o.OnUpdate = func(s machine.Snapshot, c []machine.Command) { win.Publish(s, c) }
	})
	if err != nil {
		return err
	}
	win = overlay.New(a.Post, log)
	win.Publish(a.Snapshot(), nil)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		defer cancel()
		return a.Run(ctx)
	})

	werr := win.Run(ctx)
	cancel()
	aerr := g.Wait()
	if errors.Is(werr, app.ErrQuit) {
		werr = nil
	}
	return errors.Join(werr, aerr)
}
