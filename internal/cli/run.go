package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/padkeys/internal/app"
	"github.com/dshills/padkeys/internal/config"
	"github.com/dshills/padkeys/internal/device/evdevpad"
	"github.com/dshills/padkeys/internal/feedback"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/sink"
	"github.com/dshills/padkeys/internal/sink/robotgosink"
	"github.com/dshills/padkeys/internal/sink/uinputsink"
)

// virtualKeyboardName is the uinput device name.
const virtualKeyboardName = "padkeys virtual keyboard"

type runFlags struct {
	device    string
	sink      string
	dpadStick bool
	grab      bool
}

func newRunCommand(e *env) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Type into the focused application without a window",
		Long: `Read the gamepad through evdev and type into whatever application has
focus, without drawing the keyboard.

Examples:
  padkeys run                              # first gamepad, uinput sink
  padkeys run --device /dev/input/event12
  padkeys run --sink robotgo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer e.close()
			return runHeadless(cmd, e, f)
		},
	}
	cmd.Flags().StringVar(&f.device, "device", "", "evdev device path (default device.path or first gamepad)")
	cmd.Flags().StringVar(&f.sink, "sink", "", "text sink: uinput or robotgo (default device.sink)")
	cmd.Flags().BoolVar(&f.dpadStick, "dpad-stick", false, "use the D-pad as the primary stick")
	cmd.Flags().BoolVar(&f.grab, "grab", false, "take exclusive access to the gamepad")
	return cmd
}

func runHeadless(cmd *cobra.Command, e *env, f runFlags) error {
	log, err := e.logger(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	if f.device != "" {
		e.cfg.Device.Path = f.device
	}
	if f.sink != "" {
		e.cfg.Device.Sink = f.sink
	}

	out, err := openSink(e, log)
	if err != nil {
		return err
	}
	pad, err := e.openGamepad(
		evdevpad.WithDpadStick(f.dpadStick),
		evdevpad.WithGrab(f.grab),
		evdevpad.WithLogger(log),
	)
	if err != nil {
		return err
	}

	a, err := newApp(e, log, out, func(o *app.Options) {
		o.Sources = append(o.Sources, pad)
	})
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}

// gamepad is an open input device.
type gamepad interface {
	app.Source
	io.Closer
}

// openPad opens an evdev pad. Tests replace it.
var openPad = func(path string, opts ...evdevpad.Option) (gamepad, error) {
	p, err := evdevpad.Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// openGamepad opens the configured gamepad and releases it when the command
// finishes.
func (e *env) openGamepad(opts ...evdevpad.Option) (gamepad, error) {
	pad, err := openPad(e.cfg.Device.Path, opts...)
	if err != nil {
		return nil, err
	}
	e.onClose(func() { _ = pad.Close() })
	return pad, nil
}

// newApp builds the application from the loaded configuration. adjust
// may add sources and callbacks.
func newApp(e *env, log zerolog.Logger, out sink.Sink, adjust func(*app.Options)) (*app.Application, error) {
	registry := keymap.NewRegistry(e.cfg.Keyboard.KeymapDir, log)
	opts, err := app.OptionsFromConfig(e.cfg, registry)
	if err != nil {
		return nil, err
	}
	opts.Sink = out
	opts.Clicker = openClicker(e, log)
	opts.Logger = log
	if adjust != nil {
		adjust(&opts)
	}
	return app.New(opts)
}

// openSink creates the configured system sink.
func openSink(e *env, log zerolog.Logger) (sink.Sink, error) {
	switch e.cfg.Device.Sink {
	case config.SinkRobotgo:
		return robotgosink.New(log), nil
	case config.SinkUinput, "":
		s, err := uinputsink.New(virtualKeyboardName, log)
		if err != nil {
			return nil, err
		}
		e.onClose(func() { _ = s.Close() })
		return s, nil
	default:
		return nil, fmt.Errorf("unknown sink %q", e.cfg.Device.Sink)
	}
}

func openClicker(e *env, log zerolog.Logger) feedback.Clicker {
	if !e.cfg.Feedback.Click {
		return feedback.Nop{}
	}
	p, err := feedback.NewPlayer(e.cfg.Feedback.Volume, log)
	if err != nil {
		log.Warn().Err(err).Msg("Key click disabled")
		return feedback.Nop{}
	}
	e.onClose(p.Close)
	return p
}
