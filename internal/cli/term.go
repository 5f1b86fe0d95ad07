package cli

import (
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/padkeys/internal/app"
	"github.com/dshills/padkeys/internal/device/evdevpad"
	"github.com/dshills/padkeys/internal/sink"
	"github.com/dshills/padkeys/internal/ui/term"
)

type termFlags struct {
	gamepad bool
	typeOut bool
}

func newTermCommand(e *env) *cobra.Command {
	var f termFlags
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Show the keyboard in the terminal",
		Long: `Draw the keyboard grid and the typed text in the terminal. Keyboard keys
stand in for gamepad buttons:

  ` + term.Help + `

Logs go to logging.file, or padkeys.log in the config directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer e.close()
			return runTerm(cmd, e, f)
		},
	}
	cmd.Flags().BoolVar(&f.gamepad, "gamepad", false, "also read the evdev gamepad")
	cmd.Flags().BoolVar(&f.typeOut, "type", false, "also type into the focused application through device.sink")
	return cmd
}

func runTerm(cmd *cobra.Command, e *env, f termFlags) error {
	log, err := e.logger(cmd.ErrOrStderr(), true)
	if err != nil {
		return err
	}

	buf := sink.NewBuffer(4096)
	var out sink.Sink = buf
	if f.typeOut {
		sys, err := openSink(e, log)
		if err != nil {
			return err
		}
		out = sink.Multi{buf, sys}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ui := term.New(screen, buf, log)
	sources := []app.Source{ui}
	if f.gamepad {
		pad, err := e.openGamepad(evdevpad.WithLogger(log))
		if err != nil {
			return err
		}
		sources = append(sources, pad)
	}

	a, err := newApp(e, log, out, func(o *app.Options) {
		o.Sources = append(o.Sources, sources...)
		o.OnUpdate = ui.Publish
	})
	if err != nil {
		return err
	}
	return a.Run(cmd.Context())
}
