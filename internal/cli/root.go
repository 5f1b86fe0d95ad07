// Package cli provides the padkeys cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/padkeys/internal/config"
	"github.com/dshills/padkeys/internal/logging"
)

// Info is the build information set by main.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// env is the state shared by the commands of one invocation.
type env struct {
	info       Info
	configPath string
	logLevel   string

	cfg     *config.Config
	cleanup []func()
}

func (e *env) onClose(f func()) {
	e.cleanup = append(e.cleanup, f)
}

func (e *env) close() {
	for i := len(e.cleanup) - 1; i >= 0; i-- {
		e.cleanup[i]()
	}
	e.cleanup = nil
}

// logger builds the logger for a command. Front ends that own the terminal
// pass toFile so logs go to logging.file or padkeys.log in the config
// directory.
func (e *env) logger(w io.Writer, toFile bool) (zerolog.Logger, error) {
	lc := logging.DefaultConfig()
	level, err := logging.ParseLevel(e.cfg.Logging.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	lc.Level = level
	lc.Format = e.cfg.Logging.Format
	lc.Output = w

	path := e.cfg.Logging.File
	if toFile && path == "" {
		path = filepath.Join(config.Dir(), "padkeys.log")
	}
	log, cleanup, err := logging.NewWithFile(lc, path)
	if err != nil {
		return zerolog.Nop(), err
	}
	e.onClose(cleanup)
	return log, nil
}

// skipConfig lists commands that run without loading the configuration.
var skipConfig = map[string]bool{
	"help":       true,
	"completion": true,
	"version":    true,
}

// NewRootCommand builds the command tree.
func NewRootCommand(info Info) *cobra.Command {
	e := &env{info: info}

	root := &cobra.Command{
		Use:   "padkeys",
		Short: "Type with a gamepad",
		Long: `padkeys - a gamepad-driven virtual keyboard.

The left stick picks one of nine character groups and the face buttons type
a character from the group. Shoulder buttons add space, erase and enter, the
right stick repeats arrow keys and the D-pad cycles languages and symbols.

Without a subcommand padkeys opens the floating overlay when
keyboard.floating is set and the terminal view otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig[cmd.Name()] {
				return nil
			}
			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			if e.logLevel != "" {
				cfg.Logging.Level = e.logLevel
			}
			e.cfg = cfg
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			e.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer e.close()
			if e.cfg.Keyboard.Floating {
				return runOverlay(cmd, e, overlayFlags{})
			}
			return runTerm(cmd, e, termFlags{})
		},
	}

	root.PersistentFlags().StringVarP(&e.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/padkeys/config.toml)")
	root.PersistentFlags().StringVar(&e.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newRunCommand(e),
		newTermCommand(e),
		newOverlayCommand(e),
		newKeymapCommand(e),
		newDevicesCommand(e),
		newConfigCommand(e),
		newVersionCommand(e),
	)
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute(info Info) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand(info).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		return 1
	}
	return 0
}
