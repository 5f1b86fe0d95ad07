// Package app runs the padkeys event loop. It owns the state machine and
// feeds it from gamepad sources, repeat timers and keymap reloads, then
// delivers the resulting commands to the text sink.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/padkeys/internal/config"
	"github.com/dshills/padkeys/internal/feedback"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/logging"
	"github.com/dshills/padkeys/internal/machine"
	"github.com/dshills/padkeys/internal/repeat"
	"github.com/dshills/padkeys/internal/sink"
)

// DefaultQueueSize is the event queue capacity.
const DefaultQueueSize = 256

// Source produces machine events until ctx is done. ctx carries a logger for
// logging.FromContext. Returning ErrQuit ends the application normally.
type Source interface {
	Run(ctx context.Context, post func(machine.Event)) error
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, post func(machine.Event)) error

// Run implements Source.
func (f SourceFunc) Run(ctx context.Context, post func(machine.Event)) error {
	return f(ctx, post)
}

// Options configures the application.
type Options struct {
	// Languages and Symbols name the keymaps to assemble from Registry.
	Languages []string
	Symbols   string
	Registry  *keymap.Registry

	Bindings       machine.Bindings
	RepeatInterval time.Duration

	// Sink receives typed text. Nil discards it.
	Sink sink.Sink
	// Clicker plays feedback for typed output. Nil is silent.
	Clicker feedback.Clicker
	// Sources feed the event queue. Each runs on its own goroutine.
	Sources []Source

	// InitialField is focused when Run starts. FieldNone leaves the machine
	// suspended until a source posts a FieldFocus.
	InitialField machine.FieldClass

	// WatchKeymaps reloads keymaps when the registry directory changes.
	WatchKeymaps bool
	WatchDelay   time.Duration

	// OnUpdate is called on the loop goroutine after every handled event.
	OnUpdate func(machine.Snapshot, []machine.Command)

	// Scheduler overrides the timer-based repeat scheduler. It must deliver
	// ticks through Post.
	Scheduler repeat.Scheduler

	QueueSize int
	Logger    zerolog.Logger
}

// OptionsFromConfig fills the keyboard settings of Options from cfg.
func OptionsFromConfig(cfg *config.Config, registry *keymap.Registry) (Options, error) {
	bindings, err := cfg.ParsedBindings()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Languages:      cfg.Keyboard.Languages,
		Symbols:        cfg.Keyboard.Symbols,
		Registry:       registry,
		Bindings:       bindings,
		RepeatInterval: cfg.Keyboard.RepeatInterval.Duration,
		InitialField:   machine.FieldText,
		WatchKeymaps:   true,
	}, nil
}

// Application is the central coordinator. Only the loop goroutine touches
// the machine; everything else posts events.
type Application struct {
	opts    Options
	log     zerolog.Logger
	sink    sink.Sink
	clicker feedback.Clicker

	machine *machine.Machine
	events  chan machine.Event
	done    chan struct{}

	stopTimers context.CancelFunc

	snapshot atomic.Pointer[machine.Snapshot]
	metrics  *Metrics
	running  atomic.Bool
}

// New assembles the keymaps and creates the machine. It fails with
// ErrNoLanguages when no language keymap loads.
func New(opts Options) (*Application, error) {
	if opts.Registry == nil {
		opts.Registry = keymap.NewRegistry("", opts.Logger)
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}

	app := &Application{
		opts:    opts,
		log:     opts.Logger.With().Str("component", "app").Logger(),
		sink:    opts.Sink,
		clicker: opts.Clicker,
		events:  make(chan machine.Event, opts.QueueSize),
		done:    make(chan struct{}),
		metrics: NewMetrics(),
	}
	if app.clicker == nil {
		app.clicker = feedback.Nop{}
	}

	set := opts.Registry.Assemble(opts.Languages, opts.Symbols)
	if len(set.Languages) == 0 {
		return nil, ErrNoLanguages
	}

	sched := opts.Scheduler
	if sched == nil {
		ctx, cancel := context.WithCancel(context.Background())
		app.stopTimers = cancel
		sched = repeat.NewTimerScheduler(ctx, func(t repeat.Tick) {
			app.Post(machine.RepeatTick{Tick: t})
		})
	}

	app.machine = machine.New(set, machine.Options{
		Bindings:       opts.Bindings,
		Scheduler:      sched,
		RepeatInterval: opts.RepeatInterval,
		Logger:         opts.Logger,
	})
	app.publish()

	app.log.Info().
		Strs("languages", set.IDs()).
		Bool("symbols", set.Symbols != nil).
		Msg("Keymaps loaded")
	return app, nil
}

// Post queues ev for the loop. It blocks while the queue is full and drops
// the event once the loop has stopped. Safe for concurrent use.
func (app *Application) Post(ev machine.Event) {
	select {
	case app.events <- ev:
	case <-app.done:
	}
}

// Snapshot returns the state published after the last handled event.
func (app *Application) Snapshot() machine.Snapshot {
	return *app.snapshot.Load()
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Run starts the sources, the keymap watcher and the event loop, and blocks
// until ctx is done, a source returns ErrQuit, or a component fails.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		if app.stopTimers != nil {
			app.stopTimers()
		}
		app.log.Info().Interface("metrics", app.metrics.Snapshot()).Msg("Stopped")
	}()

	// Queued ahead of anything a source posts.
	if app.opts.InitialField != machine.FieldNone {
		app.Post(machine.FieldFocus{Class: app.opts.InitialField})
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		// Posters blocked on a full queue give up once nothing drains it.
		defer close(app.done)
		return app.loop(gctx)
	})

	sctx := logging.WithComponent(logging.WithContext(gctx, app.log), "source")
	for _, src := range app.opts.Sources {
		g.Go(func() error {
			err := src.Run(sctx, app.Post)
			if err != nil && !errors.Is(err, ErrQuit) {
				logging.FromContext(sctx).Error().Err(err).Msg("Source failed")
			}
			return err
		})
	}

	if w := app.newWatcher(); w != nil {
		g.Go(func() error {
			if err := w.Run(gctx, app.reloadKeymaps); err != nil {
				return &ComponentError{Component: "watcher", Err: err}
			}
			return nil
		})
	}

	err := g.Wait()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// loop is the only goroutine that calls the machine.
func (app *Application) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-app.events:
			app.handle(ev)
		}
	}
}

func (app *Application) handle(ev machine.Event) {
	start := time.Now()
	cmds, handled := app.machine.Handle(ev)
	app.metrics.RecordEvent(time.Since(start), handled)

	if !handled {
		app.log.Trace().Type("event", ev).Msg("Event not handled")
	}

	if len(cmds) > 0 {
		app.deliver(cmds)
	}

	snap := app.publish()
	if app.opts.OnUpdate != nil {
		app.opts.OnUpdate(snap, cmds)
	}
}

func (app *Application) deliver(cmds []machine.Command) {
	var commits, keys int
	for _, c := range cmds {
		switch c.(type) {
		case machine.CommitText:
			commits++
		case machine.KeyDown:
			keys++
		}
	}
	app.metrics.RecordOutput(commits, keys)

	if app.sink != nil {
		if err := sink.Apply(app.sink, cmds); err != nil {
			app.metrics.RecordSinkError()
			app.log.Warn().Err(err).Msg("Sink delivery failed")
		}
	}
	if feedback.ShouldClick(cmds) {
		app.clicker.Click()
	}
}

func (app *Application) publish() machine.Snapshot {
	snap := app.machine.Snapshot()
	app.snapshot.Store(&snap)
	return snap
}
