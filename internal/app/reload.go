package app

import (
	"errors"

	"github.com/dshills/padkeys/internal/config/watcher"
	"github.com/dshills/padkeys/internal/machine"
)

// newWatcher returns nil when watching is off or the keymap directory does
// not exist.
func (app *Application) newWatcher() *watcher.Watcher {
	dir := app.opts.Registry.Dir()
	if !app.opts.WatchKeymaps || dir == "" {
		return nil
	}
	w, err := watcher.New(dir,
		watcher.WithExtension(".xml"),
		watcher.WithDelay(app.opts.WatchDelay),
		watcher.WithLogger(app.opts.Logger),
	)
	if err != nil {
		if errors.Is(err, watcher.ErrPathNotExist) {
			app.log.Debug().Str("dir", dir).Msg("Keymap directory missing, not watching")
		} else {
			app.log.Warn().Err(err).Str("dir", dir).Msg("Cannot watch keymap directory")
		}
		return nil
	}
	app.log.Debug().Str("dir", w.Dir()).Msg("Watching keymap directory")
	return w
}

// reloadKeymaps runs on the watcher goroutine. The assembled tables reach the
// machine as an event; a reload that leaves no language is ignored.
func (app *Application) reloadKeymaps(changes []watcher.Event) {
	for _, c := range changes {
		app.log.Debug().Str("path", c.Path).Str("op", c.Op.String()).Msg("Keymap changed")
	}

	app.opts.Registry.Invalidate()
	set := app.opts.Registry.Assemble(app.opts.Languages, app.opts.Symbols)
	if len(set.Languages) == 0 {
		app.log.Warn().Msg("Reload produced no language keymap, keeping current tables")
		return
	}
	app.metrics.RecordReload()
	app.log.Info().Strs("languages", set.IDs()).Msg("Keymaps reloaded")
	app.Post(machine.KeymapsReloaded{Set: set})
}
