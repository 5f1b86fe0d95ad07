// Package watcher reports changes to a directory of configuration files.
//
// Events are debounced: a burst of changes (an editor writing a temp file
// and renaming it over the original, say) is delivered as one batch once the
// directory has been quiet for the debounce delay.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Common errors.
var (
	ErrPathNotExist = errors.New("path does not exist")
	ErrNotDirectory = errors.New("path is not a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// String returns the name of a single operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "multiple"
	}
}

// Has returns true if op includes o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// Event is a coalesced change to one file.
type Event struct {
	Path      string
	Op        Op
	Timestamp time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDelay sets the debounce delay.
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithExtension only reports files with the given extension, e.g. ".xml".
func WithExtension(ext string) Option {
	return func(w *Watcher) {
		w.ext = ext
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(w *Watcher) {
		w.log = l.With().Str("component", "watcher").Logger()
	}
}

// Watcher watches a single directory.
type Watcher struct {
	fsw   *fsnotify.Watcher
	dir   string
	delay time.Duration
	ext   string
	log   zerolog.Logger
}

// New starts watching dir. The directory must exist.
func New(dir string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPathNotExist
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, ErrNotDirectory
	}

	w := &Watcher{
		dir:   abs,
		delay: 250 * time.Millisecond,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw
	return w, nil
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run delivers batches of changes to onChange until ctx is done, then closes
// the watcher. onChange runs on Run's goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func([]Event)) error {
	defer w.fsw.Close()

	pending := make(map[string]*Event)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case fe, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			op := convertOp(fe.Op)
			if op == 0 || !w.relevant(fe.Name) {
				continue
			}
			if p, exists := pending[fe.Name]; exists {
				p.Op |= op
				p.Timestamp = time.Now()
			} else {
				pending[fe.Name] = &Event{Path: fe.Name, Op: op, Timestamp: time.Now()}
			}
			timer.Reset(w.delay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn().Err(err).Msg("Watch error")

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]Event, 0, len(pending))
			for _, e := range pending {
				batch = append(batch, *e)
			}
			sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })
			clear(pending)
			w.log.Debug().Int("files", len(batch)).Msg("Directory changed")
			onChange(batch)
		}
	}
}

func (w *Watcher) relevant(path string) bool {
	base := filepath.Base(path)
	if base == "" || base[0] == '.' {
		return false
	}
	return w.ext == "" || filepath.Ext(base) == w.ext
}

// convertOp converts fsnotify.Op to watcher.Op. Chmod is ignored.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
