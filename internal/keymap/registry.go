package keymap

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

//go:embed layouts/*.xml
var builtinFS embed.FS

const fileExt = ".xml"

// Origin tells where a keymap was found.
type Origin string

const (
	OriginUser    Origin = "user"
	OriginBuiltin Origin = "builtin"
)

// Source describes an available keymap.
type Source struct {
	ID     string
	Origin Origin
	Path   string
}

// Set is the group of tables the state machine types from.
type Set struct {
	Languages []*Table
	Symbols   *Table
}

// IDs returns the ids of the language tables in order.
func (s Set) IDs() []string {
	ids := make([]string, len(s.Languages))
	for i, t := range s.Languages {
		ids[i] = t.ID()
	}
	return ids
}

// Registry resolves keymap ids to tables. User keymaps shadow the built-in
// layouts with the same id.
type Registry struct {
	mu sync.RWMutex

	// dir is the user keymap directory. Empty disables user keymaps.
	dir string

	// tables caches loaded tables by id.
	tables map[string]*Table

	log zerolog.Logger
}

// NewRegistry creates a registry reading user keymaps from dir.
func NewRegistry(dir string, logger zerolog.Logger) *Registry {
	return &Registry{
		dir:    dir,
		tables: make(map[string]*Table),
		log:    logger.With().Str("component", "keymap").Logger(),
	}
}

// Dir returns the user keymap directory.
func (r *Registry) Dir() string {
	return r.dir
}

func validID(id string) bool {
	return id != "" && !strings.ContainsAny(id, `/\`) && id != "." && id != ".."
}

// Get returns the table for id, loading it on first use.
func (r *Registry) Get(id string) (*Table, error) {
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	r.mu.RLock()
	t, ok := r.tables[id]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := r.load(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.tables[id] = t
	r.mu.Unlock()
	return t, nil
}

func (r *Registry) load(id string) (*Table, error) {
	if r.dir != "" {
		p := filepath.Join(r.dir, id+fileExt)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p, r.log)
		}
	}

	f, err := builtinFS.Open(path.Join("layouts", id+fileExt))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()
	return Load(f, id, r.log)
}

// Invalidate drops every cached table so the next Get reloads from disk.
func (r *Registry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tables = make(map[string]*Table)
}

// Assemble loads the configured languages and the symbols table. Tables that
// fail to load are logged and left out.
func (r *Registry) Assemble(languages []string, symbols string) Set {
	var set Set
	for _, id := range languages {
		t, err := r.Get(id)
		if err != nil {
			r.log.Warn().Err(err).Str("keymap", id).Msg("Language keymap unavailable")
			continue
		}
		set.Languages = append(set.Languages, t)
	}
	if symbols != "" {
		t, err := r.Get(symbols)
		if err != nil {
			r.log.Warn().Err(err).Str("keymap", symbols).Msg("Symbols keymap unavailable")
		} else {
			set.Symbols = t
		}
	}
	return set
}

// Available lists every keymap id, sorted. User keymaps replace built-in
// entries with the same id.
func (r *Registry) Available() ([]Source, error) {
	byID := make(map[string]Source)

	entries, err := fs.ReadDir(builtinFS, "layouts")
	if err != nil {
		return nil, fmt.Errorf("reading built-in layouts: %w", err)
	}
	for _, e := range entries {
		if id, ok := strings.CutSuffix(e.Name(), fileExt); ok {
			byID[id] = Source{ID: id, Origin: OriginBuiltin, Path: path.Join("layouts", e.Name())}
		}
	}

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading keymap directory: %w", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if id, ok := strings.CutSuffix(e.Name(), fileExt); ok && validID(id) {
				byID[id] = Source{ID: id, Origin: OriginUser, Path: filepath.Join(r.dir, e.Name())}
			}
		}
	}

	out := make([]Source, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
