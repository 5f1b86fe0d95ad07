package machine

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/key"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/repeat"
)

// Options configures a Machine.
type Options struct {
	// Bindings maps non-face buttons to actions. Nil selects DefaultBindings.
	Bindings Bindings
	// Scheduler delivers repeat ticks. It must hand them back as RepeatTick
	// events on the goroutine that calls Handle. Nil selects a scheduler that
	// drops every tick, so held directions fire once.
	Scheduler repeat.Scheduler
	// RepeatInterval is the navigation key repeat interval.
	RepeatInterval time.Duration
	// Logger receives diagnostic output.
	Logger zerolog.Logger
}

// Machine turns gamepad events into text commands.
type Machine struct {
	bindings Bindings
	repeat   *repeat.Driver
	base     zerolog.Logger
	log      zerolog.Logger

	languages     []*keymap.Table
	symbols       *keymap.Table
	langIndex     int
	symbolsActive bool
	shift         bool
	primary       stick.Direction
	secondary     stick.Direction
	field         FieldClass
	session       string

	// out collects commands produced by the event being handled.
	out []Command
}

// New creates a machine typing from set. The machine starts suspended until
// a text field is focused.
func New(set keymap.Set, opts Options) *Machine {
	if opts.Bindings == nil {
		opts.Bindings = DefaultBindings()
	}
	if opts.Scheduler == nil {
		opts.Scheduler = repeat.NopScheduler{}
	}
	log := opts.Logger.With().Str("component", "machine").Logger()
	m := &Machine{
		bindings:  opts.Bindings,
		base:      log,
		log:       log,
		languages: set.Languages,
		symbols:   set.Symbols,
	}
	m.repeat = repeat.New(opts.RepeatInterval, opts.Scheduler, m.sendKey)
	return m
}

// Handle applies ev and returns the commands it produced. handled is false
// when the event is not for the keyboard: the machine is suspended or the
// button is not bound.
//
// Handle panics if a lookup falls outside the keymap grid, which would mean
// the machine's own state is corrupt.
func (m *Machine) Handle(ev Event) (cmds []Command, handled bool) {
	m.out = nil
	handled = m.dispatch(ev)
	cmds, m.out = m.out, nil
	return cmds, handled
}

func (m *Machine) dispatch(ev Event) bool {
	switch e := ev.(type) {
	case FieldFocus:
		m.focus(e)
		return true
	case FieldBlur:
		m.blur()
		return true
	case KeymapsReloaded:
		m.reload(e.Set)
		return true
	}

	if m.Suspended() {
		return false
	}

	switch e := ev.(type) {
	case ButtonDown:
		return m.buttonDown(e.Button)
	case ButtonUp:
		return m.buttonUp(e.Button)
	case PrimaryStick:
		m.setPrimary(stick.ClassifyPrimary(e.X, e.Y))
		return true
	case SecondaryStick:
		m.setSecondary(stick.ClassifyRight(e.X, e.Y))
		return true
	case RepeatTick:
		return m.repeat.Tick(e.Tick)
	default:
		return false
	}
}

// Suspended reports whether the focused field accepts no text.
func (m *Machine) Suspended() bool {
	return m.field == FieldNone
}

func (m *Machine) emit(c Command) {
	m.out = append(m.out, c)
}

func (m *Machine) commit(r rune) {
	if r == 0 {
		return
	}
	m.emit(CommitText{Text: string(r)})
}

func (m *Machine) sendKey(k key.Key) {
	m.emit(KeyDown{Key: k})
	m.emit(KeyUp{Key: k})
}

// Active returns the table used for lookups, or nil if none is loaded.
func (m *Machine) Active() *keymap.Table {
	if m.symbolsActive && m.symbols != nil {
		return m.symbols
	}
	if len(m.languages) == 0 {
		return nil
	}
	return m.languages[m.langIndex]
}

func (m *Machine) buttonDown(b button.Button) bool {
	if b.IsFace() {
		m.typeFace(b)
		return true
	}
	bind, ok := m.bindings[b]
	if !ok {
		return false
	}

	switch bind.Action {
	case ActionWordGap:
		m.commit(' ')
	case ActionErase:
		m.sendKey(key.KeyBackspace)
	case ActionConfirm:
		m.sendKey(key.KeyEnter)
	case ActionShift:
		m.setShift(true)
	case ActionNextLanguage:
		m.cycleLanguage(1)
	case ActionPrevLanguage:
		m.cycleLanguage(-1)
	case ActionToggleSymbols:
		m.setSymbols(!m.symbolsActive)
	case ActionKey:
		if bind.Key.IsNavigationKey() {
			m.repeat.Start(bind.Key)
		} else {
			m.sendKey(bind.Key)
		}
	}
	return true
}

func (m *Machine) buttonUp(b button.Button) bool {
	if b.IsFace() {
		return true
	}
	bind, ok := m.bindings[b]
	if !ok {
		return false
	}
	switch bind.Action {
	case ActionShift:
		m.setShift(false)
	case ActionKey:
		// Stop only the repeat this button started; a later hold owns it.
		if k, active := m.repeat.Active(); active && k == bind.Key {
			m.repeat.Stop()
		}
	}
	return true
}

func (m *Machine) typeFace(b button.Button) {
	t := m.Active()
	if t == nil {
		m.log.Debug().Stringer("button", b).Msg("No keymap loaded")
		return
	}
	idx, err := keymap.ButtonIndex(b)
	if err != nil {
		panic(err)
	}
	r, err := t.Lookup(m.primary, idx, m.shift)
	if err != nil {
		panic(err)
	}
	m.commit(r)
}

func (m *Machine) setShift(on bool) {
	if m.shift == on {
		return
	}
	m.shift = on
	m.emit(ShiftChanged{Active: on})
}

func (m *Machine) setPrimary(d stick.Direction) {
	if d == m.primary {
		return
	}
	m.primary = d
	m.emit(HighlightChanged{Direction: d})
}

func (m *Machine) setSecondary(d stick.Direction) {
	if d == m.secondary {
		return
	}
	m.secondary = d
	m.repeat.Stop()
	if k, ok := d.NavKey(); ok {
		m.repeat.Start(k)
	}
}

func (m *Machine) keymapChanged() {
	t := m.Active()
	id := ""
	if t != nil {
		id = t.ID()
	}
	m.emit(KeymapChanged{ID: id, Symbols: m.symbolsActive})
}

func (m *Machine) cycleLanguage(step int) {
	n := len(m.languages)
	if n == 0 {
		return
	}
	m.langIndex = ((m.langIndex+step)%n + n) % n
	m.log.Debug().Str("keymap", m.languages[m.langIndex].ID()).Msg("Language selected")
	if !m.symbolsActive {
		m.keymapChanged()
	}
}

func (m *Machine) setSymbols(on bool) {
	if on && m.symbols == nil {
		m.log.Debug().Msg("No symbols keymap loaded")
		return
	}
	if on == m.symbolsActive {
		return
	}
	m.symbolsActive = on
	m.keymapChanged()
}

// resetInput drops transient per-field state: repeat, shift and directions.
func (m *Machine) resetInput() {
	m.repeat.Stop()
	m.secondary = stick.Center
	m.setShift(false)
	m.setPrimary(stick.Center)
}

func (m *Machine) focus(e FieldFocus) {
	if e.Class == FieldNone {
		m.resetInput()
		m.field = FieldNone
		m.log.Debug().Msg("Field accepts no text, suspended")
		return
	}

	wasSuspended := m.Suspended()
	m.field = e.Class
	if e.Restarting && !wasSuspended {
		return
	}

	m.session = uuid.NewString()
	m.log = m.base.With().Str("session", m.session).Logger()
	m.log.Debug().Stringer("class", e.Class).Bool("restarting", e.Restarting).Msg("Field focused")

	if e.Restarting {
		return
	}
	m.resetInput()
	on := e.Class.Numeric() && m.symbols != nil
	m.symbolsActive = on
	m.keymapChanged()
}

func (m *Machine) blur() {
	m.resetInput()
	m.field = FieldNone
}

func (m *Machine) reload(set keymap.Set) {
	m.languages = set.Languages
	m.symbols = set.Symbols
	if m.langIndex >= len(m.languages) {
		m.langIndex = max(len(m.languages)-1, 0)
	}
	if m.symbols == nil {
		m.symbolsActive = false
	}
	m.log.Info().Strs("languages", set.IDs()).Bool("symbols", set.Symbols != nil).Msg("Keymaps reloaded")
	m.keymapChanged()
}
