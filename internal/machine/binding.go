package machine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/key"
)

// Action is what a bound non-face button does.
type Action uint8

const (
	ActionNone Action = iota
	ActionWordGap
	ActionErase
	ActionConfirm
	ActionShift
	ActionNextLanguage
	ActionPrevLanguage
	ActionToggleSymbols
	// ActionKey sends the key named in the binding, written "key:<name>".
	ActionKey
)

var actionNames = [...]string{
	ActionNone:          "none",
	ActionWordGap:       "word_gap",
	ActionErase:         "erase",
	ActionConfirm:       "confirm",
	ActionShift:         "shift",
	ActionNextLanguage:  "next_language",
	ActionPrevLanguage:  "prev_language",
	ActionToggleSymbols: "toggle_symbols",
	ActionKey:           "key",
}

// String returns the configuration name of the action.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", a)
}

// ParseAction returns the action for a configuration name.
func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return ActionNone, fmt.Errorf("unknown action %q", name)
}

// keyPrefix introduces a key binding such as "key:escape".
const keyPrefix = "key:"

// Binding is what a bound button does. Key is set only for ActionKey.
type Binding struct {
	Action Action
	Key    key.Key
}

// Bind returns a binding for an action that takes no key.
func Bind(a Action) Binding {
	return Binding{Action: a}
}

// BindKey returns a binding that sends k.
func BindKey(k key.Key) Binding {
	return Binding{Action: ActionKey, Key: k}
}

// String returns the configuration form of the binding.
func (b Binding) String() string {
	if b.Action == ActionKey {
		return keyPrefix + strings.ToLower(b.Key.String())
	}
	return b.Action.String()
}

// ParseBinding parses an action name or "key:<name>".
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(strings.ToLower(s), keyPrefix); ok {
		k := key.FromName(name)
		if k == key.KeyNone {
			return Binding{}, fmt.Errorf("unknown key %q", name)
		}
		return BindKey(k), nil
	}
	a, err := ParseAction(s)
	if err != nil {
		return Binding{}, err
	}
	if a == ActionKey {
		return Binding{}, errors.New(`key binding needs a key name, as in "key:escape"`)
	}
	return Bind(a), nil
}

// Bindings maps non-face buttons to what they do. Buttons without an entry
// are not handled by the machine.
type Bindings map[button.Button]Binding

// DefaultBindings returns the stock controller layout.
func DefaultBindings() Bindings {
	return Bindings{
		button.R1:       Bind(ActionWordGap),
		button.L1:       Bind(ActionErase),
		button.R2:       Bind(ActionConfirm),
		button.L2:       Bind(ActionShift),
		button.HatRight: Bind(ActionNextLanguage),
		button.HatLeft:  Bind(ActionPrevLanguage),
		button.HatDown:  Bind(ActionToggleSymbols),
	}
}

// BindingError reports a bindings entry that cannot be applied.
type BindingError struct {
	// Button is the button name as written in the configuration.
	Button string
	Err    error
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return fmt.Sprintf("binding %s: %v", e.Button, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindingError) Unwrap() error {
	return e.Err
}

// errFaceButton is returned when a face button is given an action.
var errFaceButton = errors.New("face buttons type characters and cannot be bound")

// ParseBindings applies overrides of the form button name -> binding on top
// of the defaults. The action "none" unbinds a button.
func ParseBindings(overrides map[string]string) (Bindings, error) {
	b := DefaultBindings()
	for name, action := range overrides {
		btn, err := button.Parse(name)
		if err != nil {
			return nil, &BindingError{Button: name, Err: err}
		}
		if btn.IsFace() {
			return nil, &BindingError{Button: name, Err: errFaceButton}
		}
		bind, err := ParseBinding(action)
		if err != nil {
			return nil, &BindingError{Button: name, Err: err}
		}
		if bind.Action == ActionNone {
			delete(b, btn)
			continue
		}
		b[btn] = bind
	}
	return b, nil
}

// Names returns the bindings in configuration form.
func (b Bindings) Names() map[string]string {
	out := make(map[string]string, len(b))
	for btn, bind := range b {
		out[btn.String()] = bind.String()
	}
	return out
}
