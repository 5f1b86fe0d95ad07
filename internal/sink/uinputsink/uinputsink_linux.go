//go:build linux

// Package uinputsink types into the focused Linux application through a
// uinput virtual keyboard.
package uinputsink

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/bendahl/uinput"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/input/key"
)

// DevicePath is the uinput control device.
const DevicePath = "/dev/uinput"

// Sink is a virtual keyboard. Runes without a US layout key stroke are
// typed with the Ctrl+Shift+U code point entry of IBus and GTK. Control
// characters other than newline and tab are dropped with a warning.
type Sink struct {
	kb  uinput.Keyboard
	log zerolog.Logger
}

// New creates a virtual keyboard with the given device name.
func New(name string, logger zerolog.Logger) (*Sink, error) {
	kb, err := uinput.CreateKeyboard(DevicePath, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("creating uinput keyboard: %w", err)
	}
	return &Sink{kb: kb, log: logger.With().Str("component", "uinput").Logger()}, nil
}

// CommitText implements sink.Sink.
func (s *Sink) CommitText(text string) error {
	var errs []error
	for _, r := range text {
		strokes := strokesFor(r)
		if strokes == nil {
			s.log.Warn().Str("char", strconv.QuoteRune(r)).Msg("No key stroke for character")
			continue
		}
		for _, st := range strokes {
			errs = append(errs, s.tap(st))
		}
	}
	return errors.Join(errs...)
}

// tap presses and releases st.code with its modifiers held.
func (s *Sink) tap(st stroke) error {
	var mods []int
	if st.ctrl {
		mods = append(mods, uinput.KeyLeftctrl)
	}
	if st.shift {
		mods = append(mods, uinput.KeyLeftshift)
	}
	var errs []error
	held := make([]int, 0, len(mods))
	for _, m := range mods {
		if err := s.kb.KeyDown(m); err != nil {
			errs = append(errs, err)
			break
		}
		held = append(held, m)
	}
	if len(held) == len(mods) {
		errs = append(errs, s.kb.KeyPress(st.code))
	}
	for i := len(held) - 1; i >= 0; i-- {
		errs = append(errs, s.kb.KeyUp(held[i]))
	}
	return errors.Join(errs...)
}

func code(k key.Key) (int, error) {
	c, ok := keyCodes[k]
	if !ok {
		return 0, fmt.Errorf("no uinput code for key %s", k)
	}
	return c, nil
}

// SendKeyDown implements sink.Sink.
func (s *Sink) SendKeyDown(k key.Key) error {
	c, err := code(k)
	if err != nil {
		return err
	}
	return s.kb.KeyDown(c)
}

// SendKeyUp implements sink.Sink.
func (s *Sink) SendKeyUp(k key.Key) error {
	c, err := code(k)
	if err != nil {
		return err
	}
	return s.kb.KeyUp(c)
}

// Close removes the virtual keyboard.
func (s *Sink) Close() error {
	return s.kb.Close()
}
