//go:build !linux

// Package uinputsink types into the focused Linux application through a
// uinput virtual keyboard.
package uinputsink

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/input/key"
)

// ErrUnsupported is returned on platforms without uinput.
var ErrUnsupported = errors.New("uinput is only available on linux")

// Sink is unavailable on this platform.
type Sink struct{}

// New always fails on this platform.
func New(string, zerolog.Logger) (*Sink, error) {
	return nil, ErrUnsupported
}

func (*Sink) CommitText(string) error   { return ErrUnsupported }
func (*Sink) SendKeyDown(key.Key) error { return ErrUnsupported }
func (*Sink) SendKeyUp(key.Key) error   { return ErrUnsupported }
func (*Sink) Close() error              { return nil }
