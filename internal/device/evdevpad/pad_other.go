//go:build !linux

package evdevpad

import (
	"context"

	"github.com/dshills/padkeys/internal/machine"
)

// Pad is unavailable on this platform.
type Pad struct{}

// Open always fails on this platform.
func Open(string, ...Option) (*Pad, error) {
	return nil, ErrUnsupported
}

func (*Pad) Info() Info { return Info{} }

func (*Pad) Close() error { return nil }

func (*Pad) Run(context.Context, func(machine.Event)) error {
	return ErrUnsupported
}

// List always fails on this platform.
func List() ([]Info, error) {
	return nil, ErrUnsupported
}
