// Package evdevpad reads a gamepad through the Linux evdev interface and
// posts machine events.
//
// Axis readings inside the device's flat range are zeroed, then scaled to
// [-1, 1] with Y flipped so that north is positive. Hat axes become hat
// button presses, or a D-pad stick sample when WithDpadStick is set.
package evdevpad

import (
	"errors"

	"github.com/rs/zerolog"
)

// Errors returned by the package.
var (
	ErrUnsupported = errors.New("evdev is only available on linux")
	ErrNoGamepad   = errors.New("no gamepad found")
)

// Info describes an input device.
type Info struct {
	Path string
	Name string
}

type options struct {
	dpadStick bool
	grab      bool
	log       zerolog.Logger
}

// Option configures a Pad.
type Option func(*options)

// WithDpadStick drives the primary stick from the hat instead of reporting
// hat buttons.
func WithDpadStick(on bool) Option {
	return func(o *options) { o.dpadStick = on }
}

// WithGrab takes exclusive access to the device so other applications do
// not see its input.
func WithGrab(on bool) Option {
	return func(o *options) { o.grab = on }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

func buildOptions(opts []Option) options {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = o.log.With().Str("component", "evdev").Logger()
	return o
}
