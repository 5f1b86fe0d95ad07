//go:build linux

package evdevpad

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	evdev "github.com/holoplot/go-evdev"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/machine"
)

// Pad is an open gamepad device.
type Pad struct {
	dev  *evdev.InputDevice
	info Info
	opts options
	log  zerolog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Open opens the gamepad at path. An empty path selects the first gamepad
// found by List.
func Open(path string, opts ...Option) (*Pad, error) {
	o := buildOptions(opts)
	if path == "" {
		pads, err := List()
		if err != nil {
			return nil, err
		}
		if len(pads) == 0 {
			return nil, ErrNoGamepad
		}
		path = pads[0].Path
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	name, _ := dev.Name()
	if o.grab {
		if err := dev.Grab(); err != nil {
			_ = dev.Close()
			return nil, fmt.Errorf("grabbing %s: %w", path, err)
		}
	}

	p := &Pad{
		dev:  dev,
		info: Info{Path: path, Name: name},
		opts: o,
		log:  o.log.With().Str("device", path).Logger(),
	}
	p.log.Info().Str("name", name).Msg("Gamepad opened")
	return p, nil
}

// Info returns the device path and name.
func (p *Pad) Info() Info {
	return p.info
}

// Close releases the device and any grab. It is safe to call more than once
// and alongside Run.
func (p *Pad) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.dev.Close()
	})
	return p.closeErr
}

// Run reads the device and posts events until ctx is done or the device
// fails. The device is closed when Run returns.
func (p *Pad) Run(ctx context.Context, post func(machine.Event)) error {
	infos, err := p.dev.AbsInfos()
	if err != nil {
		_ = p.Close()
		return fmt.Errorf("reading axis info: %w", err)
	}
	t := newTranslator(infos, p.opts.dpadStick)

	stop := context.AfterFunc(ctx, func() {
		_ = p.Close()
	})
	defer func() {
		if stop() {
			_ = p.Close()
		}
	}()

	for {
		ev, err := p.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("reading %s: %w", p.info.Path, err)
		}
		t.handle(ev, post)
	}
}

// List returns the input devices that report gamepad face buttons.
func List() ([]Info, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("listing input devices: %w", err)
	}
	var pads []Info
	for _, ip := range paths {
		dev, err := evdev.Open(ip.Path)
		if err != nil {
			continue
		}
		if isGamepad(dev) {
			pads = append(pads, Info{Path: ip.Path, Name: ip.Name})
		}
		_ = dev.Close()
	}
	return pads, nil
}

func isGamepad(dev *evdev.InputDevice) bool {
	keys := dev.CapableEvents(evdev.EV_KEY)
	return slices.Contains(keys, evdev.BTN_SOUTH) && slices.Contains(keys, evdev.BTN_EAST)
}
