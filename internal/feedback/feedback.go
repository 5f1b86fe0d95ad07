// Package feedback plays a short click when a character is typed.
package feedback

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/machine"
)

const (
	sampleRate = beep.SampleRate(44100)
	clickFreq  = 880
	clickLen   = 30 * time.Millisecond
)

// Clicker reacts to typed output.
type Clicker interface {
	Click()
}

// Nop is a Clicker that does nothing.
type Nop struct{}

// Click implements Clicker.
func (Nop) Click() {}

// Player plays a sine click through the default audio device.
type Player struct {
	volume float64
	log    zerolog.Logger
}

// NewPlayer initializes the speaker. volume is linear in [0, 1].
func NewPlayer(volume float64, logger zerolog.Logger) (*Player, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return &Player{volume: volume, log: logger.With().Str("component", "feedback").Logger()}, nil
}

// Click implements Clicker.
func (p *Player) Click() {
	tone, err := generators.SineTone(sampleRate, clickFreq)
	if err != nil {
		p.log.Warn().Err(err).Msg("Generating click tone")
		return
	}
	speaker.Play(withVolume(beep.Take(sampleRate.N(clickLen), tone), p.volume))
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	speaker.Clear()
	speaker.Close()
}

// withVolume scales s by a linear volume. Zero or less is silent.
func withVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ShouldClick reports whether cmds typed anything audible.
func ShouldClick(cmds []machine.Command) bool {
	for _, c := range cmds {
		switch c.(type) {
		case machine.CommitText, machine.KeyDown:
			return true
		}
	}
	return false
}
