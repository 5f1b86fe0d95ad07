// Package robotgosink types into the focused desktop application with robotgo.
package robotgosink

import (
	"fmt"

	"github.com/go-vgo/robotgo"
	"github.com/rs/zerolog"

	"github.com/dshills/padkeys/internal/input/key"
)

var keyNames = map[key.Key]string{
	key.KeyEscape:    "esc",
	key.KeyEnter:     "enter",
	key.KeyTab:       "tab",
	key.KeyBackspace: "backspace",
	key.KeyDelete:    "delete",
	key.KeySpace:     "space",
	key.KeyHome:      "home",
	key.KeyEnd:       "end",
	key.KeyPageUp:    "pageup",
	key.KeyPageDown:  "pagedown",
	key.KeyUp:        "up",
	key.KeyDown:      "down",
	key.KeyLeft:      "left",
	key.KeyRight:     "right",
}

// Sink synthesizes desktop input events.
type Sink struct {
	log zerolog.Logger
}

// New creates a robotgo sink.
func New(logger zerolog.Logger) *Sink {
	return &Sink{log: logger.With().Str("component", "robotgo").Logger()}
}

// CommitText implements sink.Sink.
func (s *Sink) CommitText(text string) error {
	s.log.Debug().Int("len", len(text)).Msg("Typing text")
	robotgo.TypeStr(text)
	return nil
}

func name(k key.Key) (string, error) {
	n, ok := keyNames[k]
	if !ok {
		return "", fmt.Errorf("no robotgo name for key %s", k)
	}
	return n, nil
}

// SendKeyDown implements sink.Sink.
func (s *Sink) SendKeyDown(k key.Key) error {
	n, err := name(k)
	if err != nil {
		return err
	}
	return robotgo.KeyToggle(n, "down")
}

// SendKeyUp implements sink.Sink.
func (s *Sink) SendKeyUp(k key.Key) error {
	n, err := name(k)
	if err != nil {
		return err
	}
	return robotgo.KeyToggle(n, "up")
}
