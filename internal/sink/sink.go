// Package sink delivers machine commands to whatever receives the typed text.
package sink

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/padkeys/internal/input/key"
	"github.com/dshills/padkeys/internal/machine"
)

// Sink receives text and key events. Every SendKeyDown is followed by a
// SendKeyUp for the same key.
type Sink interface {
	CommitText(text string) error
	SendKeyDown(k key.Key) error
	SendKeyUp(k key.Key) error
}

// Apply delivers the text and key commands in cmds to s in order. Renderer
// signals are ignored. Delivery continues past failures so key presses stay
// paired; the failures are joined into the returned error.
func Apply(s Sink, cmds []machine.Command) error {
	var errs []error
	for _, c := range cmds {
		var err error
		switch c := c.(type) {
		case machine.CommitText:
			err = s.CommitText(c.Text)
		case machine.KeyDown:
			err = s.SendKeyDown(c.Key)
		case machine.KeyUp:
			err = s.SendKeyUp(c.Key)
		default:
			continue
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// Multi fans every call out to several sinks.
type Multi []Sink

// CommitText implements Sink.
func (m Multi) CommitText(text string) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.CommitText(text))
	}
	return errors.Join(errs...)
}

// SendKeyDown implements Sink.
func (m Multi) SendKeyDown(k key.Key) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.SendKeyDown(k))
	}
	return errors.Join(errs...)
}

// SendKeyUp implements Sink.
func (m Multi) SendKeyUp(k key.Key) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.SendKeyUp(k))
	}
	return errors.Join(errs...)
}

// Buffer is an in-memory text field. Backspace removes the last rune, Enter
// starts a new line and other keys are ignored. It is safe for concurrent use
// so a renderer can read it while the event loop writes.
type Buffer struct {
	mu    sync.Mutex
	text  []rune
	limit int
}

// NewBuffer creates a buffer that keeps at most limit runes (0 means no limit).
func NewBuffer(limit int) *Buffer {
	return &Buffer{limit: limit}
}

// CommitText implements Sink.
func (b *Buffer) CommitText(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = append(b.text, []rune(text)...)
	b.trim()
	return nil
}

// SendKeyDown implements Sink.
func (b *Buffer) SendKeyDown(k key.Key) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch k {
	case key.KeyBackspace:
		if n := len(b.text); n > 0 {
			b.text = b.text[:n-1]
		}
	case key.KeyEnter:
		b.text = append(b.text, '\n')
		b.trim()
	case key.KeySpace:
		b.text = append(b.text, ' ')
		b.trim()
	}
	return nil
}

// SendKeyUp implements Sink.
func (b *Buffer) SendKeyUp(key.Key) error {
	return nil
}

func (b *Buffer) trim() {
	if b.limit > 0 && len(b.text) > b.limit {
		b.text = append(b.text[:0:0], b.text[len(b.text)-b.limit:]...)
	}
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Lines returns the buffer split into lines.
func (b *Buffer) Lines() []string {
	return strings.Split(b.String(), "\n")
}
