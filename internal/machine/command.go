package machine

import (
	"github.com/dshills/padkeys/internal/input/key"
	"github.com/dshills/padkeys/internal/input/stick"
)

// Command is an output of Machine.Handle.
type Command interface {
	isCommand()
}

// CommitText inserts text into the focused field.
type CommitText struct {
	Text string
}

// KeyDown presses a key. It is always followed by a matching KeyUp.
type KeyDown struct {
	Key key.Key
}

// KeyUp releases a key.
type KeyUp struct {
	Key key.Key
}

// HighlightChanged tells the renderer which direction group to highlight.
type HighlightChanged struct {
	Direction stick.Direction
}

// ShiftChanged tells the renderer the shift state changed.
type ShiftChanged struct {
	Active bool
}

// KeymapChanged tells the renderer which table is now active.
type KeymapChanged struct {
	ID      string
	Symbols bool
}

func (CommitText) isCommand()       {}
func (KeyDown) isCommand()          {}
func (KeyUp) isCommand()            {}
func (HighlightChanged) isCommand() {}
func (ShiftChanged) isCommand()     {}
func (KeymapChanged) isCommand()    {}
