//go:build linux

package uinputsink

import (
	"fmt"
	"testing"

	"github.com/bendahl/uinput"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/padkeys/internal/input/key"
)

// recorder is a uinput.Keyboard that logs every event.
type recorder struct {
	events []string
}

func (r *recorder) KeyPress(k int) error {
	r.events = append(r.events, fmt.Sprintf("tap %d", k))
	return nil
}

func (r *recorder) KeyDown(k int) error {
	r.events = append(r.events, fmt.Sprintf("down %d", k))
	return nil
}

func (r *recorder) KeyUp(k int) error {
	r.events = append(r.events, fmt.Sprintf("up %d", k))
	return nil
}

func (r *recorder) FetchSyspath() (string, error) { return "", nil }
func (r *recorder) Close() error                  { return nil }

func ev(kind string, k int) string { return fmt.Sprintf("%s %d", kind, k) }

func TestCommitText(t *testing.T) {
	rec := &recorder{}
	s := &Sink{kb: rec, log: zerolog.Nop()}

	require.NoError(t, s.CommitText("aB"))
	assert.Equal(t, []string{
		ev("tap", uinput.KeyA),
		ev("down", uinput.KeyLeftshift),
		ev("tap", uinput.KeyB),
		ev("up", uinput.KeyLeftshift),
	}, rec.events)
}

func TestCommitTextCodePoint(t *testing.T) {
	rec := &recorder{}
	s := &Sink{kb: rec, log: zerolog.Nop()}

	require.NoError(t, s.CommitText("é"))
	assert.Equal(t, []string{
		ev("down", uinput.KeyLeftctrl),
		ev("down", uinput.KeyLeftshift),
		ev("tap", uinput.KeyU),
		ev("up", uinput.KeyLeftshift),
		ev("up", uinput.KeyLeftctrl),
		ev("tap", uinput.KeyE),
		ev("tap", uinput.Key9),
		ev("tap", uinput.KeySpace),
	}, rec.events)
}

func TestCommitTextDropsControl(t *testing.T) {
	rec := &recorder{}
	s := &Sink{kb: rec, log: zerolog.Nop()}

	require.NoError(t, s.CommitText("\x1bx"))
	assert.Equal(t, []string{ev("tap", uinput.KeyX)}, rec.events)
}

func TestSendKey(t *testing.T) {
	rec := &recorder{}
	s := &Sink{kb: rec, log: zerolog.Nop()}

	require.NoError(t, s.SendKeyDown(key.KeyLeft))
	require.NoError(t, s.SendKeyUp(key.KeyLeft))
	assert.Equal(t, []string{ev("down", uinput.KeyLeft), ev("up", uinput.KeyLeft)}, rec.events)

	assert.Error(t, s.SendKeyDown(key.KeyNone))
}
