//go:build linux

package uinputsink

import (
	"strconv"
	"unicode"

	"github.com/bendahl/uinput"

	"github.com/dshills/padkeys/internal/input/key"
)

type stroke struct {
	code  int
	shift bool
	ctrl  bool
}

// usLayout maps printable runes to key strokes on a US QWERTY layout.
var usLayout = map[rune]stroke{
	' ':  {uinput.KeySpace, false},
	'\n': {uinput.KeyEnter, false},
	'\t': {uinput.KeyTab, false},

	'1': {uinput.Key1, false}, '!': {uinput.Key1, true},
	'2': {uinput.Key2, false}, '@': {uinput.Key2, true},
	'3': {uinput.Key3, false}, '#': {uinput.Key3, true},
	'4': {uinput.Key4, false}, '$': {uinput.Key4, true},
	'5': {uinput.Key5, false}, '%': {uinput.Key5, true},
	'6': {uinput.Key6, false}, '^': {uinput.Key6, true},
	'7': {uinput.Key7, false}, '&': {uinput.Key7, true},
	'8': {uinput.Key8, false}, '*': {uinput.Key8, true},
	'9': {uinput.Key9, false}, '(': {uinput.Key9, true},
	'0': {uinput.Key0, false}, ')': {uinput.Key0, true},

	'-': {uinput.KeyMinus, false}, '_': {uinput.KeyMinus, true},
	'=': {uinput.KeyEqual, false}, '+': {uinput.KeyEqual, true},
	'[': {uinput.KeyLeftbrace, false}, '{': {uinput.KeyLeftbrace, true},
	']': {uinput.KeyRightbrace, false}, '}': {uinput.KeyRightbrace, true},
	';': {uinput.KeySemicolon, false}, ':': {uinput.KeySemicolon, true},
	'\'': {uinput.KeyApostrophe, false}, '"': {uinput.KeyApostrophe, true},
	'`': {uinput.KeyGrave, false}, '~': {uinput.KeyGrave, true},
	'\\': {uinput.KeyBackslash, false}, '|': {uinput.KeyBackslash, true},
	',': {uinput.KeyComma, false}, '<': {uinput.KeyComma, true},
	'.': {uinput.KeyDot, false}, '>': {uinput.KeyDot, true},
	'/': {uinput.KeySlash, false}, '?': {uinput.KeySlash, true},
}

var letterCodes = [26]int{
	uinput.KeyA, uinput.KeyB, uinput.KeyC, uinput.KeyD, uinput.KeyE,
	uinput.KeyF, uinput.KeyG, uinput.KeyH, uinput.KeyI, uinput.KeyJ,
	uinput.KeyK, uinput.KeyL, uinput.KeyM, uinput.KeyN, uinput.KeyO,
	uinput.KeyP, uinput.KeyQ, uinput.KeyR, uinput.KeyS, uinput.KeyT,
	uinput.KeyU, uinput.KeyV, uinput.KeyW, uinput.KeyX, uinput.KeyY,
	uinput.KeyZ,
}

// lookupRune returns the stroke that types r on a US layout.
func lookupRune(r rune) (stroke, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return stroke{code: letterCodes[r-'a']}, true
	case r >= 'A' && r <= 'Z':
		return stroke{code: letterCodes[r-'A'], shift: true}, true
	}
	s, ok := usLayout[r]
	return s, ok
}

// unicodeEntry starts a hex code point on IBus and GTK input methods. The
// digits follow and a space commits the character.
var unicodeEntry = stroke{code: uinput.KeyU, shift: true, ctrl: true}

// strokesFor returns the strokes that type r. Runes missing from the US
// layout are entered by code point. Control characters and invalid runes
// yield nil.
func strokesFor(r rune) []stroke {
	if st, ok := lookupRune(r); ok {
		return []stroke{st}
	}
	if r == unicode.ReplacementChar || !unicode.IsPrint(r) {
		return nil
	}
	hex := strconv.FormatInt(int64(r), 16)
	out := make([]stroke, 0, len(hex)+2)
	out = append(out, unicodeEntry)
	for _, d := range hex {
		st, _ := lookupRune(d)
		out = append(out, st)
	}
	return append(out, stroke{code: uinput.KeySpace})
}

var keyCodes = map[key.Key]int{
	key.KeyEscape:    uinput.KeyEsc,
	key.KeyEnter:     uinput.KeyEnter,
	key.KeyTab:       uinput.KeyTab,
	key.KeyBackspace: uinput.KeyBackspace,
	key.KeyDelete:    uinput.KeyDelete,
	key.KeySpace:     uinput.KeySpace,
	key.KeyHome:      uinput.KeyHome,
	key.KeyEnd:       uinput.KeyEnd,
	key.KeyPageUp:    uinput.KeyPageup,
	key.KeyPageDown:  uinput.KeyPagedown,
	key.KeyUp:        uinput.KeyUp,
	key.KeyDown:      uinput.KeyDown,
	key.KeyLeft:      uinput.KeyLeft,
	key.KeyRight:     uinput.KeyRight,
}
