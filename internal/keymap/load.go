package keymap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// Element names of the keymap format.
const (
	rootElement      = "GamepadKeyboard"
	directionElement = "StickDirection"
)

var buttonColumns = map[string]int{"A": 0, "B": 1, "X": 2, "Y": 3}

// LoadFile loads a table from an XML file. The id is the file stem.
func LoadFile(path string, logger zerolog.Logger) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keymap file: %w", err)
	}
	defer f.Close()

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Load(f, id, logger)
}

// Load parses a table from r.
func Load(r io.Reader, id string, logger zerolog.Logger) (*Table, error) {
	p := &parser{
		dec:  xml.NewDecoder(r),
		id:   id,
		log:  logger.With().Str("keymap", id).Logger(),
		dir:  -1,
		col:  -1,
		seen: make(map[[2]int]bool),
	}
	return p.parse()
}

type parser struct {
	dec *xml.Decoder
	id  string
	log zerolog.Logger

	name  string
	cells Cells

	root bool
	// skip counts open elements being ignored.
	skip int
	dir  int
	col  int
	alt  *string
	text strings.Builder
	seen map[[2]int]bool
}

func (p *parser) line() int {
	line, _ := p.dec.InputPos()
	return line
}

func (p *parser) formatError(msg string, err error) *FormatError {
	line := p.line()
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		line = syn.Line
	}
	return &FormatError{Source: p.id, Line: line, Message: msg, Err: err}
}

func (p *parser) warn(msg string) {
	p.log.Warn().Int("line", p.line()).Msg(msg)
}

func (p *parser) parse() (*Table, error) {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			if !p.root {
				return nil, p.formatError("missing <"+rootElement+"> root element", nil)
			}
			return nil, p.formatError("unexpected end of document", io.ErrUnexpectedEOF)
		}
		if err != nil {
			return nil, p.formatError("malformed document", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if p.end(t) {
				return NewTable(p.id, p.name, p.cells), nil
			}
		case xml.CharData:
			p.charData(t)
		}
	}
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (p *parser) start(se xml.StartElement) error {
	name := se.Name.Local
	if !p.root {
		if name != rootElement {
			return p.formatError(fmt.Sprintf("root element is <%s>, want <%s>", name, rootElement), nil)
		}
		p.root = true
		p.name, _ = attr(se, "name")
		return nil
	}
	if p.skip > 0 {
		p.skip++
		return nil
	}

	switch {
	case name == directionElement && p.dir < 0:
		pos, _ := attr(se, "position")
		n, err := strconv.Atoi(strings.TrimSpace(pos))
		if err != nil || n < 0 || n >= Directions {
			p.warn(fmt.Sprintf("invalid direction position %q, skipping", pos))
			p.skip = 1
			return nil
		}
		p.dir = n
	case isButtonElement(name) && p.dir >= 0 && p.col < 0:
		p.col = buttonColumns[name]
		p.alt = nil
		if v, ok := attr(se, "alt"); ok {
			p.alt = &v
		}
		p.text.Reset()
	default:
		p.warn(fmt.Sprintf("unexpected element <%s>, skipping", name))
		p.skip = 1
	}
	return nil
}

func isButtonElement(name string) bool {
	_, ok := buttonColumns[name]
	return ok
}

// end handles a closing tag and reports whether the root was closed.
func (p *parser) end(ee xml.EndElement) bool {
	if p.skip > 0 {
		p.skip--
		return false
	}
	switch {
	case p.col >= 0:
		p.finishCell()
		p.col = -1
	case p.dir >= 0:
		p.dir = -1
	default:
		return ee.Name.Local == rootElement
	}
	return false
}

func (p *parser) charData(cd xml.CharData) {
	if p.skip > 0 {
		return
	}
	if p.col >= 0 {
		p.text.Write(cd)
		return
	}
	if s := strings.TrimSpace(string(cd)); s != "" {
		p.warn(fmt.Sprintf("unexpected text %q, ignoring", s))
	}
}

// firstRune returns the character a cell's text denotes. Surrounding
// whitespace is trimmed unless the text is nothing but whitespace.
func (p *parser) firstRune(s, what string) (rune, bool) {
	if t := strings.TrimSpace(s); t != "" {
		s = t
	}
	if s == "" {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(s)
	if size < len(s) {
		p.warn(fmt.Sprintf("%s %q has more than one character, keeping %q", what, s, r))
	}
	return r, true
}

func (p *parser) finishCell() {
	primary, ok := p.firstRune(p.text.String(), "text")
	if !ok {
		p.warn(fmt.Sprintf("direction %d button %d has no character, skipping", p.dir, p.col))
		return
	}

	var alt rune
	if p.alt != nil {
		if a, ok := p.firstRune(*p.alt, "alt"); ok {
			alt = a
		} else {
			p.warn("empty alt attribute, deriving shift by case")
		}
	}

	k := [2]int{p.dir, p.col}
	if p.seen[k] {
		p.warn(fmt.Sprintf("direction %d button %d defined twice, keeping the last", p.dir, p.col))
	}
	p.seen[k] = true
	p.cells[p.dir][p.col] = Entry{Primary: primary, Alt: alt}
}
