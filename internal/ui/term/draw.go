package term

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/machine"
)

// Grid geometry. Each direction is a cell showing its four characters as a
// diamond: Y on top, X left, B right, A at the bottom.
const (
	gridX     = 2
	gridY     = 2
	cellW     = 9
	cellH     = 3
	cellGapX  = 1
	cellGapY  = 1
	textTop   = gridY + 3*(cellH+cellGapY) + 1
	maxLabelW = 60
)

// diamond gives the (dx, dy) offset of each button column inside a cell.
var diamond = [keymap.Buttons][2]int{
	{4, 2}, // A
	{6, 1}, // B
	{2, 1}, // X
	{4, 0}, // Y
}

var (
	styleBase      = tcell.StyleDefault
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleCell      = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleHighlight = tcell.StyleDefault.Reverse(true).Bold(true)
	styleDim       = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFlag      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func fill(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// cellOrigin returns the top-left screen position of d's cell.
func cellOrigin(d stick.Direction) (x, y int) {
	row, col := d.GridCell()
	return gridX + col*(cellW+cellGapX), gridY + row*(cellH+cellGapY)
}

// status renders the header line for snap.
func status(snap *machine.Snapshot) string {
	if snap == nil {
		return "padkeys  starting"
	}
	var b strings.Builder
	b.WriteString("padkeys  ")
	if snap.Table != nil {
		b.WriteString(snap.Table.Name())
	} else {
		b.WriteString("no keymap")
	}
	if n := len(snap.Languages); n > 1 {
		fmt.Fprintf(&b, " (%d/%d)", snap.LanguageIndex+1, n)
	}
	if snap.Suspended {
		b.WriteString("  suspended")
	} else {
		fmt.Fprintf(&b, "  field %s", snap.Field)
	}
	return b.String()
}

func draw(s tcell.Screen, snap *machine.Snapshot, text []string) {
	s.Clear()
	w, h := s.Size()

	x := drawString(s, 0, 0, styleTitle, status(snap))
	if snap != nil {
		if snap.Symbols {
			x = drawString(s, x+2, 0, styleFlag, "SYM")
		}
		if snap.Shift {
			drawString(s, x+2, 0, styleFlag, "SHIFT")
		}
	}

	drawGrid(s, snap)
	drawText(s, text, w, h)

	help := Help
	if len(help) > w {
		help = help[:max(w, 0)]
	}
	drawString(s, 0, h-1, styleDim, help)
	s.Show()
}

func drawGrid(s tcell.Screen, snap *machine.Snapshot) {
	var grid [keymap.Directions][keymap.Buttons]rune
	var primary stick.Direction
	dim := true
	if snap != nil {
		var ok bool
		grid, ok = snap.Grid()
		dim = !ok || snap.Suspended
		primary = snap.Primary
	}

	for d := stick.Center; d < stick.Count; d++ {
		ox, oy := cellOrigin(d)
		style := styleCell
		switch {
		case dim:
			style = styleDim
		case d == primary:
			style = styleHighlight
		}
		fill(s, ox, oy, cellW, cellH, style)
		for i, off := range diamond {
			r := grid[d][i]
			if r == 0 {
				r = '·'
			}
			s.SetContent(ox+off[0], oy+off[1], r, nil, style)
		}
	}
}

// drawText shows the tail of the typed text under the grid.
func drawText(s tcell.Screen, lines []string, w, h int) {
	drawString(s, 0, textTop, styleTitle, "text")
	avail := h - 1 - (textTop + 1)
	if avail <= 0 {
		return
	}
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	width := min(w, maxLabelW)
	for i, line := range lines {
		runes := []rune(line)
		if len(runes) > width {
			runes = runes[len(runes)-width:]
		}
		drawString(s, 0, textTop+1+i, styleBase, string(runes))
	}
}
