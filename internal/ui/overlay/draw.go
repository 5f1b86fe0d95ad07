package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/dshills/padkeys/internal/input/button"
	"github.com/dshills/padkeys/internal/input/stick"
	"github.com/dshills/padkeys/internal/keymap"
	"github.com/dshills/padkeys/internal/machine"
)

const (
	margin   = 12
	headerH  = 20
	cellW    = 100
	cellH    = 72
	cellGap  = 4
	glyphOff = 22

	windowWidth  = 2*margin + 3*cellW + 2*cellGap
	windowHeight = headerH + 2*margin + 3*cellH + 2*cellGap
)

var (
	colorPanel     = color.RGBA{0, 0, 0, 180}
	colorCell      = color.RGBA{40, 40, 40, 200}
	colorHighlight = color.RGBA{0, 160, 160, 220}
	colorText      = color.RGBA{255, 255, 255, 255}
	colorDim       = color.RGBA{140, 140, 140, 255}
	colorFlag      = color.RGBA{255, 210, 0, 255}
)

// cellPos returns the top-left corner of d's cell.
func cellPos(d stick.Direction) (x, y int) {
	row, col := d.GridCell()
	return margin + col*(cellW+cellGap), headerH + margin + row*(cellH+cellGap)
}

// glyphPos returns the text baseline origin of button column i inside a
// cell at (x, y): A bottom, B right, X left, Y top.
func glyphPos(x, y, i int) (gx, gy int) {
	cx, cy := x+cellW/2-3, y+cellH/2+5
	switch keymap.ColumnButton(i) {
	case button.A:
		return cx, cy + glyphOff
	case button.B:
		return cx + glyphOff*2, cy
	case button.X:
		return cx - glyphOff*2, cy
	default:
		return cx, cy - glyphOff
	}
}

func header(snap *machine.Snapshot) (title string, flags string) {
	if snap == nil || snap.Table == nil {
		return "padkeys", ""
	}
	title = snap.Table.Name()
	if snap.Symbols {
		flags += " SYM"
	}
	if snap.Shift {
		flags += " SHIFT"
	}
	return title, flags
}

func render(screen *ebiten.Image, snap *machine.Snapshot, connected bool) {
	screen.Clear()
	vector.DrawFilledRect(screen, 0, 0, windowWidth, windowHeight, colorPanel, false)

	face := basicfont.Face7x13
	title, flags := header(snap)
	text.Draw(screen, title, face, margin, margin+6, colorText)
	if flags != "" {
		w := text.BoundString(face, title).Dx()
		text.Draw(screen, flags, face, margin+w, margin+6, colorFlag)
	}
	if !connected {
		msg := "no gamepad"
		w := text.BoundString(face, msg).Dx()
		text.Draw(screen, msg, face, windowWidth-margin-w, margin+6, colorDim)
	}

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
		x, y := cellPos(d)
		bg := colorCell
		if !dim && d == primary {
			bg = colorHighlight
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), cellW, cellH, bg, false)

		fg := colorText
		if dim {
			fg = colorDim
		}
		for i := range keymap.Buttons {
			r := grid[d][i]
			if r == 0 {
				continue
			}
			gx, gy := glyphPos(x, y, i)
			text.Draw(screen, string(r), face, gx, gy, fg)
		}
	}
}
