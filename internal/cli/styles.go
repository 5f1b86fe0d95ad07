package cli

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.Color("#7aa2f7")
	colorMuted  = lipgloss.Color("#737aa2")
	colorBorder = lipgloss.Color("#3b4261")
	colorError  = lipgloss.Color("#f7768e")
	colorOK     = lipgloss.Color("#9ece6a")
	colorWarn   = lipgloss.Color("#e0af68")

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	cellDimStyle = cellStyle.Foreground(colorMuted)
)

// newTable returns a bordered table with the shared header style. Columns
// listed in dim are rendered muted.
func newTable(headers []string, rows [][]string, dim ...int) *table.Table {
	muted := make(map[int]bool, len(dim))
	for _, c := range dim {
		muted[c] = true
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case muted[col]:
				return cellDimStyle
			default:
				return cellStyle
			}
		})
}
