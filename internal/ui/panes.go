package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"ratline/internal/cell"
	"ratline/internal/grid"
)

// RenderTerminal paints one terminal pane's visible grid, applying the
// active Theme to each cell's colors and highlighting the selection and
// cursor. zoneID makes the pane clickable via bubblezone so the event
// loop can route mouse focus to it.
func RenderTerminal(g *grid.Grid, theme Theme, focused bool, zoneID string) string {
	var b strings.Builder
	cols, rows := g.Cols(), g.Rows()
	cur := g.Cursor()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := g.CellAt(col, row)
			if c.IsWideTail {
				continue
			}
			b.WriteString(renderCell(c, theme, g.IsSelected(col, row), focused && col == cur.Col && row == cur.Row))
		}
		if row < rows-1 {
			b.WriteString("\n")
		}
	}
	border := BorderStyle()
	if focused {
		border = FocusedBorderStyle()
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border.GetForeground()).Render(b.String())
	return zone.Mark(zoneID, box)
}

func renderCell(c cell.Cell, theme Theme, selected, atCursor bool) string {
	style := lipgloss.NewStyle()
	fg := theme.Resolve(c.Style.FG, true)
	bg := theme.Resolve(c.Style.BG, false)
	if selected {
		bg = theme.Selection
	}
	if atCursor {
		fg, bg = bg, theme.Cursor
	}
	style = style.Foreground(fg).Background(bg)
	if c.Style.Has(cell.AttrBold) {
		style = style.Bold(true)
	}
	if c.Style.Has(cell.AttrItalic) {
		style = style.Italic(true)
	}
	if c.Style.Has(cell.AttrUnderline) {
		style = style.Underline(true)
	}
	if c.Style.Has(cell.AttrStrikethrough) {
		style = style.Strikethrough(true)
	}
	if c.Style.Has(cell.AttrReverse) {
		style = style.Reverse(true)
	}
	if c.Style.Has(cell.AttrHidden) {
		return style.Render(" ")
	}
	r := c.Rune
	if r == 0 {
		r = ' '
	}
	width := 1
	if c.Wide {
		width = 2
	}
	return style.Width(width).Render(string(r))
}

// RenderEditor paints an editor pane's visible lines plus, when ghost is
// non-empty, the ghost-text suggestion rendered as a translucent overlay
// immediately after the cursor — never inserted into the buffer (§4.8).
func RenderEditor(lines []string, cursorCol, cursorRow int, ghost string, focused bool, zoneID string) string {
	out := make([]string, len(lines))
	copy(out, lines)
	if ghost != "" && cursorRow >= 0 && cursorRow < len(out) {
		line := out[cursorRow]
		cols := []rune(line)
		if cursorCol <= len(cols) {
			pre := string(cols[:cursorCol])
			post := string(cols[cursorCol:])
			out[cursorRow] = pre + GhostStyle().Render(ghost) + post
		}
	}
	border := BorderStyle()
	if focused {
		border = FocusedBorderStyle()
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border.GetForeground()).Render(strings.Join(out, "\n"))
	return zone.Mark(zoneID, box)
}
