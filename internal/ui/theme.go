// Package ui holds the lipgloss rendering layer shared by the event loop:
// the theme sink, command registry, popup/palette chrome, and status bar,
// adapted from the teacher's dashboard rendering into terminal/editor
// pane chrome.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"ratline/internal/cell"
)

// Theme is the runtime descriptor external theming collaborators push in
// at render time (§6): default fg/bg, cursor and selection colors, and a
// 256-entry indexed palette override.
type Theme struct {
	FG        lipgloss.Color
	BG        lipgloss.Color
	Cursor    lipgloss.Color
	Selection lipgloss.Color
	Palette   [256]lipgloss.Color
}

// DefaultTheme is Vitesse, matching the teacher's fixed palette, used
// unless the config names a theme file, which LoadThemeFile layers on top
// of it.
func DefaultTheme() Theme {
	t := Theme{
		FG:        Vitesse.Text,
		BG:        Vitesse.Bg,
		Cursor:    Vitesse.Primary,
		Selection: Vitesse.BgSoft,
	}
	for i := range t.Palette {
		t.Palette[i] = lipgloss.Color(ansi256ToHex(i))
	}
	return t
}

// ansi256ToHex is a placeholder 8-color cycle for indices that have no
// better default; a real theme collaborator overwrites the full table.
func ansi256ToHex(i int) string {
	basic := []string{
		"#000000", "#cb7676", "#4d9375", "#e6cc77",
		"#6394bf", "#d9739f", "#5eaab5", "#dbd7ca",
	}
	return basic[i%len(basic)]
}

// Resolve maps a cell.Color (indexed, RGB, or default) through Theme into
// a lipgloss.Color usable for rendering.
func (t Theme) Resolve(c cell.Color, isForeground bool) lipgloss.Color {
	switch c.Kind {
	case cell.ColorIndexed:
		return t.Palette[byte(c.Value)]
	case cell.ColorRGB:
		r := (c.Value >> 16) & 0xff
		g := (c.Value >> 8) & 0xff
		b := c.Value & 0xff
		return lipgloss.Color(hex(r, g, b))
	default:
		if isForeground {
			return t.FG
		}
		return t.BG
	}
}

func hex(r, g, b uint32) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 7)
	out[0] = '#'
	put := func(i int, v uint32) {
		out[i] = digits[(v>>4)&0xf]
		out[i+1] = digits[v&0xf]
	}
	put(1, r)
	put(3, g)
	put(5, b)
	return string(out)
}
