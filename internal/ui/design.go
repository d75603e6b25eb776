package ui

import "github.com/charmbracelet/lipgloss"

// designTheme centralizes the default TUI color palette and common
// styles, kept from the teacher almost verbatim since it's already
// generic chrome, not domain-specific to either app.
//
// Palette is based on Vitesse Dark Soft:
// https://github.com/antfu/vscode-theme-vitesse/blob/main/themes/vitesse-dark-soft.json
type designTheme struct {
	Primary lipgloss.Color
	Blue    lipgloss.Color
	Yellow  lipgloss.Color
	Magenta lipgloss.Color
	Cyan    lipgloss.Color
	Red     lipgloss.Color

	Text      lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color

	Bg     lipgloss.Color
	BgSoft lipgloss.Color
	Border lipgloss.Color

	OnAccent lipgloss.Color

	BarFG lipgloss.AdaptiveColor
	BarBG lipgloss.AdaptiveColor
}

// Vitesse is the built-in default theme. A theme file loaded through
// LoadThemeFile overrides it at the Theme level; these primitives stay as
// the popup/border chrome regardless of the active cell-rendering theme.
var Vitesse = designTheme{
	Primary: lipgloss.Color("#4d9375"),
	Blue:    lipgloss.Color("#6394bf"),
	Yellow:  lipgloss.Color("#e6cc77"),
	Magenta: lipgloss.Color("#d9739f"),
	Cyan:    lipgloss.Color("#5eaab5"),
	Red:     lipgloss.Color("#cb7676"),

	Text:      lipgloss.Color("#dbd7caee"),
	Secondary: lipgloss.Color("#bfbaaa"),
	Muted:     lipgloss.Color("#dedcd590"),

	Bg:     lipgloss.Color("#181818"),
	BgSoft: lipgloss.Color("#292929"),
	Border: lipgloss.Color("#252525"),

	OnAccent: lipgloss.Color("#222"),

	BarFG: lipgloss.AdaptiveColor{Light: "#343433", Dark: "#bfbaaa"},
	BarBG: lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#222"},
}

// BorderStyle returns a style with the standard border color.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Border)
}

// FocusedBorderStyle returns a style for the focused pane's border.
func FocusedBorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Primary)
}

// FillBG returns a style with the base background color.
func FillBG() lipgloss.Style {
	return lipgloss.NewStyle().Background(Vitesse.Bg)
}

// ChipStyle returns a style for colored status-bar chips.
func ChipStyle(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.OnAccent).Background(bg).Padding(0, 1)
}

// StatusBarBase returns the base style for the status bar background/foreground.
func StatusBarBase() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.BarFG).Background(Vitesse.BarBG)
}

// GhostStyle renders ghost-text suggestions: dim and italic, never
// mistakable for real buffer content.
func GhostStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Vitesse.Muted).Italic(true)
}
