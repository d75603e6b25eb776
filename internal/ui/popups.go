package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// Confirm is a modal yes/no dialog, e.g. the dirty-buffers-on-quit prompt
// (§4.10): it consumes input until answered and reinjects the decision as
// an event once it is.
type Confirm struct {
	Prompt string
}

// Render draws the confirm box.
func (c Confirm) Render(width int) string {
	inner := width - 4
	if inner < 20 {
		inner = 20
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Vitesse.Red).
		Padding(0, 1).
		Width(inner)
	return box.Render(c.Prompt + "\n\n[y] confirm   [n] cancel   [esc] cancel")
}

// LSPProgress shows a spinner and a determinate progress bar while a
// language server brings itself up within its initialize timeout,
// repurposing the teacher's sequential upgrade-progress flow.
type LSPProgress struct {
	Spinner  spinner.Model
	Bar      progress.Model
	Language string
	Step     string
	Fraction float64
}

// NewLSPProgress creates the spinner/progress pair for language.
func NewLSPProgress(language string) *LSPProgress {
	s := spinner.New()
	s.Spinner = spinner.Dot
	return &LSPProgress{
		Spinner:  s,
		Bar:      progress.New(progress.WithDefaultGradient()),
		Language: language,
		Step:     "spawning",
	}
}

// Render draws the spinner, step label, and progress bar.
func (p *LSPProgress) Render(width int) string {
	title := fmt.Sprintf("%s starting language server for %s…", p.Spinner.View(), p.Language)
	bar := p.Bar.ViewAs(p.Fraction)
	return lipgloss.JoinVertical(lipgloss.Left, title, p.Step, bar)
}

// HelpFooter renders the active keymap's bindings using bubbles/help, the
// same component the teacher would reach for to show contextual shortcuts.
type HelpFooter struct {
	Model help.Model
}

// NewHelpFooter creates a help footer with the default key-map style.
func NewHelpFooter() HelpFooter {
	return HelpFooter{Model: help.New()}
}

// Render draws the footer for the given bindings.
func (h HelpFooter) Render(bindings []key.Binding) string {
	var b strings.Builder
	for i, bd := range bindings {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(h.Model.Styles.ShortKey.Render(bd.Help().Key))
		b.WriteString(" ")
		b.WriteString(h.Model.Styles.ShortDesc.Render(bd.Help().Desc))
	}
	return b.String()
}
