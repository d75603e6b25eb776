package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// commandItem adapts a Command to list.Item so Registry entries can be
// driven through bubbles/list's own filtering and selection.
type commandItem struct{ Command }

func (c commandItem) Title() string       { return c.Label }
func (c commandItem) Description() string { return c.Category }
func (c commandItem) FilterValue() string { return c.Label + " " + c.Category }

// Palette is the command-palette popup: a bubbles/textinput query box
// over a bubbles/list of a Registry's commands, rendered as a bordered
// box the same way the teacher renders its ops list.
type Palette struct {
	reg   *Registry
	input textinput.Model
	list  list.Model
}

// NewPalette opens a palette bound to reg with an empty filter.
func NewPalette(reg *Registry) *Palette {
	d := list.NewDefaultDelegate()
	s := list.NewDefaultItemStyles()
	s.NormalTitle = s.NormalTitle.Foreground(Vitesse.Text)
	s.NormalDesc = s.NormalDesc.Foreground(Vitesse.Secondary)
	s.SelectedTitle = s.SelectedTitle.
		BorderForeground(Vitesse.Primary).
		Foreground(Vitesse.Primary)
	s.SelectedDesc = s.SelectedDesc.Foreground(Vitesse.Primary)
	s.FilterMatch = lipgloss.NewStyle().Foreground(Vitesse.Yellow).Underline(true)
	d.Styles = s

	l := list.New(itemsOf(reg.All()), d, 40, 10)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false) // the textinput above drives filtering instead

	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "command..."
	ti.Focus()

	return &Palette{reg: reg, input: ti, list: l}
}

func itemsOf(cmds []Command) []list.Item {
	items := make([]list.Item, 0, len(cmds))
	for _, c := range cmds {
		items = append(items, commandItem{c})
	}
	return items
}

// Update feeds msg to the query input and the list, re-filtering the list
// by label/category whenever the query text changes. esc/enter are
// handled by the caller, which owns popup lifecycle.
func (p *Palette) Update(msg tea.Msg) tea.Cmd {
	before := p.input.Value()
	var cmd1, cmd2 tea.Cmd
	p.input, cmd1 = p.input.Update(msg)
	if p.input.Value() != before {
		p.applyFilter()
	}
	p.list, cmd2 = p.list.Update(msg)
	return tea.Batch(cmd1, cmd2)
}

func (p *Palette) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(p.input.Value()))
	all := p.reg.All()
	if q == "" {
		p.list.SetItems(itemsOf(all))
		return
	}
	out := make([]Command, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Label), q) || strings.Contains(strings.ToLower(c.Category), q) {
			out = append(out, c)
		}
	}
	p.list.SetItems(itemsOf(out))
}

// Accept runs the currently selected command's handler and reports
// whether one was available to run.
func (p *Palette) Accept() bool {
	item, ok := p.list.SelectedItem().(commandItem)
	if !ok {
		return false
	}
	return p.reg.Run(item.ID)
}

// Render draws the palette as a bordered box sized to width, with the
// filter line on top and the list below it.
func (p *Palette) Render(width int) string {
	inner := width - 2
	if inner < 20 {
		inner = 20
	}
	border := BorderStyle()
	fill := FillBG()

	p.list.SetSize(inner, 10)

	var b strings.Builder
	b.WriteString(border.Render("╭"+strings.Repeat("─", inner)+"╮") + "\n")
	b.WriteString(border.Render("│"))
	b.WriteString(fill.Width(inner).Render(p.input.View()))
	b.WriteString(border.Render("│\n"))
	for _, line := range strings.Split(p.list.View(), "\n") {
		b.WriteString(border.Render("│"))
		b.WriteString(fill.Width(inner).Render(line))
		b.WriteString(border.Render("│\n"))
	}
	b.WriteString(border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return b.String()
}
