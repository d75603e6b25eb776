package eventloop

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"ratline/internal/editor"
	"ratline/internal/layout"
	"ratline/internal/mux"
	"ratline/internal/ui"
)

// View composes one frame: the multiplexer panes (and editor panel, when
// visible) side by side, the status bar along the bottom, and any open
// popup layered on top, in the painter's order §4.11 implies (content
// first, overlays last).
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}

	termArea, edArea, showEditor := a.splitAreas()
	content := a.renderContent(termArea, edArea, showEditor)
	bar := a.renderStatusBar()

	frame := content
	if bar != "" {
		frame = content + "\n" + bar
	}

	if overlay := a.renderOverlay(); overlay != "" {
		return compositeOverlay(frame, overlay, a.width, a.height)
	}
	return frame
}

// compositeOverlay lays overlay on top of frame at the row range
// layout.Place centers it within, per §4.11: overlays are modal but the
// base composition stays visible beneath/around them, not replaced by
// them. Popup renderers already draw full-width boxes, so placement only
// needs to pick the vertical offset; rows the overlay doesn't cover keep
// their frame content (panes above/below it, the status bar).
func compositeOverlay(frame, overlay string, width, height int) string {
	overlayLines := strings.Split(overlay, "\n")
	rect := layout.Place(layout.Overlay{W: width, H: len(overlayLines), Anchor: layout.AnchorCenter}, layout.Rect{W: width, H: height})

	baseLines := strings.Split(frame, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, "")
	}

	for i := 0; i < rect.H && i < len(overlayLines); i++ {
		y := rect.Y + i
		if y < 0 || y >= len(baseLines) {
			continue
		}
		baseLines[y] = overlayLines[i]
	}
	return strings.Join(baseLines, "\n")
}

func (a *App) renderContent(termArea, edArea layout.Rect, showEditor bool) string {
	t := a.mux.ActiveTab()
	if t == nil {
		return strings.Repeat("\n", a.contentArea().H)
	}

	term := a.renderPanes(t)
	if !showEditor {
		return term
	}

	ed := a.renderEditor(edArea)
	return lipgloss.JoinHorizontal(lipgloss.Top, term, ed)
}

// renderPanes arranges a tab's rendered pane boxes by Slot to match its
// Layout: Single is one box, VerticalSplit is a row of two, Quad2x2 is a
// 2x2 grid.
func (a *App) renderPanes(t *mux.Tab) string {
	boxes := make([]string, len(t.Panes))
	for _, pid := range t.Panes {
		p := a.mux.Pane(pid)
		if p == nil {
			continue
		}
		focused := pid == t.Focused && a.focus == FocusTerminal
		box := ui.RenderTerminal(p.Terminal.Grid(), a.theme, focused, paneZoneID(pid))
		if p.Slot >= 0 && p.Slot < len(boxes) {
			boxes[p.Slot] = box
		}
	}

	switch t.Layout {
	case mux.VerticalSplit:
		return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
	case mux.Quad2x2:
		top := lipgloss.JoinHorizontal(lipgloss.Top, boxes[0], boxes[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, boxes[2], boxes[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	default:
		if len(boxes) == 0 {
			return ""
		}
		return boxes[0]
	}
}

func (a *App) renderEditor(area layout.Rect) string {
	b := a.activeBuffer()
	if b == nil {
		return ""
	}
	col, row := b.CursorScreenPos()
	ghost := ""
	if a.focus == FocusEditor {
		ghost = a.ghost
	}
	return ui.RenderEditor(b.Lines(), col, row, ghost, a.focus == FocusEditor, editorZoneID)
}

func (a *App) renderStatusBar() string {
	b := a.activeBuffer()
	mode := "term"
	path := ""
	dirty := false
	message := a.statusMessage
	if b != nil {
		path = b.Path
		dirty = b.Dirty
		mode = modeLabel(b.Mode)
		if b.Mode == editor.ModeCommand {
			message = ":" + b.CommandLine
		}
	}
	bar := ui.StatusBar{
		Mode:     mode,
		FilePath: path,
		Dirty:    dirty,
		Message:  message,
		Git:      a.git,
		Now:      a.now,
	}
	return bar.Render(a.width)
}

// renderOverlay draws the topmost entry of the overlay stack, the same
// ordering handleKey uses to route input; lspProgress is a passive
// notification, not pushed onto the stack, and only shows when nothing
// modal is on top of it.
func (a *App) renderOverlay() string {
	if top, ok := a.overlays.Top(); ok {
		switch top.ID {
		case overlayConfirm:
			if a.confirm != nil {
				return a.confirm.popup.Render(a.width)
			}
		case overlayPalette:
			if a.palette != nil {
				return a.palette.Render(a.width)
			}
		}
	}
	if a.lspProgress != nil {
		return a.lspProgress.Render(a.width)
	}
	return ""
}

func modeLabel(m editor.Mode) string {
	switch m {
	case editor.ModeInsert:
		return "insert"
	case editor.ModeNormal:
		return "normal"
	case editor.ModeVisual:
		return "visual"
	case editor.ModeCommand:
		return "command"
	default:
		return "term"
	}
}
