package eventloop

import (
	"ratline/internal/layout"
	"ratline/internal/mux"
)

// paneRectsFor maps each pane in t to its Rect within screen, matching
// layout.Panes' slot-ordered output against each pane's Slot field.
func (a *App) paneRectsFor(t *mux.Tab, screen layout.Rect) map[mux.PaneID]layout.Rect {
	rects := layout.Panes(t.Layout, screen)
	out := make(map[mux.PaneID]layout.Rect, len(t.Panes))
	for _, pid := range t.Panes {
		p := a.mux.Pane(pid)
		if p == nil {
			continue
		}
		if p.Slot >= 0 && p.Slot < len(rects) {
			out[pid] = rects[p.Slot]
		}
	}
	return out
}
