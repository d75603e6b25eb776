// Package layout computes pane rectangles from a multiplexer's split
// layout and manages overlay stacking for popups (command palette,
// confirm dialogs) positioned either on a named 3x3 grid
// or at an absolute offset.
package layout

import "ratline/internal/mux"

// Rect is a screen-space rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Panes computes one Rect per pane slot for a tab's layout within the given
// screen rectangle, in slot order (matching mux.Pane.Slot).
func Panes(l mux.SplitLayout, screen Rect) []Rect {
	switch l {
	case mux.VerticalSplit:
		left := screen.W / 2
		return []Rect{
			{X: screen.X, Y: screen.Y, W: left, H: screen.H},
			{X: screen.X + left, Y: screen.Y, W: screen.W - left, H: screen.H},
		}
	case mux.Quad2x2:
		left := screen.W / 2
		top := screen.H / 2
		return []Rect{
			{X: screen.X, Y: screen.Y, W: left, H: top},
			{X: screen.X + left, Y: screen.Y, W: screen.W - left, H: top},
			{X: screen.X, Y: screen.Y + top, W: left, H: screen.H - top},
			{X: screen.X + left, Y: screen.Y + top, W: screen.W - left, H: screen.H - top},
		}
	default:
		return []Rect{screen}
	}
}

// Anchor names a position on a 3x3 named grid for overlay placement.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTopCenter
	AnchorTopRight
	AnchorMiddleLeft
	AnchorCenter
	AnchorMiddleRight
	AnchorBottomLeft
	AnchorBottomCenter
	AnchorBottomRight
)

// Overlay positions a popup of size (w, h) within screen, either anchored
// to a named 3x3 grid cell or at an absolute (x, y) offset when UseOffset
// is true.
type Overlay struct {
	W, H      int
	Anchor    Anchor
	UseOffset bool
	X, Y      int
}

// Place resolves an Overlay to a concrete Rect clamped to fit inside
// screen.
func Place(o Overlay, screen Rect) Rect {
	w, h := o.W, o.H
	if w > screen.W {
		w = screen.W
	}
	if h > screen.H {
		h = screen.H
	}
	if o.UseOffset {
		return clampRect(Rect{X: screen.X + o.X, Y: screen.Y + o.Y, W: w, H: h}, screen)
	}

	col := int(o.Anchor) % 3
	row := int(o.Anchor) / 3
	x := screen.X + col*(screen.W-w)/2
	y := screen.Y + row*(screen.H-h)/2
	return clampRect(Rect{X: x, Y: y, W: w, H: h}, screen)
}

func clampRect(r, bounds Rect) Rect {
	if r.X < bounds.X {
		r.X = bounds.X
	}
	if r.Y < bounds.Y {
		r.Y = bounds.Y
	}
	if r.X+r.W > bounds.X+bounds.W {
		r.X = bounds.X + bounds.W - r.W
	}
	if r.Y+r.H > bounds.Y+bounds.H {
		r.Y = bounds.Y + bounds.H - r.H
	}
	return r
}

// Stack is an ordered set of active overlays, topmost last. The event loop
// renders tab/pane content first, then only the topmost entry (Top) over
// it; entries beneath the top are not drawn.
type Stack struct {
	entries []StackEntry
}

// StackEntry pairs a placed overlay with an id so it can be dismissed.
type StackEntry struct {
	ID   string
	Rect Rect
}

func (s *Stack) Push(id string, o Overlay, screen Rect) {
	s.entries = append(s.entries, StackEntry{ID: id, Rect: Place(o, screen)})
}

func (s *Stack) Pop() {
	if len(s.entries) > 0 {
		s.entries = s.entries[:len(s.entries)-1]
	}
}

func (s *Stack) Remove(id string) {
	out := s.entries[:0]
	for _, e := range s.entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	s.entries = out
}

func (s *Stack) Top() (StackEntry, bool) {
	if len(s.entries) == 0 {
		return StackEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

func (s *Stack) Entries() []StackEntry { return s.entries }

func (s *Stack) Empty() bool { return len(s.entries) == 0 }
