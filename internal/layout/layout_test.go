package layout

import (
	"testing"

	"ratline/internal/mux"
)

func TestPanesSingleReturnsFullScreen(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 80, H: 24}
	rects := Panes(mux.Single, screen)
	if len(rects) != 1 || rects[0] != screen {
		t.Fatalf("expected single full-screen rect, got %v", rects)
	}
}

func TestPanesVerticalSplitsWidthInHalf(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 80, H: 24}
	rects := Panes(mux.VerticalSplit, screen)
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
	if rects[0].W+rects[1].W != screen.W {
		t.Fatalf("split widths should sum to screen width, got %d+%d", rects[0].W, rects[1].W)
	}
	if rects[1].X != rects[0].W {
		t.Fatalf("second pane should start where the first ends")
	}
}

func TestPanesQuad2x2FourCorners(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 80, H: 24}
	rects := Panes(mux.Quad2x2, screen)
	if len(rects) != 4 {
		t.Fatalf("expected 4 rects, got %d", len(rects))
	}
	if rects[0].X != 0 || rects[0].Y != 0 {
		t.Fatalf("top-left should be at origin, got %v", rects[0])
	}
	if rects[3].X+rects[3].W != screen.W || rects[3].Y+rects[3].H != screen.H {
		t.Fatalf("bottom-right should reach the screen edge, got %v", rects[3])
	}
}

func TestPlaceClampsToScreen(t *testing.T) {
	screen := Rect{X: 0, Y: 0, W: 20, H: 10}
	o := Overlay{W: 30, H: 20, Anchor: AnchorCenter}
	r := Place(o, screen)
	if r.W > screen.W || r.H > screen.H {
		t.Fatalf("overlay should be clamped to fit the screen, got %v", r)
	}
	if r.X < screen.X || r.Y < screen.Y {
		t.Fatalf("overlay should not start outside the screen, got %v", r)
	}
}

func TestStackPushPopOrder(t *testing.T) {
	var s Stack
	screen := Rect{X: 0, Y: 0, W: 40, H: 20}
	s.Push("a", Overlay{W: 10, H: 5, Anchor: AnchorCenter}, screen)
	s.Push("b", Overlay{W: 10, H: 5, Anchor: AnchorTopLeft}, screen)
	top, ok := s.Top()
	if !ok || top.ID != "b" {
		t.Fatalf("expected top entry to be the most recently pushed")
	}
	s.Pop()
	top, ok = s.Top()
	if !ok || top.ID != "a" {
		t.Fatalf("expected top entry to be 'a' after popping 'b'")
	}
}

func TestStackRemoveByID(t *testing.T) {
	var s Stack
	screen := Rect{X: 0, Y: 0, W: 40, H: 20}
	s.Push("a", Overlay{W: 10, H: 5}, screen)
	s.Push("b", Overlay{W: 10, H: 5}, screen)
	s.Remove("a")
	if len(s.Entries()) != 1 || s.Entries()[0].ID != "b" {
		t.Fatalf("expected only 'b' to remain, got %v", s.Entries())
	}
}
