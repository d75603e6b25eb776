package grid

import "testing"

func TestPutAndCursorAdvance(t *testing.T) {
	g := New(10, 3)
	g.Put('h', 1)
	g.Put('i', 1)
	if got := g.Cursor(); got.Col != 2 || got.Row != 0 {
		t.Fatalf("cursor = %+v, want (2,0)", got)
	}
	if g.CellAt(0, 0).Rune != 'h' || g.CellAt(1, 0).Rune != 'i' {
		t.Fatalf("unexpected cells: %q %q", g.CellAt(0, 0).Rune, g.CellAt(1, 0).Rune)
	}
}

func TestAutoWrapDefersToNextPut(t *testing.T) {
	g := New(3, 2)
	g.Put('a', 1)
	g.Put('b', 1)
	g.Put('c', 1)
	if got := g.Cursor(); got.Row != 0 {
		t.Fatalf("should not have wrapped yet, cursor=%+v", got)
	}
	g.Put('d', 1)
	if got := g.Cursor(); got.Row != 1 || got.Col != 1 {
		t.Fatalf("expected wrap to row 1 col 1, got %+v", got)
	}
	if g.CellAt(0, 1).Rune != 'd' {
		t.Fatalf("expected 'd' at (0,1), got %q", g.CellAt(0, 1).Rune)
	}
}

func TestScrollUpPushesScrollbackOnPrimaryOnly(t *testing.T) {
	g := New(5, 3)
	g.Put('x', 1)
	g.ScrollUp(1)
	if g.ScrollbackLen() != 1 {
		t.Fatalf("expected 1 scrollback line, got %d", g.ScrollbackLen())
	}
	g.SwitchToAlt(true)
	g.ScrollUp(1)
	if g.ScrollbackLen() != 1 {
		t.Fatalf("alt-buffer scroll must not push scrollback, got %d", g.ScrollbackLen())
	}
}

func TestScrollUpThenDownIsIdentityOnAlt(t *testing.T) {
	g := New(4, 4)
	g.SwitchToAlt(false)
	for i, r := range []rune{'a', 'b', 'c', 'd'} {
		g.MoveTo(0, i)
		g.Put(r, 1)
	}
	before := snapshotRunes(g)
	g.ScrollUp(2)
	g.ScrollDown(2)
	after := snapshotRunes(g)
	// Rows that scrolled out are replaced by blanks, not restored, which is
	// "identity modulo cleared cells" per the spec's testable property: the
	// surviving interior rows must match.
	for r := 0; r < 4; r++ {
		if before[r] != after[r] && !isBlankRow(after[r]) {
			t.Fatalf("row %d changed unexpectedly: %q -> %q", r, before[r], after[r])
		}
	}
}

func snapshotRunes(g *Grid) []string {
	out := make([]string, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		out[r] = g.rowText(r)
	}
	return out
}

func isBlankRow(s string) bool { return s == "" }

func TestResizeToOneByOneNeverPanics(t *testing.T) {
	g := New(80, 24)
	g.Put('z', 1)
	if err := g.Resize(1, 1); err != nil {
		t.Fatalf("resize error: %v", err)
	}
	c := g.Cursor()
	if c.Col != 0 || c.Row != 0 {
		t.Fatalf("cursor should clamp into 1x1, got %+v", c)
	}
}

func TestResizeRejectsZero(t *testing.T) {
	g := New(10, 10)
	if err := g.Resize(0, 5); err == nil {
		t.Fatalf("expected InvalidResize error")
	}
}

func TestSelectionExtractCharMode(t *testing.T) {
	g := New(11, 3)
	for i, r := range "hello world" {
		g.MoveTo(i, 0)
		g.Put(r, 1)
	}
	g.BeginSelection(Point{Col: 6, Row: 0}, SelChar)
	g.UpdateSelection(Point{Col: 10, Row: 0})
	if got := g.Extract(); got != "world" {
		t.Fatalf("Extract() = %q, want %q", got, "world")
	}
}

func TestSelectionExtractTrimsTrailingSpace(t *testing.T) {
	g := New(10, 1)
	for i, r := range "hi" {
		g.MoveTo(i, 0)
		g.Put(r, 1)
	}
	g.BeginSelection(Point{Col: 0, Row: 0}, SelChar)
	g.UpdateSelection(Point{Col: 9, Row: 0})
	if got := g.Extract(); got != "hi" {
		t.Fatalf("Extract() = %q, want %q", got, "hi")
	}
}

func TestDamageTrackingClearsOnTake(t *testing.T) {
	g := New(5, 5)
	g.Put('a', 1)
	d := g.TakeDamage()
	if len(d) == 0 {
		t.Fatalf("expected damage after Put")
	}
	if d2 := g.TakeDamage(); len(d2) != 0 {
		t.Fatalf("expected damage cleared after TakeDamage, got %v", d2)
	}
}

func TestEraseDisplayAll(t *testing.T) {
	g := New(5, 2)
	g.Put('a', 1)
	g.MoveTo(0, 1)
	g.Put('b', 1)
	g.EraseDisplay(EraseAll)
	if g.rowText(0) != "" || g.rowText(1) != "" {
		t.Fatalf("expected blank grid after EraseAll")
	}
}

func TestAltScreenClearsOnEnterAndRestoresCursor(t *testing.T) {
	g := New(5, 2)
	g.Put('A', 1)
	before := g.Cursor()
	g.SwitchToAlt(true)
	g.Put('B', 1)
	g.SwitchToPrimary(true)
	if g.rowText(0) != "A" {
		t.Fatalf("primary buffer content lost: %q", g.rowText(0))
	}
	if g.Cursor() != before {
		t.Fatalf("cursor not restored: got %+v, want %+v", g.Cursor(), before)
	}
}
