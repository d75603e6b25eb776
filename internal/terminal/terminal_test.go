package terminal

import "testing"

func TestFeedBytesPrintsAndMoves(t *testing.T) {
	term := New("t1", 10, 3)
	term.FeedBytes([]byte("hi\r\n"))
	if got := term.Grid().Cursor(); got.Col != 0 || got.Row != 1 {
		t.Fatalf("cursor = %+v, want (0,1)", got)
	}
}

func TestFeedBytesChunkSplitMatchesWhole(t *testing.T) {
	a := New("a", 20, 5)
	b := New("b", 20, 5)
	data := []byte("\x1b[1;32mhello\x1b[0m world\r\n\x1b[2Kdone")

	a.FeedBytes(data)
	for i := 0; i < len(data); i++ {
		b.FeedBytes(data[i : i+1])
	}

	for r := 0; r < 5; r++ {
		for c := 0; c < 20; c++ {
			ca, cb := a.Grid().CellAt(c, r), b.Grid().CellAt(c, r)
			if ca.Rune != cb.Rune || ca.Style != cb.Style {
				t.Fatalf("cell (%d,%d) differs: whole=%+v chunked=%+v", c, r, ca, cb)
			}
		}
	}
}

func TestSgrColorApplied(t *testing.T) {
	term := New("t", 10, 1)
	term.FeedBytes([]byte("\x1b[31mX"))
	c := term.Grid().CellAt(0, 0)
	if c.Rune != 'X' {
		t.Fatalf("expected X, got %q", c.Rune)
	}
	if c.Style.FG.Value != 1 {
		t.Fatalf("expected indexed red (1), got %+v", c.Style.FG)
	}
}

func TestAltScreenModeSequence(t *testing.T) {
	term := New("t", 10, 3)
	term.FeedBytes([]byte("primary"))
	term.FeedBytes([]byte("\x1b[?1049h"))
	if !term.Grid().OnAlt() {
		t.Fatalf("expected alt screen active")
	}
	term.FeedBytes([]byte("\x1b[?1049l"))
	if term.Grid().OnAlt() {
		t.Fatalf("expected back on primary")
	}
	if term.Grid().CellAt(0, 0).Rune != 'p' {
		t.Fatalf("primary content should survive alt round-trip")
	}
}

func TestSelectLeftRightBuildsSelection(t *testing.T) {
	term := New("t", 20, 1)
	term.FeedBytes([]byte("hello world"))
	term.Grid().MoveTo(0, 0)
	term.SelectRight(5)
	if !term.Grid().SelectionActive() {
		t.Fatalf("expected selection to be active")
	}
	if got := term.Grid().Extract(); got != "hello" {
		t.Fatalf("Extract() = %q, want %q", got, "hello")
	}
}
