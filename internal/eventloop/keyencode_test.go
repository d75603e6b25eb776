package eventloop

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestEncodeKeyPrintableRune(t *testing.T) {
	got := encodeKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")}, false)
	if string(got) != "a" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyEnterIsCarriageReturn(t *testing.T) {
	got := encodeKey(tea.KeyMsg{Type: tea.KeyEnter}, false)
	if string(got) != "\r" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyArrowsAreCSISequences(t *testing.T) {
	cases := map[tea.KeyType]string{
		tea.KeyUp:    "\x1b[A",
		tea.KeyDown:  "\x1b[B",
		tea.KeyRight: "\x1b[C",
		tea.KeyLeft:  "\x1b[D",
	}
	for kt, want := range cases {
		got := encodeKey(tea.KeyMsg{Type: kt}, false)
		if string(got) != want {
			t.Fatalf("key %v: got %q want %q", kt, got, want)
		}
	}
}

func TestEncodeKeyArrowsUseSS3WhenAppCursorKeysSet(t *testing.T) {
	cases := map[tea.KeyType]string{
		tea.KeyUp:    "\x1bOA",
		tea.KeyDown:  "\x1bOB",
		tea.KeyRight: "\x1bOC",
		tea.KeyLeft:  "\x1bOD",
	}
	for kt, want := range cases {
		got := encodeKey(tea.KeyMsg{Type: kt}, true)
		if string(got) != want {
			t.Fatalf("key %v: got %q want %q", kt, got, want)
		}
	}
}

func TestEncodeKeyBackspaceIsDEL(t *testing.T) {
	got := encodeKey(tea.KeyMsg{Type: tea.KeyBackspace}, false)
	if len(got) != 1 || got[0] != 0x7f {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeKeyCtrlCIsETX(t *testing.T) {
	got := encodeKey(tea.KeyMsg{Type: tea.KeyCtrlC}, false)
	if len(got) != 1 || got[0] != 0x03 {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeMouseReportSGR(t *testing.T) {
	msg := tea.MouseMsg{X: 4, Y: 9, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
	got := encodeMouseReport(msg, true)
	if string(got) != "\x1b[<0;5;10M" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeMouseReportX10ReleaseUsesButtonCode3(t *testing.T) {
	msg := tea.MouseMsg{X: 0, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
	got := encodeMouseReport(msg, false)
	want := []byte{0x1b, '[', 'M', byte(3 + 32), byte(1 + 32), byte(1 + 32)}
	if string(got) != string(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
