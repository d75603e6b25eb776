package editor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "alt+f":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f"), Alt: true}
	case "alt+b":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b"), Alt: true}
	case "alt+<":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("<"), Alt: true}
	case "alt+>":
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(">"), Alt: true}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDefaultKeymapInsertsAndBackspaces(t *testing.T) {
	e := New("", KeymapDefault, 40, 10)
	for _, r := range "hi" {
		e.Update(key(string(r)))
	}
	if e.Buffer.Text.String() != "hi" {
		t.Fatalf("got %q", e.Buffer.Text.String())
	}
	e.Update(key("backspace"))
	if e.Buffer.Text.String() != "h" {
		t.Fatalf("got %q", e.Buffer.Text.String())
	}
}

func TestUndoRedoCoalescesTyping(t *testing.T) {
	b := NewBuffer("")
	now := time.Now()
	b.InsertAt("a", now)
	b.InsertAt("b", now.Add(10*time.Millisecond))
	b.InsertAt("c", now.Add(20*time.Millisecond))
	if b.Text.String() != "abc" {
		t.Fatalf("got %q", b.Text.String())
	}
	b.Undo()
	if b.Text.String() != "" {
		t.Fatalf("expected coalesced undo to revert whole run, got %q", b.Text.String())
	}
}

func TestUndoRedoBreaksOnPause(t *testing.T) {
	b := NewBuffer("")
	now := time.Now()
	b.InsertAt("a", now)
	b.InsertAt("b", now.Add(time.Second)) // beyond coalesce window
	b.Undo()
	if b.Text.String() != "a" {
		t.Fatalf("expected partial undo to 'a', got %q", b.Text.String())
	}
	b.Redo()
	if b.Text.String() != "ab" {
		t.Fatalf("expected redo to restore 'ab', got %q", b.Text.String())
	}
}

func TestVimModeSwitchingInsertAndNormal(t *testing.T) {
	e := New("hello\nworld", KeymapVim, 40, 10)
	if e.Mode != ModeNormal {
		t.Fatalf("vim editor should start in normal mode")
	}
	e.Update(key("i"))
	if e.Mode != ModeInsert {
		t.Fatalf("expected insert mode after 'i'")
	}
	e.Update(key("esc"))
	if e.Mode != ModeNormal {
		t.Fatalf("expected normal mode after esc")
	}
}

func TestEmacsWordMotion(t *testing.T) {
	e := New("foo bar", KeymapEmacs, 40, 10)
	e.Update(key("alt+f"))
	if e.Buffer.Cursor.Pos.Col != 4 {
		t.Fatalf("expected col 4, got %d", e.Buffer.Cursor.Pos.Col)
	}
}

func TestVimBufferStartEndMotion(t *testing.T) {
	e := New("abc\ndefgh\nij", KeymapVim, 40, 10)
	e.Update(key("G"))
	if e.Buffer.Cursor.Pos.Line != 2 || e.Buffer.Cursor.Pos.Col != 2 {
		t.Fatalf("expected end of buffer after 'G', got %+v", e.Buffer.Cursor.Pos)
	}
	e.Update(key("g"))
	if e.Buffer.Cursor.Pos.Line != 0 || e.Buffer.Cursor.Pos.Col != 0 {
		t.Fatalf("expected start of buffer after 'g', got %+v", e.Buffer.Cursor.Pos)
	}
}

func TestEmacsBufferStartEndMotion(t *testing.T) {
	e := New("abc\ndefgh", KeymapEmacs, 40, 10)
	e.Update(key("alt+>"))
	if e.Buffer.Cursor.Pos.Line != 1 || e.Buffer.Cursor.Pos.Col != 5 {
		t.Fatalf("expected end of buffer after Alt+>, got %+v", e.Buffer.Cursor.Pos)
	}
	e.Update(key("alt+<"))
	if e.Buffer.Cursor.Pos.Line != 0 || e.Buffer.Cursor.Pos.Col != 0 {
		t.Fatalf("expected start of buffer after Alt+<, got %+v", e.Buffer.Cursor.Pos)
	}
}

func TestVimCommandModeSavesAndQuits(t *testing.T) {
	e := New("hi", KeymapVim, 40, 10)
	e.Update(key(":"))
	if e.Mode != ModeCommand {
		t.Fatalf("expected command mode after ':'")
	}
	for _, r := range "w" {
		e.Update(key(string(r)))
	}
	e.Update(key("enter"))
	if e.Mode != ModeNormal {
		t.Fatalf("expected normal mode after command line submit")
	}
	if e.LastCommand != "w" {
		t.Fatalf("expected LastCommand %q, got %q", "w", e.LastCommand)
	}
}

func TestEmacsCtrlXSavesViaLastCommand(t *testing.T) {
	e := New("hi", KeymapEmacs, 40, 10)
	e.Update(key("ctrl+x"))
	if e.LastCommand != "w" {
		t.Fatalf("expected LastCommand %q after ctrl+x, got %q", "w", e.LastCommand)
	}
}

func TestVimVisualXDeletesSelectionLikeD(t *testing.T) {
	e := New("hello", KeymapVim, 40, 10)
	e.Update(key("v"))
	if e.Mode != ModeVisual {
		t.Fatalf("expected visual mode after 'v'")
	}
	e.Update(key("l"))
	e.Update(key("l"))
	e.Update(key("x"))
	if e.Mode != ModeNormal {
		t.Fatalf("expected normal mode after visual 'x' delete")
	}
	if e.Buffer.Text.String() == "hello" {
		t.Fatalf("expected visual 'x' to delete the selection, got %q", e.Buffer.Text.String())
	}
}

func TestBreakCoalescingOnModeChange(t *testing.T) {
	e := New("", KeymapVim, 40, 10)
	e.Update(key("i"))
	e.Update(key("a"))
	e.Update(key("esc"))
	e.Update(key("a")) // vim append: insert after cursor
	e.Update(key("b"))
	if e.Buffer.Text.String() != "ab" {
		t.Fatalf("got %q", e.Buffer.Text.String())
	}
	e.Update(key("esc"))
	e.Update(key("u"))
	if e.Buffer.Text.String() != "a" {
		t.Fatalf("expected undo to revert only the edit after the mode change, got %q", e.Buffer.Text.String())
	}
}
