package editor

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Editor composes a Buffer with modal keymap dispatch and a scrolling
// viewport.Model, repurposed here to track the cursor instead of a
// static render.
type Editor struct {
	Buffer *Buffer
	Keymap KeymapID
	Mode   Mode

	// CommandLine is the in-progress `:`-command text while Mode is
	// ModeCommand, for the status line to render.
	CommandLine string
	// LastCommand is set to the submitted command line on Enter and
	// cleared by the caller after handling it (App.runEditorCommand).
	LastCommand string

	clipboard string
	viewport  viewport.Model
}

// New creates an Editor over initial content, sized to fit a pane of
// width x height.
func New(initial string, keymap KeymapID, width, height int) *Editor {
	vp := viewport.New(width, height)
	mode := ModeInsert
	if keymap == KeymapVim {
		mode = ModeNormal
	}
	e := &Editor{Buffer: NewBuffer(initial), Keymap: keymap, Mode: mode, viewport: vp}
	e.syncViewport()
	return e
}

func (e *Editor) SetSize(width, height int) {
	e.viewport.Width = width
	e.viewport.Height = height
	e.syncViewport()
}

// Update handles one key event, dispatching through the active keymap's
// binding table and applying the resolved Action to Buffer.
func (e *Editor) Update(msg tea.KeyMsg) {
	now := time.Now()
	key := msg.String()
	if e.Mode == ModeCommand {
		e.updateCommandLine(key)
		return
	}
	action, bound := Resolve(e.Keymap, e.Mode, key)
	if !bound {
		if e.Mode == ModeInsert && len([]rune(key)) == 1 {
			e.Buffer.InsertAt(key, now)
			e.syncViewport()
		}
		return
	}
	e.apply(action, now)
	e.syncViewport()
}

// updateCommandLine edits the `:`-command text. Enter hands the trimmed
// line to LastCommand for the caller to interpret (":w", ":q", ...); this
// is a minimal command line, not a general command language.
func (e *Editor) updateCommandLine(key string) {
	switch key {
	case "esc":
		e.Mode = ModeNormal
		e.CommandLine = ""
	case "enter":
		e.LastCommand = strings.TrimSpace(e.CommandLine)
		e.Mode = ModeNormal
		e.CommandLine = ""
	case "backspace":
		if n := len(e.CommandLine); n > 0 {
			e.CommandLine = e.CommandLine[:n-1]
		}
	default:
		if r := []rune(key); len(r) == 1 {
			e.CommandLine += key
		}
	}
}

func (e *Editor) apply(a Action, now time.Time) {
	b := e.Buffer
	switch a {
	case ActionInsertRune:
		// handled via the unbound-key fallback in Update
	case ActionBackspace:
		b.Backspace(now)
	case ActionDeleteForward:
		b.DeleteForward(now)
	case ActionMoveLeft:
		b.Cursor.MoveLeft(b.Text)
		b.BreakCoalescing()
	case ActionMoveRight:
		b.Cursor.MoveRight(b.Text)
		b.BreakCoalescing()
	case ActionMoveUp:
		b.Cursor.MoveUp(b.Text)
		b.BreakCoalescing()
	case ActionMoveDown:
		b.Cursor.MoveDown(b.Text)
		b.BreakCoalescing()
	case ActionMoveLineStart:
		b.Cursor.MoveLineStart()
		b.BreakCoalescing()
	case ActionMoveLineEnd:
		b.Cursor.MoveLineEnd(b.Text)
		b.BreakCoalescing()
	case ActionMoveWordForward:
		b.Cursor.MoveWordForward(b.Text)
		b.BreakCoalescing()
	case ActionMoveWordBackward:
		b.Cursor.MoveWordBackward(b.Text)
		b.BreakCoalescing()
	case ActionMoveBufferStart:
		b.Cursor.MoveBufferStart()
		b.BreakCoalescing()
	case ActionMoveBufferEnd:
		b.Cursor.MoveBufferEnd(b.Text)
		b.BreakCoalescing()
	case ActionNewline:
		b.InsertAt("\n", now)
	case ActionUndo:
		b.Undo()
	case ActionRedo:
		b.Redo()
	case ActionEnterInsertMode:
		e.Mode = ModeInsert
		b.BreakCoalescing()
	case ActionEnterInsertModeAfter:
		b.Cursor.MoveRight(b.Text)
		e.Mode = ModeInsert
		b.BreakCoalescing()
	case ActionEnterNormalMode:
		e.Mode = ModeNormal
		b.Cursor.MoveLeft(b.Text)
		b.BreakCoalescing()
	case ActionEnterVisualMode:
		e.Mode = ModeVisual
		b.Cursor.BeginSelection()
	case ActionEnterCommandMode:
		e.Mode = ModeCommand
		e.CommandLine = ""
	case ActionDeleteSelection, ActionDeleteLine:
		e.deleteSelectionOrLine(now)
	case ActionYank:
		e.yank()
	case ActionPaste:
		if e.clipboard != "" {
			b.InsertAt(e.clipboard, now)
		}
	case ActionSave:
		e.LastCommand = "w"
	}
}

func (e *Editor) deleteSelectionOrLine(now time.Time) {
	b := e.Buffer
	if lo, hi, ok := b.Cursor.SelectionRange(b.Text); ok {
		e.clipboard = b.Text.Slice(lo, hi)
		b.DeleteRange(lo, hi, now)
		b.Cursor.ClearSelection()
		e.Mode = ModeNormal
		return
	}
	lineStart := b.Text.LineStart(b.Cursor.Pos.Line)
	lineEnd := b.Text.LineStart(b.Cursor.Pos.Line + 1)
	if b.Cursor.Pos.Line+1 >= b.Text.Lines() {
		lineEnd = b.Text.Len()
	}
	e.clipboard = b.Text.Slice(lineStart, lineEnd)
	b.DeleteRange(lineStart, lineEnd, now)
}

func (e *Editor) yank() {
	b := e.Buffer
	if lo, hi, ok := b.Cursor.SelectionRange(b.Text); ok {
		e.clipboard = b.Text.Slice(lo, hi)
		b.Cursor.ClearSelection()
		e.Mode = ModeNormal
	}
}

// syncViewport keeps the viewport's scroll position following the cursor:
// scrolling down when the cursor passes the last visible line, and up when
// it passes the first.
func (e *Editor) syncViewport() {
	e.viewport.SetContent(e.Buffer.Text.String())
	line := e.Buffer.Cursor.Pos.Line
	top := e.viewport.YOffset
	bottom := top + e.viewport.Height - 1
	switch {
	case line < top:
		e.viewport.YOffset = line
	case line > bottom:
		e.viewport.YOffset = line - e.viewport.Height + 1
	}
	if e.viewport.YOffset < 0 {
		e.viewport.YOffset = 0
	}
}

// View renders the visible portion of the buffer.
func (e *Editor) View() string { return e.viewport.View() }

// CursorScreenPos returns the cursor's position relative to the viewport's
// visible top-left corner, for placing the terminal cursor glyph.
func (e *Editor) CursorScreenPos() (col, row int) {
	return e.Buffer.Cursor.Pos.Col, e.Buffer.Cursor.Pos.Line - e.viewport.YOffset
}

// Lines returns the buffer split into display lines, used by callers that
// render cell-by-cell instead of through View().
func (e *Editor) Lines() []string {
	return strings.Split(e.Buffer.Text.String(), "\n")
}
