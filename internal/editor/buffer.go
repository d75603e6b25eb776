// Package editor implements the modal, rope-backed text buffer (C9):
// Vim/Emacs/Default keymap dispatch, undo/redo with coalescing, and
// viewport scroll-to-cursor bookkeeping.
package editor

import (
	"time"

	"ratline/internal/cursor"
	"ratline/internal/rope"
)

const undoCoalesceWindow = 500 * time.Millisecond

// undoEntry is one snapshot on the undo stack: the buffer text and cursor
// position immediately before an edit was applied.
type undoEntry struct {
	text   *rope.Rope
	cursor cursor.Pos
}

// Buffer is the editable text plus undo/redo history. Edits always go
// through Insert/DeleteRange so history stays consistent.
type Buffer struct {
	Text   *rope.Rope
	Cursor cursor.Cursor

	undo []undoEntry
	redo []undoEntry

	lastEditAt   time.Time
	lastEditKind editKind
}

type editKind int

const (
	editNone editKind = iota
	editInsertChar
	editDeleteChar
	editOther
)

// NewBuffer creates an empty buffer, or one seeded with initial content.
func NewBuffer(initial string) *Buffer {
	return &Buffer{Text: rope.NewFromString(initial)}
}

// pushUndo records a snapshot unless the incoming edit coalesces with the
// previous one: same kind, within undoCoalesceWindow, and no
// BreakCoalescing call in between. Cursor motions and mode changes make
// that call, which keeps edits at unrelated positions from merging.
func (b *Buffer) pushUndo(kind editKind, now time.Time) {
	coalesce := kind != editOther &&
		kind == b.lastEditKind &&
		!b.lastEditAt.IsZero() &&
		now.Sub(b.lastEditAt) < undoCoalesceWindow
	if !coalesce {
		b.undo = append(b.undo, undoEntry{text: b.Text, cursor: b.Cursor.Pos})
	}
	b.lastEditAt = now
	b.lastEditKind = kind
	b.redo = nil
}

// InsertAt inserts s at the current cursor offset and advances it.
func (b *Buffer) InsertAt(s string, now time.Time) {
	kind := editOther
	if len([]rune(s)) == 1 && s != "\n" {
		kind = editInsertChar
	}
	b.pushUndo(kind, now)
	off := cursor.Offset(b.Text, b.Cursor.Pos)
	b.Text = b.Text.Insert(off, s)
	b.Cursor.Pos = cursor.FromOffset(b.Text, off+len([]rune(s)))
	b.Cursor.DesiredCol = b.Cursor.Pos.Col
}

// DeleteRange removes the rune range [lo, hi) and places the cursor at lo.
func (b *Buffer) DeleteRange(lo, hi int, now time.Time) {
	if lo >= hi {
		return
	}
	kind := editOther
	if hi-lo == 1 {
		kind = editDeleteChar
	}
	b.pushUndo(kind, now)
	b.Text = b.Text.Delete(lo, hi)
	b.Cursor.Pos = cursor.FromOffset(b.Text, lo)
	b.Cursor.DesiredCol = b.Cursor.Pos.Col
}

// Backspace deletes one rune before the cursor.
func (b *Buffer) Backspace(now time.Time) {
	off := cursor.Offset(b.Text, b.Cursor.Pos)
	if off == 0 {
		return
	}
	b.DeleteRange(off-1, off, now)
}

// DeleteForward deletes one rune at the cursor.
func (b *Buffer) DeleteForward(now time.Time) {
	off := cursor.Offset(b.Text, b.Cursor.Pos)
	if off >= b.Text.Len() {
		return
	}
	b.DeleteRange(off, off+1, now)
}

// Undo pops the most recent snapshot, pushing the current state to redo.
func (b *Buffer) Undo() {
	if len(b.undo) == 0 {
		return
	}
	last := b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	b.redo = append(b.redo, undoEntry{text: b.Text, cursor: b.Cursor.Pos})
	b.Text = last.text
	b.Cursor.Pos = last.cursor
	b.Cursor.DesiredCol = last.cursor.Col
	b.lastEditKind = editNone
}

// Redo reapplies the most recently undone snapshot.
func (b *Buffer) Redo() {
	if len(b.redo) == 0 {
		return
	}
	last := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]
	b.undo = append(b.undo, undoEntry{text: b.Text, cursor: b.Cursor.Pos})
	b.Text = last.text
	b.Cursor.Pos = last.cursor
	b.Cursor.DesiredCol = last.cursor.Col
	b.lastEditKind = editNone
}

// BreakCoalescing forces the next edit to start a new undo group. Called on
// mode changes and non-contiguous cursor moves per the coalescing rules.
func (b *Buffer) BreakCoalescing() { b.lastEditKind = editNone }
