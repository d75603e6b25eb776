// Package cursor implements cursor and selection arithmetic over a rope
// buffer: position/offset conversion, word and line motions, and
// desired-column tracking so vertical motion through lines of varying
// length feels natural (the column "remembers" where it started until an
// explicit horizontal move changes it).
package cursor

import "ratline/internal/rope"

// Pos is a (line, col) position, both 0-based, col counted in runes.
type Pos struct {
	Line, Col int
}

// Cursor tracks a position plus the desired column used by vertical
// motion, and an optional selection anchor.
type Cursor struct {
	Pos        Pos
	DesiredCol int
	Anchor     *Pos // nil when no selection is active
}

// Offset converts a Pos to a rune offset into r.
func Offset(r *rope.Rope, p Pos) int {
	start := r.LineStart(p.Line)
	return start + p.Col
}

// FromOffset converts a rune offset back into a Pos.
func FromOffset(r *rope.Rope, off int) Pos {
	text := r.String()
	line, col := 0, 0
	count := 0
	for _, c := range text {
		if count == off {
			return Pos{Line: line, Col: col}
		}
		if c == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		count++
	}
	return Pos{Line: line, Col: col}
}

func lineLen(r *rope.Rope, line int) int {
	start := r.LineStart(line)
	end := r.LineStart(line + 1)
	if line+1 >= r.Lines() {
		end = r.Len()
	} else {
		end-- // drop the trailing newline
	}
	if end < start {
		end = start
	}
	return end - start
}

// MoveLeft moves one rune left, wrapping to the end of the previous line.
func (c *Cursor) MoveLeft(r *rope.Rope) {
	if c.Pos.Col > 0 {
		c.Pos.Col--
	} else if c.Pos.Line > 0 {
		c.Pos.Line--
		c.Pos.Col = lineLen(r, c.Pos.Line)
	}
	c.DesiredCol = c.Pos.Col
}

// MoveRight moves one rune right, wrapping to the start of the next line.
func (c *Cursor) MoveRight(r *rope.Rope) {
	if c.Pos.Col < lineLen(r, c.Pos.Line) {
		c.Pos.Col++
	} else if c.Pos.Line+1 < r.Lines() {
		c.Pos.Line++
		c.Pos.Col = 0
	}
	c.DesiredCol = c.Pos.Col
}

// MoveUp/MoveDown move vertically, clamping the column to the target
// line's length but preserving DesiredCol across successive calls.
func (c *Cursor) MoveUp(r *rope.Rope) {
	if c.Pos.Line == 0 {
		return
	}
	c.Pos.Line--
	c.clampToDesired(r)
}

func (c *Cursor) MoveDown(r *rope.Rope) {
	if c.Pos.Line+1 >= r.Lines() {
		return
	}
	c.Pos.Line++
	c.clampToDesired(r)
}

func (c *Cursor) clampToDesired(r *rope.Rope) {
	n := lineLen(r, c.Pos.Line)
	col := c.DesiredCol
	if col > n {
		col = n
	}
	c.Pos.Col = col
}

// MoveLineStart/MoveLineEnd jump within the current line.
func (c *Cursor) MoveLineStart() {
	c.Pos.Col = 0
	c.DesiredCol = 0
}

func (c *Cursor) MoveLineEnd(r *rope.Rope) {
	c.Pos.Col = lineLen(r, c.Pos.Line)
	c.DesiredCol = c.Pos.Col
}

// MoveBufferStart/MoveBufferEnd jump to the first/last position in the
// buffer (Vim's `g`/`G`, Emacs's Alt+</Alt+>).
func (c *Cursor) MoveBufferStart() {
	c.Pos = Pos{Line: 0, Col: 0}
	c.DesiredCol = 0
}

func (c *Cursor) MoveBufferEnd(r *rope.Rope) {
	line := r.Lines() - 1
	if line < 0 {
		line = 0
	}
	c.Pos = Pos{Line: line, Col: lineLen(r, line)}
	c.DesiredCol = c.Pos.Col
}

// MoveWordForward/MoveWordBackward move by word boundaries, where a word is
// a maximal run of letters/digits/underscore.
func (c *Cursor) MoveWordForward(r *rope.Rope) {
	off := Offset(r, c.Pos)
	text := []rune(r.String())
	n := len(text)
	for off < n && isWordRune(text[off]) {
		off++
	}
	for off < n && !isWordRune(text[off]) {
		off++
	}
	c.Pos = FromOffset(r, off)
	c.DesiredCol = c.Pos.Col
}

func (c *Cursor) MoveWordBackward(r *rope.Rope) {
	off := Offset(r, c.Pos)
	text := []rune(r.String())
	for off > 0 && !isWordRune(text[off-1]) {
		off--
	}
	for off > 0 && isWordRune(text[off-1]) {
		off--
	}
	c.Pos = FromOffset(r, off)
	c.DesiredCol = c.Pos.Col
}

func isWordRune(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// BeginSelection anchors a selection at the current position.
func (c *Cursor) BeginSelection() {
	p := c.Pos
	c.Anchor = &p
}

// ClearSelection drops the anchor.
func (c *Cursor) ClearSelection() { c.Anchor = nil }

// SelectionRange returns the ordered (start, end) offsets of the active
// selection, and ok=false if there is none.
func (c *Cursor) SelectionRange(r *rope.Rope) (lo, hi int, ok bool) {
	if c.Anchor == nil {
		return 0, 0, false
	}
	a := Offset(r, *c.Anchor)
	b := Offset(r, c.Pos)
	if a > b {
		a, b = b, a
	}
	return a, b, true
}
