// Package terminal binds the cell/grid/vtparse/ptyhost layers into a single
// addressable terminal instance (C5): feed raw PTY bytes in, read the grid
// out, send keys back, and resize both the grid and the PTY together.
package terminal

import (
	"ratline/internal/grid"
	"ratline/internal/ptyhost"
	"ratline/internal/vtparse"
)

// Terminal owns one PTY-backed shell session and the grid it renders into.
type Terminal struct {
	ID   string
	grid *grid.Grid
	host *ptyhost.Host
	p    vtparse.Parser
}

// New creates a Terminal of the given size without spawning a process; use
// for headless grid manipulation (tests, scrollback replay).
func New(id string, cols, rows int) *Terminal {
	return &Terminal{ID: id, grid: grid.New(cols, rows)}
}

// Spawn creates a Terminal backed by a freshly spawned shell.
func Spawn(id string, spec ptyhost.Spec) (*Terminal, error) {
	h, err := ptyhost.Spawn(spec)
	if err != nil {
		return nil, err
	}
	cols, rows := spec.Size.Cols, spec.Size.Rows
	if cols < 1 {
		cols = 80
	}
	if rows < 1 {
		rows = 24
	}
	return &Terminal{ID: id, grid: grid.New(cols, rows), host: h}, nil
}

// Grid exposes the underlying cell grid for rendering and selection.
func (t *Terminal) Grid() *grid.Grid { return t.grid }

// FeedBytes parses raw PTY output and applies it to the grid. Safe to call
// with any chunk boundary; the parser carries partial-sequence state across
// calls. Some actions (DSR, DA) require a reply written back to the PTY;
// those replies go through reply, which forwards to SendKeys.
func (t *Terminal) FeedBytes(b []byte) {
	t.p.Feed(b, func(a vtparse.Action) { interpret(t.grid, a, t.reply) })
}

// reply writes a terminal-generated response (cursor position report,
// device attributes) back to the PTY, the same path keystrokes take.
func (t *Terminal) reply(b []byte) {
	_ = t.SendKeys(b)
}

// DrainOutput reads whatever output is immediately available from the PTY
// and feeds it to the grid, returning the number of bytes consumed. Returns
// a *ptyhost.Error (ChildExited) once the process has exited.
//
// Call only from a single-threaded context (tests, headless replay): it
// mutates the grid directly on the calling goroutine. The event loop uses
// ReadBlocking from a background pump instead, so FeedBytes always runs on
// the main Update goroutine.
func (t *Terminal) DrainOutput() (int, error) {
	if t.host == nil {
		return 0, nil
	}
	buf := make([]byte, 4096)
	n, err := t.host.Read(buf)
	if n > 0 {
		t.FeedBytes(buf[:n])
	}
	return n, err
}

// HasPty reports whether this terminal has a backing PTY to read from; a
// headless Terminal (New, no Spawn) never produces output and callers
// should not start a reader pump for it.
func (t *Terminal) HasPty() bool { return t.host != nil }

// ReadBlocking blocks until the PTY produces output (or exits) and returns
// the raw bytes without touching the grid, so a background reader pump can
// call it from its own goroutine while FeedBytes is applied later on the
// main loop. Returns a *ptyhost.Error(ChildExited) on EOF.
func (t *Terminal) ReadBlocking() ([]byte, error) {
	if t.host == nil {
		return nil, nil
	}
	buf := make([]byte, 4096)
	n, err := t.host.Read(buf)
	if n > 0 {
		return buf[:n], err
	}
	return nil, err
}

// SendKeys writes raw bytes (already key-encoded by the caller) to the PTY.
func (t *Terminal) SendKeys(b []byte) error {
	if t.host == nil {
		return nil
	}
	_, err := t.host.Write(b)
	return err
}

// Resize changes both the grid's viewport and the PTY's reported window
// size, keeping them in lockstep.
func (t *Terminal) Resize(cols, rows int) error {
	if err := t.grid.Resize(cols, rows); err != nil {
		return err
	}
	if t.host != nil {
		return t.host.Resize(ptyhost.Size{Cols: cols, Rows: rows})
	}
	return nil
}

// Close tears down the backing PTY, if any.
func (t *Terminal) Close() error {
	if t.host == nil {
		return nil
	}
	return t.host.Close()
}

// Exited reports whether the backing process has exited, and its code.
func (t *Terminal) Exited() (bool, int) {
	if t.host == nil {
		return false, 0
	}
	return t.host.Exited()
}

// --- selection delegation ---------------------------------------------------

func (t *Terminal) SelectLeft(n int)  { t.extendSelection(-n, 0) }
func (t *Terminal) SelectRight(n int) { t.extendSelection(n, 0) }
func (t *Terminal) SelectUp(n int)    { t.extendSelection(0, -n) }
func (t *Terminal) SelectDown(n int)  { t.extendSelection(0, n) }

func (t *Terminal) extendSelection(dCol, dRow int) {
	if !t.grid.SelectionActive() {
		cur := t.grid.Cursor()
		t.grid.BeginSelection(grid.Point{Col: cur.Col, Row: cur.Row}, grid.SelChar)
	}
	cur := t.grid.Cursor()
	to := grid.Point{Col: clamp(cur.Col+dCol, 0, t.grid.Cols()-1), Row: clamp(cur.Row+dRow, 0, t.grid.Rows()-1)}
	t.grid.UpdateSelection(to)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
