// Package grid implements the terminal emulator's 2-D cell buffer: the
// primary and alternate screen buffers, bounded scrollback, damage
// tracking, and interactive selection (C2 in the design).
package grid

import "ratline/internal/cell"

// DefaultScrollback is the default scrollback capacity in rows.
const DefaultScrollback = 10000

// Debug controls whether a would-be out-of-bounds cursor position panics
// (debug builds, per spec) or is silently clamped and logged (release).
// The zero value (false) is the release behavior.
var Debug = false

// onOutOfBounds reports an OutOfBounds condition. In Debug mode it panics so
// the bug surfaces immediately; otherwise the caller has already clamped the
// value and this only notifies the logger hook.
func onOutOfBounds(msg string) {
	if Debug {
		panic(errOutOfBounds(msg))
	}
	if logHook != nil {
		logHook(msg)
	}
}

// logHook lets the terminal layer attach a logger without grid depending on
// the logging package directly.
var logHook func(string)

// SetLogHook installs a callback invoked on a clamped OutOfBounds condition.
func SetLogHook(f func(string)) { logHook = f }

// MouseReportMode selects which button/motion events get reported, per the
// DEC private mode that last enabled mouse tracking.
type MouseReportMode int

const (
	MouseReportOff MouseReportMode = iota
	MouseReportX10   // mode 1000: button press/release only
	MouseReportVT200 // mode 1002: press/release + drag motion
	MouseReportAny   // mode 1003: press/release + all motion
)

// Mode holds grid-level boolean modes set by CSI SM/RM sequences.
type Mode struct {
	AutoWrap       bool // DECAWM
	OriginMode     bool // DECOM
	CursorVisible  bool // DECTCEM
	AppCursorKeys  bool // DECCKM, mode 1: arrow keys encode as SS3 not CSI
	MouseReport    MouseReportMode
	MouseSGR       bool // mode 1006: SGR extended mouse coordinate encoding
	BracketedPaste bool // mode 2004
}

// DefaultMode is the terminal's power-on mode state.
var DefaultMode = Mode{AutoWrap: true, CursorVisible: true}

// Grid owns the primary and alternate screen buffers, the cursor, the
// scroll region, damage tracking, and the current selection.
type Grid struct {
	cols, rows int

	primary *buffer
	alt     *buffer
	onAlt   bool

	scrollback *scrollback

	cursor      Point
	savedCursor Point
	hasSaved    bool
	// saved cursor used specifically by mode 1049's enter/exit pairing
	altSavedCursor Point

	scrollTop, scrollBottom int // inclusive row bounds of the scroll region

	mode  Mode
	style cell.Style

	pendingWrap bool // deferred-wrap flag: next printable char wraps first

	damage map[int]struct{}

	selection Selection

	title string
	cwd   string
}

// New creates a grid with the given visible viewport size.
func New(cols, rows int) *Grid {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g := &Grid{
		cols:         cols,
		rows:         rows,
		primary:      newBuffer(cols, rows, cell.DefaultStyle),
		alt:          newBuffer(cols, rows, cell.DefaultStyle),
		scrollback:   newScrollback(DefaultScrollback),
		scrollTop:    0,
		scrollBottom: rows - 1,
		mode:         DefaultMode,
		style:        cell.DefaultStyle,
		damage:       make(map[int]struct{}),
	}
	return g
}

func (g *Grid) active() *buffer {
	if g.onAlt {
		return g.alt
	}
	return g.primary
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }
func (g *Grid) OnAlt() bool { return g.onAlt }
func (g *Grid) Cursor() Point { return g.cursor }
func (g *Grid) Mode() Mode { return g.mode }
func (g *Grid) SetMode(m Mode) { g.mode = m }
func (g *Grid) Style() cell.Style { return g.style }
func (g *Grid) SetStyle(s cell.Style) { g.style = s }
func (g *Grid) Title() string { return g.title }
func (g *Grid) SetTitle(t string) { g.title = t }
func (g *Grid) Cwd() string { return g.cwd }
func (g *Grid) SetCwd(c string) { g.cwd = c }
func (g *Grid) ScrollbackLen() int { return g.scrollback.len() }

// CellAt returns the cell at (col, row) in the visible viewport.
func (g *Grid) CellAt(col, row int) cell.Cell {
	b := g.active()
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return cell.Blank(cell.DefaultStyle)
	}
	return b.lines[row][col]
}

// ScrollbackLine returns a scrollback row, 0 = oldest.
func (g *Grid) ScrollbackLine(idx int) Line { return g.scrollback.line(idx) }

func (g *Grid) markDamage(row int) {
	if row < 0 || row >= g.rows {
		return
	}
	g.damage[row] = struct{}{}
}

func (g *Grid) markAllDamage() {
	for r := 0; r < g.rows; r++ {
		g.damage[r] = struct{}{}
	}
}

// TakeDamage returns and clears the set of dirty rows since the last call.
func (g *Grid) TakeDamage() []int {
	rows := make([]int, 0, len(g.damage))
	for r := range g.damage {
		rows = append(rows, r)
	}
	g.damage = make(map[int]struct{})
	return rows
}

// clampCursor enforces the invariant cursor ∈ [0,cols) x [0,rows), reporting
// OutOfBounds via onOutOfBounds when it had to clamp.
func (g *Grid) clampCursor() {
	col, row := g.cursor.Col, g.cursor.Row
	nc, nr := col, row
	if nc < 0 {
		nc = 0
	}
	if nc >= g.cols {
		nc = g.cols - 1
	}
	if nr < 0 {
		nr = 0
	}
	if nr >= g.rows {
		nr = g.rows - 1
	}
	if nc != col || nr != row {
		onOutOfBounds("cursor clamped to grid bounds")
		g.cursor = Point{Col: nc, Row: nr}
	}
}

func (g *Grid) effectiveTop() int {
	if g.mode.OriginMode {
		return g.scrollTop
	}
	return 0
}

func (g *Grid) effectiveBottom() int {
	if g.mode.OriginMode {
		return g.scrollBottom
	}
	return g.rows - 1
}

// SetScrollRegion sets DECSTBM's top/bottom (0-based, inclusive). Invalid
// ranges are ignored (full-screen region restored).
func (g *Grid) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= g.rows {
		bottom = g.rows - 1
	}
	if top >= bottom {
		top, bottom = 0, g.rows-1
	}
	g.scrollTop, g.scrollBottom = top, bottom
	g.cursor = Point{Col: 0, Row: g.effectiveTop()}
}

// --- cursor motion -------------------------------------------------------

func (g *Grid) MoveTo(col, row int) {
	g.pendingWrap = false
	if g.mode.OriginMode {
		row += g.scrollTop
	}
	g.cursor = Point{Col: col, Row: row}
	g.clampCursor()
}

func (g *Grid) MoveCols(delta int) {
	g.pendingWrap = false
	g.cursor.Col += delta
	g.clampCursor()
}

func (g *Grid) MoveRows(delta int) {
	g.pendingWrap = false
	g.cursor.Row += delta
	g.clampCursor()
}

func (g *Grid) CR() {
	g.pendingWrap = false
	g.cursor.Col = 0
}

// LF moves the cursor down one row, scrolling the region if already at the
// bottom margin.
func (g *Grid) LF() {
	g.pendingWrap = false
	if g.cursor.Row == g.scrollBottom {
		g.ScrollUp(1)
		return
	}
	if g.cursor.Row < g.rows-1 {
		g.cursor.Row++
	}
}

func (g *Grid) BS() {
	g.pendingWrap = false
	if g.cursor.Col > 0 {
		g.cursor.Col--
	}
}

// Tab snaps the cursor to the next multiple-of-8 column, bounded by the
// right margin.
func (g *Grid) Tab() {
	next := (g.cursor.Col/8 + 1) * 8
	if next > g.cols-1 {
		next = g.cols - 1
	}
	g.cursor.Col = next
}

func (g *Grid) SaveCursor() {
	g.savedCursor = g.cursor
	g.hasSaved = true
}

func (g *Grid) RestoreCursor() {
	if g.hasSaved {
		g.cursor = g.savedCursor
		g.clampCursor()
	}
}

// --- writing ---------------------------------------------------------------

// Put writes ch at the cursor with the given display width (1 or 2),
// honoring auto-wrap and deferred-wrap semantics: a glyph landing exactly on
// the last column does not wrap immediately; the wrap happens lazily before
// the *next* Put, matching real terminal emulators (avoids a spurious blank
// line when a line is exactly `cols` wide).
func (g *Grid) Put(ch rune, width int) {
	if width < 1 {
		width = 1
	}
	if g.pendingWrap {
		if g.mode.AutoWrap {
			g.CR()
			g.LF()
		}
		g.pendingWrap = false
	}
	b := g.active()
	row := g.cursor.Row
	col := g.cursor.Col
	if col+width > g.cols {
		if g.mode.AutoWrap {
			g.CR()
			g.LF()
			row = g.cursor.Row
			col = g.cursor.Col
		} else {
			col = g.cols - width
			if col < 0 {
				col = 0
			}
		}
	}
	c := cell.Cell{Rune: ch, Style: g.style}
	if width == 2 {
		c.Wide = true
	}
	b.lines[row][col] = c
	if width == 2 && col+1 < g.cols {
		b.lines[row][col+1] = cell.Cell{IsWideTail: true, Style: g.style}
	}
	g.markDamage(row)
	if col+width >= g.cols {
		g.cursor = Point{Col: g.cols - 1, Row: row}
		g.pendingWrap = true
	} else {
		g.cursor = Point{Col: col + width, Row: row}
	}
}

// --- erase -------------------------------------------------------------

type EraseMode int

const (
	EraseBelow EraseMode = iota // 0
	EraseAbove                  // 1
	EraseAll                    // 2
	EraseScrollback              // 3
)

func (g *Grid) EraseDisplay(mode EraseMode) {
	b := g.active()
	switch mode {
	case EraseBelow:
		g.eraseLineFrom(g.cursor.Row, g.cursor.Col)
		for r := g.cursor.Row + 1; r < g.rows; r++ {
			b.clearRow(r, g.style)
			g.markDamage(r)
		}
	case EraseAbove:
		for r := 0; r < g.cursor.Row; r++ {
			b.clearRow(r, g.style)
			g.markDamage(r)
		}
		g.eraseLineTo(g.cursor.Row, g.cursor.Col)
	case EraseAll:
		b.clear(g.style)
		g.markAllDamage()
	case EraseScrollback:
		g.scrollback = newScrollback(DefaultScrollback)
	}
}

type EraseLineMode int

const (
	EraseLineRight EraseLineMode = iota // 0
	EraseLineLeft                       // 1
	EraseLineAll                        // 2
)

func (g *Grid) EraseLine(mode EraseLineMode) {
	switch mode {
	case EraseLineRight:
		g.eraseLineFrom(g.cursor.Row, g.cursor.Col)
	case EraseLineLeft:
		g.eraseLineTo(g.cursor.Row, g.cursor.Col)
	case EraseLineAll:
		g.active().clearRow(g.cursor.Row, g.style)
		g.markDamage(g.cursor.Row)
	}
}

func (g *Grid) eraseLineFrom(row, col int) {
	line := g.active().lines[row]
	for i := col; i < len(line); i++ {
		line[i] = cell.Blank(g.style)
	}
	g.markDamage(row)
}

func (g *Grid) eraseLineTo(row, col int) {
	line := g.active().lines[row]
	if col >= len(line) {
		col = len(line) - 1
	}
	for i := 0; i <= col; i++ {
		line[i] = cell.Blank(g.style)
	}
	g.markDamage(row)
}

// --- scrolling -----------------------------------------------------------

// ScrollUp moves lines up within the active scroll region by n; lines
// leaving the top of the region enter scrollback whenever the primary
// buffer is active, whatever the region's bounds. The alternate buffer
// never feeds scrollback.
func (g *Grid) ScrollUp(n int) {
	if n <= 0 {
		return
	}
	b := g.active()
	top, bottom := g.scrollTop, g.scrollBottom
	for i := 0; i < n; i++ {
		if !g.onAlt {
			g.scrollback.push(b.lines[top].clone())
		}
		copy(b.lines[top:bottom], b.lines[top+1:bottom+1])
		b.lines[bottom] = newLine(g.cols, g.style)
	}
	for r := top; r <= bottom; r++ {
		g.markDamage(r)
	}
}

// ScrollDown moves lines down within the active scroll region by n,
// discarding lines that fall off the bottom; new blank lines enter at the
// top. This is the inverse of ScrollUp modulo scrollback, matching the
// testable property that scroll_up(n); scroll_down(n) on the alt buffer is
// the identity modulo cleared cells.
func (g *Grid) ScrollDown(n int) {
	if n <= 0 {
		return
	}
	b := g.active()
	top, bottom := g.scrollTop, g.scrollBottom
	for i := 0; i < n; i++ {
		copy(b.lines[top+1:bottom+1], b.lines[top:bottom])
		b.lines[top] = newLine(g.cols, g.style)
	}
	for r := top; r <= bottom; r++ {
		g.markDamage(r)
	}
}

// --- line editing (IL/DL/ICH/DCH/ECH) ------------------------------------

func (g *Grid) InsertLines(n int) {
	row := g.cursor.Row
	if row < g.scrollTop || row > g.scrollBottom {
		return
	}
	saveTop := g.scrollTop
	g.scrollTop = row
	g.ScrollDown(n)
	g.scrollTop = saveTop
}

func (g *Grid) DeleteLines(n int) {
	row := g.cursor.Row
	if row < g.scrollTop || row > g.scrollBottom {
		return
	}
	saveTop := g.scrollTop
	g.scrollTop = row
	g.ScrollUp(n)
	g.scrollTop = saveTop
}

func (g *Grid) InsertChars(n int) {
	line := g.active().lines[g.cursor.Row]
	col := g.cursor.Col
	if col >= len(line) {
		return
	}
	end := len(line) - n
	if end < col {
		end = col
	}
	copy(line[col+n:], line[col:end])
	for i := col; i < col+n && i < len(line); i++ {
		line[i] = cell.Blank(g.style)
	}
	g.markDamage(g.cursor.Row)
}

func (g *Grid) DeleteChars(n int) {
	line := g.active().lines[g.cursor.Row]
	col := g.cursor.Col
	if col >= len(line) {
		return
	}
	copy(line[col:], line[col+n:])
	for i := len(line) - n; i < len(line); i++ {
		if i >= col {
			line[i] = cell.Blank(g.style)
		}
	}
	g.markDamage(g.cursor.Row)
}

func (g *Grid) EraseChars(n int) {
	line := g.active().lines[g.cursor.Row]
	col := g.cursor.Col
	for i := col; i < col+n && i < len(line); i++ {
		line[i] = cell.Blank(g.style)
	}
	g.markDamage(g.cursor.Row)
}

// --- alt screen ------------------------------------------------------------

// SwitchToAlt atomically swaps in the alternate buffer. saveCursor should be
// true for mode 1049 (which additionally saves the cursor and clears alt on
// entry).
func (g *Grid) SwitchToAlt(saveCursor bool) {
	if g.onAlt {
		return
	}
	if saveCursor {
		g.altSavedCursor = g.cursor
		g.alt.clear(cell.DefaultStyle)
	}
	g.onAlt = true
	g.scrollTop, g.scrollBottom = 0, g.rows-1
	g.markAllDamage()
}

// SwitchToPrimary atomically swaps back to the primary buffer. restoreCursor
// mirrors SwitchToAlt's saveCursor for mode 1049.
func (g *Grid) SwitchToPrimary(restoreCursor bool) {
	if !g.onAlt {
		return
	}
	g.onAlt = false
	if restoreCursor {
		g.cursor = g.altSavedCursor
		g.clampCursor()
	}
	g.scrollTop, g.scrollBottom = 0, g.rows-1
	g.markAllDamage()
}

// --- resize ----------------------------------------------------------------

// Resize changes the viewport size. The primary buffer reflows logical
// lines (best-effort: this implementation preserves line content and pads
// or truncates columns, which is sufficient to satisfy the no-panic and
// cursor-clamping invariants; full soft-wrap reflow is a documented Open
// Question resolution — see DESIGN.md). The alternate buffer is replaced
// by a blank buffer of the new size. The scroll region resets to full
// height and the cursor is clamped.
func (g *Grid) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 {
		return errInvalidResize("resize target must be at least 1x1")
	}
	g.primary = reflowBuffer(g.primary, cols, rows, g.style)
	g.alt = resizePlain(g.alt, cols, rows, g.style)
	g.cols, g.rows = cols, rows
	g.scrollTop, g.scrollBottom = 0, rows-1
	g.clampCursor()
	g.markAllDamage()
	return nil
}

// resizePlain returns a blank buffer of the new size, discarding the old
// content (used for the alternate buffer, which clears instead of
// reflowing).
func resizePlain(b *buffer, cols, rows int, style cell.Style) *buffer {
	return newBuffer(cols, rows, style)
}

// reflowBuffer preserves each existing row's text, padding or truncating
// columns, and pads/truncates the row count. It does not attempt soft-wrap
// joining across old rows; see the Open Question note in DESIGN.md.
func reflowBuffer(b *buffer, cols, rows int, style cell.Style) *buffer {
	nb := newBuffer(cols, rows, style)
	n := b.rows
	if n > rows {
		n = rows
	}
	for r := 0; r < n; r++ {
		old := b.lines[r]
		m := len(old)
		if m > cols {
			m = cols
		}
		copy(nb.lines[r][:m], old[:m])
	}
	return nb
}

// --- selection -------------------------------------------------------------

func (g *Grid) BeginSelection(at Point, mode SelMode) { g.selection.begin(at, mode) }
func (g *Grid) UpdateSelection(to Point)              { g.selection.update(to) }
func (g *Grid) ClearSelection()                       { g.selection.clear() }
func (g *Grid) IsSelected(col, row int) bool          { return g.selection.isSelected(col, row) }
func (g *Grid) Extract() string                       { return g.extract() }
func (g *Grid) SelectionActive() bool                 { return g.selection.Active }

func (g *Grid) rowLine(row int) Line {
	if row < 0 || row >= g.rows {
		return nil
	}
	return g.active().lines[row]
}

func (g *Grid) rowText(row int) string {
	l := g.rowLine(row)
	if l == nil {
		return ""
	}
	return l.trimmedText()
}
