// Package cell defines the glyph and style model shared by the grid and
// parser: a single terminal cell, its SGR attribute bits, and the
// width-aware rune classification used to decide how many columns a
// character occupies.
package cell

import (
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/text/width"
)

// Attr is a bitset of SGR text attributes.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrItalic
	AttrUnderline
	AttrReverse
	AttrDim
	AttrBlink
	AttrStrikethrough
	AttrHidden
)

// ColorKind distinguishes how a Color's value should be interpreted.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is either the terminal default, an indexed 0-255 palette entry, or
// a 24-bit RGB triple packed into R<<16|G<<8|B.
type Color struct {
	Kind  ColorKind
	Value uint32
}

// DefaultColor is the terminal's default foreground/background.
var DefaultColor = Color{Kind: ColorDefault}

// Indexed builds a palette-indexed color (0-255).
func Indexed(n uint8) Color { return Color{Kind: ColorIndexed, Value: uint32(n)} }

// RGB builds a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, Value: uint32(r)<<16 | uint32(g)<<8 | uint32(b)}
}

// Style is the current SGR state; new cells inherit it at write time.
type Style struct {
	FG   Color
	BG   Color
	Attr Attr
}

// DefaultStyle is the reset SGR state.
var DefaultStyle = Style{FG: DefaultColor, BG: DefaultColor}

func (s Style) Has(a Attr) bool { return s.Attr&a != 0 }

// Width reports the terminal column width of r: 0 for combining marks, 1 for
// most glyphs, 2 for wide East-Asian / emoji glyphs.
//
// go-runewidth does the bulk of the classification; x/text/width is
// consulted only for the East Asian Ambiguous class, which go-runewidth
// treats as narrow by default and x/text/width can identify explicitly, so
// a CJK locale override could widen them later without reclassifying
// everything else.
func Width(r rune) int {
	if r == 0 {
		return 1
	}
	if width.LookupRune(r).Kind() == width.EastAsianAmbiguous {
		return 1
	}
	return runewidth.RuneWidth(r)
}

// WideSentinel is the rune written into the second column of a wide cell; it
// carries no glyph of its own and is never rendered.
const WideSentinel = rune(0)

// Cell is a single grid position: a rune (possibly the wide-cell sentinel)
// plus the style active when it was written.
//
// Invariant: a wide cell occupies two adjacent columns; the second is a
// sentinel cell with IsWideTail set, referencing the first via no backlink
// (the grid recomputes adjacency positionally).
type Cell struct {
	Rune      rune
	Style     Style
	Wide      bool // true on the leading column of a 2-wide glyph
	IsWideTail bool // true on the trailing sentinel column
}

// Blank returns the cleared cell for the given style (used to fill erased
// regions so background color carries through).
func Blank(s Style) Cell { return Cell{Rune: ' ', Style: s} }

// IsBlank reports whether the cell is an unwritten/erased space, whatever
// its style, used by selection extraction to trim trailing blanks.
func (c Cell) IsBlank() bool {
	return (c.Rune == ' ' || c.Rune == 0) && !c.Wide && !c.IsWideTail
}
