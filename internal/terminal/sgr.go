package terminal

import "ratline/internal/cell"

// applySGR folds a CSI "m" parameter list into style, left to right, per the
// supported SGR set: 0 reset, 1/2/3/4/5/7/8/9 attributes, 22-29 their
// reset counterparts, 30-37/90-97 indexed foreground, 40-47/100-107 indexed
// background, 38/48 extended (;5;n indexed or ;2;r;g;b truecolor), 39/49
// default fg/bg.
func applySGR(style cell.Style, params []int) cell.Style {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			style = cell.DefaultStyle
		case p == 1:
			style.Attr |= cell.AttrBold
		case p == 2:
			style.Attr |= cell.AttrDim
		case p == 3:
			style.Attr |= cell.AttrItalic
		case p == 4:
			style.Attr |= cell.AttrUnderline
		case p == 5:
			style.Attr |= cell.AttrBlink
		case p == 7:
			style.Attr |= cell.AttrReverse
		case p == 8:
			style.Attr |= cell.AttrHidden
		case p == 9:
			style.Attr |= cell.AttrStrikethrough
		case p == 22:
			style.Attr &^= cell.AttrBold | cell.AttrDim
		case p == 23:
			style.Attr &^= cell.AttrItalic
		case p == 24:
			style.Attr &^= cell.AttrUnderline
		case p == 25:
			style.Attr &^= cell.AttrBlink
		case p == 27:
			style.Attr &^= cell.AttrReverse
		case p == 28:
			style.Attr &^= cell.AttrHidden
		case p == 29:
			style.Attr &^= cell.AttrStrikethrough
		case p >= 30 && p <= 37:
			style.FG = cell.Indexed(uint8(p - 30))
		case p == 38:
			c, n := extendedColor(params, i)
			style.FG = c
			i += n
		case p == 39:
			style.FG = cell.DefaultColor
		case p >= 40 && p <= 47:
			style.BG = cell.Indexed(uint8(p - 40))
		case p == 48:
			c, n := extendedColor(params, i)
			style.BG = c
			i += n
		case p == 49:
			style.BG = cell.DefaultColor
		case p >= 90 && p <= 97:
			style.FG = cell.Indexed(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			style.BG = cell.Indexed(uint8(p - 100 + 8))
		}
	}
	return style
}

// extendedColor parses the ;5;n or ;2;r;g;b tail of a 38/48 sequence
// starting at params[i+1]. Returns the color and the number of extra
// params consumed beyond params[i].
func extendedColor(params []int, i int) (cell.Color, int) {
	if i+1 >= len(params) {
		return cell.DefaultColor, 0
	}
	switch params[i+1] {
	case 5:
		if i+2 < len(params) {
			return cell.Indexed(uint8(params[i+2])), 2
		}
	case 2:
		if i+4 < len(params) {
			return cell.RGB(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4])), 4
		}
	}
	return cell.DefaultColor, 1
}
