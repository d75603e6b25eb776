package terminal

import (
	"fmt"

	"ratline/internal/cell"
	"ratline/internal/grid"
	"ratline/internal/vtparse"
)

// reply sends bytes back to the PTY in response to a status-query action
// (DSR, DA) that the emitting program expects an answer to.
type reply func([]byte)

// interpret applies a single parser Action to g, implementing the supported
// CSI/ESC/OSC set from the parser's contract: cursor motion, erase, scroll,
// line/char editing, SM/RM with DEC private modes, SGR, DSR/DA, and OSC
// 0/2/7. OSC 4 (palette color) is parsed but not applied. Actions that
// require a response write it through reply.
func interpret(g *grid.Grid, a vtparse.Action, r reply) {
	switch a.Kind {
	case vtparse.KindPrint:
		g.Put(a.Rune, cell.Width(a.Rune))
	case vtparse.KindExecute:
		execute(g, a.C0)
	case vtparse.KindEscDispatch:
		escDispatch(g, a)
	case vtparse.KindCsiDispatch:
		csiDispatch(g, a, r)
	case vtparse.KindOscDispatch:
		oscDispatch(g, a)
	// Hook/Put/Unhook (DCS) carry sixel/terminfo-query payloads outside this
	// emulator's supported set; they're parsed so the stream stays in sync
	// but otherwise ignored.
	case vtparse.KindHook, vtparse.KindPut, vtparse.KindUnhook:
	}
}

func execute(g *grid.Grid, c0 byte) {
	switch c0 {
	case '\r':
		g.CR()
	case '\n', '\v', '\f':
		g.LF()
	case '\b':
		g.BS()
	case '\t':
		g.Tab()
	case 0x07: // BEL
	}
}

func escDispatch(g *grid.Grid, a vtparse.Action) {
	switch a.Final {
	case 'c': // RIS, full reset
		*g = *grid.New(g.Cols(), g.Rows())
	case '7':
		g.SaveCursor()
	case '8':
		g.RestoreCursor()
	case 'D':
		g.LF()
	case 'M':
		g.MoveRows(-1)
	case 'E':
		g.CR()
		g.LF()
	}
}

func param(params []int, i, def int) int {
	if i >= len(params) || params[i] == 0 {
		return def
	}
	return params[i]
}

func csiDispatch(g *grid.Grid, a vtparse.Action, r reply) {
	p := a.Params
	if a.Private == '?' {
		dispatchPrivateMode(g, a)
		return
	}
	switch a.Final {
	case 'A': // CUU
		g.MoveRows(-param(p, 0, 1))
	case 'B': // CUD
		g.MoveRows(param(p, 0, 1))
	case 'C': // CUF
		g.MoveCols(param(p, 0, 1))
	case 'D': // CUB
		g.MoveCols(-param(p, 0, 1))
	case 'H', 'f': // CUP / HVP
		row := param(p, 0, 1) - 1
		col := param(p, 1, 1) - 1
		g.MoveTo(col, row)
	case 'G': // CHA
		g.MoveTo(param(p, 0, 1)-1, g.Cursor().Row)
	case 'd': // VPA
		g.MoveTo(g.Cursor().Col, param(p, 0, 1)-1)
	case 'J': // ED
		g.EraseDisplay(grid.EraseMode(param(p, 0, 0)))
	case 'K': // EL
		g.EraseLine(grid.EraseLineMode(param(p, 0, 0)))
	case 'S': // SU
		g.ScrollUp(param(p, 0, 1))
	case 'T': // SD
		g.ScrollDown(param(p, 0, 1))
	case 'L': // IL
		g.InsertLines(param(p, 0, 1))
	case 'M': // DL
		g.DeleteLines(param(p, 0, 1))
	case '@': // ICH
		g.InsertChars(param(p, 0, 1))
	case 'P': // DCH
		g.DeleteChars(param(p, 0, 1))
	case 'X': // ECH
		g.EraseChars(param(p, 0, 1))
	case 'r': // DECSTBM
		top := param(p, 0, 1) - 1
		bottom := param(p, 1, g.Rows()) - 1
		g.SetScrollRegion(top, bottom)
	case 'm': // SGR
		g.SetStyle(applySGR(g.Style(), p))
	case 'n': // DSR
		switch param(p, 0, 0) {
		case 5: // device status report: reply "OK"
			r([]byte("\x1b[0n"))
		case 6: // cursor position report
			cur := g.Cursor()
			r([]byte(fmt.Sprintf("\x1b[%d;%dR", cur.Row+1, cur.Col+1)))
		}
	case 'c': // DA
		if a.Private == '>' {
			r([]byte("\x1b[>0;0;0c")) // secondary DA: terminal type 0, firmware 0, no options
		} else {
			r([]byte("\x1b[?1;2c")) // primary DA: VT100 with AVO
		}
	case 'h': // SM (non-private)
	case 'l': // RM (non-private)
	}
}

func dispatchPrivateMode(g *grid.Grid, a vtparse.Action) {
	set := a.Final == 'h'
	for _, mode := range a.Params {
		switch mode {
		case 1: // DECCKM
			m := g.Mode()
			m.AppCursorKeys = set
			g.SetMode(m)
		case 7: // DECAWM
			m := g.Mode()
			m.AutoWrap = set
			g.SetMode(m)
		case 25: // DECTCEM
			m := g.Mode()
			m.CursorVisible = set
			g.SetMode(m)
		case 47, 1047:
			if set {
				g.SwitchToAlt(false)
			} else {
				g.SwitchToPrimary(false)
			}
		case 1049:
			if set {
				g.SwitchToAlt(true)
			} else {
				g.SwitchToPrimary(true)
			}
		case 1000: // X10 mouse reporting
			m := g.Mode()
			m.MouseReport = grid.MouseReportX10
			if !set {
				m.MouseReport = grid.MouseReportOff
			}
			g.SetMode(m)
		case 1002: // VT200 mouse reporting with drag
			m := g.Mode()
			m.MouseReport = grid.MouseReportVT200
			if !set {
				m.MouseReport = grid.MouseReportOff
			}
			g.SetMode(m)
		case 1003: // any-event mouse reporting
			m := g.Mode()
			m.MouseReport = grid.MouseReportAny
			if !set {
				m.MouseReport = grid.MouseReportOff
			}
			g.SetMode(m)
		case 1006: // SGR extended mouse coordinates
			m := g.Mode()
			m.MouseSGR = set
			g.SetMode(m)
		case 2004: // bracketed paste
			m := g.Mode()
			m.BracketedPaste = set
			g.SetMode(m)
		}
	}
}

func oscDispatch(g *grid.Grid, a vtparse.Action) {
	if len(a.OscParams) == 0 {
		return
	}
	switch string(a.OscParams[0]) {
	case "0", "2":
		if len(a.OscParams) > 1 {
			g.SetTitle(string(a.OscParams[1]))
		}
	case "7":
		if len(a.OscParams) > 1 {
			g.SetCwd(string(a.OscParams[1]))
		}
	}
}
