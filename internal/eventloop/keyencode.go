package eventloop

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// encodeKey converts a bubbletea key event into the raw byte sequence a
// shell on the other end of a PTY expects, per the xterm/VT100 key
// encoding conventions the terminal grid's own escape handling mirrors.
// appCursorKeys mirrors the grid's DECCKM state (mode 1): when set, the
// four arrow keys encode as SS3 (\x1bO_) instead of CSI (\x1b[_), the
// distinction full-screen editors like vim rely on to tell an arrow key
// from a plain Escape followed by a bracket.
func encodeKey(msg tea.KeyMsg, appCursorKeys bool) []byte {
	switch msg.Type {
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	case tea.KeySpace:
		return []byte(" ")
	case tea.KeyEnter:
		return []byte("\r")
	case tea.KeyTab:
		return []byte("\t")
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyUp:
		if appCursorKeys {
			return []byte("\x1bOA")
		}
		return []byte("\x1b[A")
	case tea.KeyDown:
		if appCursorKeys {
			return []byte("\x1bOB")
		}
		return []byte("\x1b[B")
	case tea.KeyRight:
		if appCursorKeys {
			return []byte("\x1bOC")
		}
		return []byte("\x1b[C")
	case tea.KeyLeft:
		if appCursorKeys {
			return []byte("\x1bOD")
		}
		return []byte("\x1b[D")
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyCtrlA:
		return []byte{0x01}
	case tea.KeyCtrlB:
		return []byte{0x02}
	case tea.KeyCtrlC:
		return []byte{0x03}
	case tea.KeyCtrlD:
		return []byte{0x04}
	case tea.KeyCtrlE:
		return []byte{0x05}
	case tea.KeyCtrlF:
		return []byte{0x06}
	case tea.KeyCtrlK:
		return []byte{0x0b}
	case tea.KeyCtrlL:
		return []byte{0x0c}
	case tea.KeyCtrlN:
		return []byte{0x0e}
	case tea.KeyCtrlO:
		return []byte{0x0f}
	case tea.KeyCtrlP:
		return []byte{0x10}
	case tea.KeyCtrlR:
		return []byte{0x12}
	case tea.KeyCtrlU:
		return []byte{0x15}
	case tea.KeyCtrlW:
		return []byte{0x17}
	default:
		return []byte(msg.String())
	}
}

// mouseButtonCode maps a bubbletea button to the base Cb value the X10/SGR
// mouse protocols encode; wheel events use the high bits xterm reserves for
// them rather than the low 0-2 button range.
func mouseButtonCode(b tea.MouseButton) int {
	switch b {
	case tea.MouseButtonMiddle:
		return 1
	case tea.MouseButtonRight:
		return 2
	case tea.MouseButtonWheelUp:
		return 64
	case tea.MouseButtonWheelDown:
		return 65
	default:
		return 0
	}
}

// encodeMouseReport renders msg as an xterm mouse report: SGR (mode 1006)
// when sgr is set, otherwise the legacy X10 3-byte form. Motion events add
// 32 to the button code per the xterm protocol, and a release is reported
// as button code 3 in the X10 form (it carries no button identity) or as
// the 'm' terminator in SGR (which keeps the button identity).
func encodeMouseReport(msg tea.MouseMsg, sgr bool) []byte {
	cb := mouseButtonCode(msg.Button)
	if msg.Action == tea.MouseActionMotion {
		cb += 32
	}
	x, y := msg.X+1, msg.Y+1

	if sgr {
		final := byte('M')
		if msg.Action == tea.MouseActionRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, x, y, final))
	}

	if msg.Action == tea.MouseActionRelease {
		cb = 3
	}
	clampByte := func(v int) byte {
		if v > 255-32 {
			v = 255 - 32
		}
		return byte(v + 32)
	}
	return []byte{0x1b, '[', 'M', byte(cb + 32), clampByte(x), clampByte(y)}
}
