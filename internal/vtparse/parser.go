package vtparse

import "unicode/utf8"

type state int

const (
	stGround state = iota
	stEscape
	stEscapeIntermediate
	stCsiEntry
	stCsiParam
	stCsiIntermediate
	stCsiIgnore
	stOscString
	stDcsEntry
	stDcsParam
	stDcsIntermediate
	stDcsPassthrough
	stDcsIgnore
)

const maxParams = 32
const maxIntermediates = 8

// Parser is the VT byte-stream state machine. Feed bytes and drain the
// resulting Actions via Sink. A zero Parser is ready to use.
type Parser struct {
	state state

	params   [maxParams]int
	hasParam [maxParams]bool
	nparams  int

	intermediates [maxIntermediates]byte
	nintermediate int

	private byte

	oscBuf   []byte
	oscParts [][]byte

	// utf8 continuation accumulation for Print
	utfBuf [utf8.UTFMax]byte
	utfLen int
	utfWant int
}

// Sink receives Actions as they are produced by Feed.
type Sink func(Action)

// Feed processes b, invoking emit for every action produced. Calling Feed
// repeatedly with arbitrary chunk boundaries over the same overall byte
// stream produces the same action sequence as a single Feed call (parser
// chunk-independence, per the spec's testable properties).
func (p *Parser) Feed(b []byte, emit Sink) {
	for _, c := range b {
		p.step(c, emit)
	}
}

func (p *Parser) resetParams() {
	p.nparams = 0
	p.nintermediate = 0
	p.private = 0
	for i := range p.params {
		p.params[i] = 0
		p.hasParam[i] = false
	}
}

func (p *Parser) step(c byte, emit Sink) {
	// UTF-8 continuation bytes are consumed regardless of state if we're
	// mid-sequence; otherwise fall through to the state machine which
	// handles C0 controls and the start of a UTF-8 sequence in Ground.
	if p.utfWant > 0 {
		if c&0xC0 == 0x80 {
			p.utfBuf[p.utfLen] = c
			p.utfLen++
			if p.utfLen == p.utfWant {
				r, _ := utf8.DecodeRune(p.utfBuf[:p.utfLen])
				p.utfWant = 0
				p.utfLen = 0
				emit(Action{Kind: KindPrint, Rune: r})
			}
			return
		}
		// invalid continuation: emit replacement and reprocess c normally
		p.utfWant = 0
		p.utfLen = 0
		emit(Action{Kind: KindPrint, Rune: utf8.RuneError})
	}

	switch p.state {
	case stGround:
		p.groundByte(c, emit)
	case stEscape:
		p.escapeByte(c, emit)
	case stEscapeIntermediate:
		p.escapeIntermediateByte(c, emit)
	case stCsiEntry:
		p.csiEntryByte(c, emit)
	case stCsiParam:
		p.csiParamByte(c, emit)
	case stCsiIntermediate:
		p.csiIntermediateByte(c, emit)
	case stCsiIgnore:
		p.csiIgnoreByte(c)
	case stOscString:
		p.oscByte(c, emit)
	case stDcsEntry, stDcsParam, stDcsIntermediate, stDcsPassthrough, stDcsIgnore:
		p.dcsByte(c, emit)
	}
}

func isC0(c byte) bool { return c < 0x20 || c == 0x7f }

func (p *Parser) groundByte(c byte, emit Sink) {
	switch {
	case c == 0x1b:
		p.state = stEscape
	case isC0(c):
		emit(Action{Kind: KindExecute, C0: c})
	case c < 0x80:
		emit(Action{Kind: KindPrint, Rune: rune(c)})
	default:
		p.beginUTF8(c, emit)
	}
}

func (p *Parser) beginUTF8(c byte, emit Sink) {
	switch {
	case c&0xE0 == 0xC0:
		p.utfWant = 2
	case c&0xF0 == 0xE0:
		p.utfWant = 3
	case c&0xF8 == 0xF0:
		p.utfWant = 4
	default:
		emit(Action{Kind: KindPrint, Rune: utf8.RuneError})
		return
	}
	p.utfLen = 1
	p.utfBuf[0] = c
}

func (p *Parser) escapeByte(c byte, emit Sink) {
	switch {
	case c == '[':
		p.resetParams()
		p.state = stCsiEntry
	case c == ']':
		p.oscBuf = p.oscBuf[:0]
		p.oscParts = nil
		p.state = stOscString
	case c == 'P':
		p.resetParams()
		p.state = stDcsEntry
	case c == 'X' || c == '^' || c == '_':
		// SOS/PM/APC: consume until ST, no dispatch.
		p.state = stDcsIgnore
	case c >= 0x20 && c <= 0x2f:
		p.nintermediate = 0
		p.addIntermediate(c)
		p.state = stEscapeIntermediate
	case c >= 0x30 && c <= 0x7e:
		emit(Action{Kind: KindEscDispatch, Intermediates: p.copyIntermediates(), Final: c})
		p.state = stGround
	case isC0(c):
		emit(Action{Kind: KindExecute, C0: c})
	default:
		p.state = stGround
	}
}

func (p *Parser) escapeIntermediateByte(c byte, emit Sink) {
	switch {
	case c >= 0x20 && c <= 0x2f:
		p.addIntermediate(c)
	case c >= 0x30 && c <= 0x7e:
		emit(Action{Kind: KindEscDispatch, Intermediates: p.copyIntermediates(), Final: c})
		p.state = stGround
	case isC0(c):
		emit(Action{Kind: KindExecute, C0: c})
	default:
		p.state = stGround
	}
}

func (p *Parser) addIntermediate(c byte) {
	if p.nintermediate < maxIntermediates {
		p.intermediates[p.nintermediate] = c
		p.nintermediate++
	}
}

func (p *Parser) copyIntermediates() []byte {
	if p.nintermediate == 0 {
		return nil
	}
	out := make([]byte, p.nintermediate)
	copy(out, p.intermediates[:p.nintermediate])
	return out
}

func (p *Parser) csiEntryByte(c byte, emit Sink) {
	switch {
	case c == '?' || c == '<' || c == '=' || c == '>':
		p.private = c
		p.state = stCsiParam
	case c >= '0' && c <= '9':
		p.csiParamDigit(c)
		p.state = stCsiParam
	case c == ';':
		p.nparams++
		p.state = stCsiParam
	case c >= 0x20 && c <= 0x2f:
		p.addIntermediate(c)
		p.state = stCsiIntermediate
	case c >= 0x40 && c <= 0x7e:
		p.dispatchCsi(c, emit)
		p.state = stGround
	case isC0(c):
		emit(Action{Kind: KindExecute, C0: c})
	default:
		p.state = stCsiIgnore
	}
}

func (p *Parser) csiParamByte(c byte, emit Sink) {
	switch {
	case c >= '0' && c <= '9':
		p.csiParamDigit(c)
	case c == ';':
		p.nparams++
		if p.nparams >= maxParams {
			p.state = stCsiIgnore
		}
	case c >= 0x20 && c <= 0x2f:
		p.addIntermediate(c)
		p.state = stCsiIntermediate
	case c >= 0x40 && c <= 0x7e:
		p.dispatchCsi(c, emit)
		p.state = stGround
	case isC0(c):
		emit(Action{Kind: KindExecute, C0: c})
	default:
		p.state = stCsiIgnore
	}
}

func (p *Parser) csiIntermediateByte(c byte, emit Sink) {
	switch {
	case c >= 0x20 && c <= 0x2f:
		p.addIntermediate(c)
	case c >= 0x40 && c <= 0x7e:
		p.dispatchCsi(c, emit)
		p.state = stGround
	case isC0(c):
		emit(Action{Kind: KindExecute, C0: c})
	default:
		p.state = stCsiIgnore
	}
}

func (p *Parser) csiIgnoreByte(c byte) {
	if c >= 0x40 && c <= 0x7e {
		p.state = stGround
	}
}

func (p *Parser) csiParamDigit(c byte) {
	if p.nparams >= maxParams {
		return
	}
	p.hasParam[p.nparams] = true
	p.params[p.nparams] = p.params[p.nparams]*10 + int(c-'0')
}

func (p *Parser) dispatchCsi(final byte, emit Sink) {
	n := p.nparams
	if p.hasParam[n] || n == 0 {
		n++
	}
	params := make([]int, n)
	has := make([]bool, n)
	copy(params, p.params[:n])
	copy(has, p.hasParam[:n])
	emit(Action{
		Kind:          KindCsiDispatch,
		Params:        params,
		HasParam:      has,
		Intermediates: p.copyIntermediates(),
		Final:         final,
		Private:       p.private,
	})
}

func (p *Parser) oscByte(c byte, emit Sink) {
	switch c {
	case 0x07, 0x1b: // BEL or start of ST (ESC \)
		p.flushOsc(emit)
		p.state = stGround
		if c == 0x1b {
			// the ESC ends the string; the following '\' then completes an
			// ESC sequence (dispatched with Final '\') instead of printing.
			p.state = stEscape
		}
	case ';':
		p.oscParts = append(p.oscParts, append([]byte(nil), p.oscBuf...))
		p.oscBuf = p.oscBuf[:0]
	default:
		if c >= 0x20 {
			p.oscBuf = append(p.oscBuf, c)
		}
	}
}

func (p *Parser) flushOsc(emit Sink) {
	p.oscParts = append(p.oscParts, append([]byte(nil), p.oscBuf...))
	emit(Action{Kind: KindOscDispatch, OscParams: p.oscParts})
	p.oscBuf = nil
	p.oscParts = nil
}

// dcsByte implements a minimal DCS handler: Hook on entry, Put per data
// byte, Unhook on ST. Parameters collected the same way as CSI.
func (p *Parser) dcsByte(c byte, emit Sink) {
	switch p.state {
	case stDcsEntry:
		switch {
		case c >= '0' && c <= '9':
			p.csiParamDigit(c)
			p.state = stDcsParam
		case c == ';':
			p.nparams++
			p.state = stDcsParam
		case c >= 0x20 && c <= 0x2f:
			p.addIntermediate(c)
			p.state = stDcsIntermediate
		case c >= 0x40 && c <= 0x7e:
			p.hookAndEnterPassthrough(c, emit)
		case c == 0x1b:
			p.state = stGround
		}
	case stDcsParam:
		switch {
		case c >= '0' && c <= '9':
			p.csiParamDigit(c)
		case c == ';':
			p.nparams++
		case c >= 0x20 && c <= 0x2f:
			p.addIntermediate(c)
			p.state = stDcsIntermediate
		case c >= 0x40 && c <= 0x7e:
			p.hookAndEnterPassthrough(c, emit)
		case c == 0x1b:
			p.state = stGround
		}
	case stDcsIntermediate:
		switch {
		case c >= 0x20 && c <= 0x2f:
			p.addIntermediate(c)
		case c >= 0x40 && c <= 0x7e:
			p.hookAndEnterPassthrough(c, emit)
		case c == 0x1b:
			p.state = stGround
		}
	case stDcsPassthrough:
		if c == 0x1b {
			emit(Action{Kind: KindUnhook})
			p.state = stEscape
			return
		}
		emit(Action{Kind: KindPut, PutByte: c})
	case stDcsIgnore:
		if c == 0x1b {
			p.state = stEscape
		}
	}
}

func (p *Parser) hookAndEnterPassthrough(final byte, emit Sink) {
	n := p.nparams
	if p.hasParam[n] || n == 0 {
		n++
	}
	params := make([]int, n)
	has := make([]bool, n)
	copy(params, p.params[:n])
	copy(has, p.hasParam[:n])
	emit(Action{
		Kind:          KindHook,
		Params:        params,
		HasParam:      has,
		Intermediates: p.copyIntermediates(),
		Final:         final,
	})
	p.state = stDcsPassthrough
}
