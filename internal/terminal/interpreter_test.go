package terminal

import (
	"testing"

	"ratline/internal/grid"
	"ratline/internal/vtparse"
)

func TestDSRCursorPositionReportsOneBasedPosition(t *testing.T) {
	g := grid.New(20, 5)
	g.MoveTo(3, 2) // 0-based col=3, row=2

	var got []byte
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'n', Params: []int{6}}, func(b []byte) {
		got = append(got, b...)
	})

	if want := "\x1b[3;4R"; string(got) != want {
		t.Fatalf("DSR(6) reply = %q, want %q", got, want)
	}
}

func TestDSRDeviceStatusReportsOK(t *testing.T) {
	g := grid.New(20, 5)

	var got []byte
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'n', Params: []int{5}}, func(b []byte) {
		got = append(got, b...)
	})

	if want := "\x1b[0n"; string(got) != want {
		t.Fatalf("DSR(5) reply = %q, want %q", got, want)
	}
}

func TestPrimaryDeviceAttributesReplies(t *testing.T) {
	g := grid.New(20, 5)

	var got []byte
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'c'}, func(b []byte) {
		got = append(got, b...)
	})

	if len(got) == 0 {
		t.Fatal("expected a primary DA reply")
	}
}

func TestSecondaryDeviceAttributesReplies(t *testing.T) {
	g := grid.New(20, 5)

	var got []byte
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'c', Private: '>'}, func(b []byte) {
		got = append(got, b...)
	})

	if len(got) == 0 {
		t.Fatal("expected a secondary DA reply")
	}
}

func TestPrivateModeSetsAppCursorKeys(t *testing.T) {
	g := grid.New(20, 5)
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'h', Private: '?', Params: []int{1}}, nil)
	if !g.Mode().AppCursorKeys {
		t.Fatal("expected DECCKM set after CSI ?1h")
	}
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'l', Private: '?', Params: []int{1}}, nil)
	if g.Mode().AppCursorKeys {
		t.Fatal("expected DECCKM cleared after CSI ?1l")
	}
}

func TestPrivateModeTracksMouseReportingAndSGR(t *testing.T) {
	g := grid.New(20, 5)
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'h', Private: '?', Params: []int{1002}}, nil)
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'h', Private: '?', Params: []int{1006}}, nil)
	m := g.Mode()
	if m.MouseReport != grid.MouseReportVT200 || !m.MouseSGR {
		t.Fatalf("expected VT200 mouse reporting with SGR encoding, got %+v", m)
	}

	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'l', Private: '?', Params: []int{1002}}, nil)
	if g.Mode().MouseReport != grid.MouseReportOff {
		t.Fatal("expected mouse reporting off after CSI ?1002l")
	}
}

func TestPrivateModeSetsBracketedPaste(t *testing.T) {
	g := grid.New(20, 5)
	interpret(g, vtparse.Action{Kind: vtparse.KindCsiDispatch, Final: 'h', Private: '?', Params: []int{2004}}, nil)
	if !g.Mode().BracketedPaste {
		t.Fatal("expected bracketed paste set after CSI ?2004h")
	}
}
