package vtparse

import (
	"reflect"
	"testing"
)

func collect(t *testing.T, chunks ...[]byte) []Action {
	t.Helper()
	var p Parser
	var out []Action
	for _, c := range chunks {
		p.Feed(c, func(a Action) { out = append(out, a) })
	}
	return out
}

func TestChunkIndependencePrintAndCsi(t *testing.T) {
	full := []byte("A\x1b[31mB\x1b[0m")
	whole := collect(t, full)

	for split := 0; split <= len(full); split++ {
		chunked := collect(t, full[:split], full[split:])
		if !reflect.DeepEqual(whole, chunked) {
			t.Fatalf("split at %d mismatched:\n whole=%+v\nchunked=%+v", split, whole, chunked)
		}
	}
}

func TestChunkIndependenceAcrossEscapeBoundary(t *testing.T) {
	full := []byte("\x1b[1;31;4mhi\x1b[m")
	for split := 0; split <= len(full); split++ {
		whole := collect(t, full)
		chunked := collect(t, full[:split], full[split:])
		if !reflect.DeepEqual(whole, chunked) {
			t.Fatalf("split at %d mismatched:\n whole=%+v\nchunked=%+v", split, whole, chunked)
		}
	}
}

func TestChunkIndependenceOscSplitMidTitle(t *testing.T) {
	full := []byte("\x1b]0;my title\x07")
	for split := 0; split <= len(full); split++ {
		whole := collect(t, full)
		chunked := collect(t, full[:split], full[split:])
		if !reflect.DeepEqual(whole, chunked) {
			t.Fatalf("split at %d mismatched:\n whole=%+v\nchunked=%+v", split, whole, chunked)
		}
	}
}

func TestPrintEmitsEachRune(t *testing.T) {
	acts := collect(t, []byte("hi"))
	if len(acts) != 2 || acts[0].Rune != 'h' || acts[1].Rune != 'i' {
		t.Fatalf("unexpected actions: %+v", acts)
	}
}

func TestCsiCursorPositionParams(t *testing.T) {
	acts := collect(t, []byte("\x1b[10;20H"))
	if len(acts) != 1 {
		t.Fatalf("expected 1 action, got %d: %+v", len(acts), acts)
	}
	a := acts[0]
	if a.Kind != KindCsiDispatch || a.Final != 'H' {
		t.Fatalf("unexpected action: %+v", a)
	}
	if !reflect.DeepEqual(a.Params, []int{10, 20}) {
		t.Fatalf("params = %v, want [10 20]", a.Params)
	}
}

func TestCsiPrivateModeSet(t *testing.T) {
	acts := collect(t, []byte("\x1b[?1049h"))
	a := acts[0]
	if a.Private != '?' || a.Final != 'h' || a.Params[0] != 1049 {
		t.Fatalf("unexpected action: %+v", a)
	}
}

func TestCsiDefaultParamHasParamFalse(t *testing.T) {
	acts := collect(t, []byte("\x1b[m"))
	a := acts[0]
	if a.Kind != KindCsiDispatch || a.Final != 'm' {
		t.Fatalf("unexpected: %+v", a)
	}
	if len(a.HasParam) != 1 || a.HasParam[0] {
		t.Fatalf("expected single absent param, got %+v", a.HasParam)
	}
}

func TestEscDispatchSimple(t *testing.T) {
	acts := collect(t, []byte("\x1bc"))
	if len(acts) != 1 || acts[0].Kind != KindEscDispatch || acts[0].Final != 'c' {
		t.Fatalf("unexpected: %+v", acts)
	}
}

func TestC0ExecuteInterleavedWithPrint(t *testing.T) {
	acts := collect(t, []byte("a\nb"))
	if len(acts) != 3 {
		t.Fatalf("expected 3 actions, got %+v", acts)
	}
	if acts[1].Kind != KindExecute || acts[1].C0 != '\n' {
		t.Fatalf("expected execute \\n, got %+v", acts[1])
	}
}

func TestOscMultipleParams(t *testing.T) {
	acts := collect(t, []byte("\x1b]4;1;rgb:ff/00/00\x07"))
	if len(acts) != 1 || acts[0].Kind != KindOscDispatch {
		t.Fatalf("unexpected: %+v", acts)
	}
	parts := acts[0].OscParams
	if len(parts) != 3 || string(parts[0]) != "4" || string(parts[1]) != "1" {
		t.Fatalf("unexpected osc parts: %q", parts)
	}
}

func TestUtf8MultibyteAcrossChunks(t *testing.T) {
	// U+00E9 'é' is 0xC3 0xA9 in UTF-8.
	full := []byte{0xC3, 0xA9}
	whole := collect(t, full)
	chunked := collect(t, full[:1], full[1:])
	if !reflect.DeepEqual(whole, chunked) {
		t.Fatalf("mismatch: whole=%+v chunked=%+v", whole, chunked)
	}
	if len(whole) != 1 || whole[0].Rune != 'é' {
		t.Fatalf("unexpected decode: %+v", whole)
	}
}

func TestDcsHookPutUnhook(t *testing.T) {
	// feed hook+one data byte, then terminator separately to also exercise
	// chunk independence across the passthrough/terminator boundary.
	var p Parser
	var out []Action
	p.Feed([]byte("\x1bP1$q"), func(a Action) { out = append(out, a) })
	p.Feed([]byte("m"), func(a Action) { out = append(out, a) })
	p.Feed([]byte("\x1b"), func(a Action) { out = append(out, a) })
	if len(out) != 3 {
		t.Fatalf("expected hook+put+unhook, got %+v", out)
	}
	if out[0].Kind != KindHook {
		t.Fatalf("expected hook first, got %+v", out[0])
	}
	if out[1].Kind != KindPut || out[1].PutByte != 'm' {
		t.Fatalf("expected put 'm', got %+v", out[1])
	}
	if out[2].Kind != KindUnhook {
		t.Fatalf("expected unhook on the terminator, got %+v", out[2])
	}
}
