package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteReadMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	id, _ := json.Marshal(1)
	msg := Message{JSONRPC: "2.0", ID: id, Method: "initialize", Params: json.RawMessage(`{"foo":1}`)}
	if err := writeMessage(&buf, msg); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := readMessage(bufio.NewReader(&buf))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Method != "initialize" {
		t.Fatalf("got method %q", got.Method)
	}
}

func TestReadMessageMultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	_ = writeMessage(&buf, Message{JSONRPC: "2.0", Method: "a"})
	_ = writeMessage(&buf, Message{JSONRPC: "2.0", Method: "b"})
	r := bufio.NewReader(&buf)
	m1, err := readMessage(r)
	if err != nil || m1.Method != "a" {
		t.Fatalf("first frame: %+v %v", m1, err)
	}
	m2, err := readMessage(r)
	if err != nil || m2.Method != "b" {
		t.Fatalf("second frame: %+v %v", m2, err)
	}
}

func TestReadMessageMissingContentLength(t *testing.T) {
	r := bufio.NewReader(bytes.NewBufferString("X-Foo: bar\r\n\r\n"))
	if _, err := readMessage(r); err == nil {
		t.Fatalf("expected error for missing Content-Length")
	}
}
