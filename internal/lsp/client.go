package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"
)

// ErrServerGone is returned by any in-flight or new request once the
// language server subprocess has exited.
var ErrServerGone = errors.New("lsp: server gone")

// ServerSpec names a language server to spawn, keyed by language id. Shaped
// like the MCP server catalog entry (Command + Args), the same registry
// pattern used for the editor's other subprocess-backed integrations.
type ServerSpec struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
}

// pending tracks one in-flight request awaiting a response.
type pending struct {
	resultCh chan Message
}

// Client manages one spawned language server process: request/response
// correlation by id, notification dispatch, and lifecycle.
type Client struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader

	mu      sync.Mutex
	nextID  int
	waiting map[int]*pending
	gone    bool

	onNotify func(method string, params json.RawMessage)
}

// Start spawns the server described by spec and begins reading its stdout
// in a background goroutine.
func Start(ctx context.Context, spec ServerSpec, onNotify func(string, json.RawMessage)) (*Client, error) {
	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Env = os.Environ()
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	c := &Client{
		cmd:      cmd,
		stdin:    stdin,
		stdout:   bufio.NewReader(stdout),
		waiting:  make(map[int]*pending),
		onNotify: onNotify,
	}
	go c.readLoop()
	go c.waitExit()
	return c, nil
}

func (c *Client) waitExit() {
	_ = c.cmd.Wait()
	c.mu.Lock()
	c.gone = true
	for _, p := range c.waiting {
		close(p.resultCh)
	}
	c.waiting = map[int]*pending{}
	c.mu.Unlock()
}

func (c *Client) readLoop() {
	for {
		msg, err := readMessage(c.stdout)
		if err != nil {
			return
		}
		if msg.Method != "" && len(msg.ID) == 0 {
			if c.onNotify != nil {
				c.onNotify(msg.Method, msg.Params)
			}
			continue
		}
		var id int
		if err := json.Unmarshal(msg.ID, &id); err != nil {
			continue
		}
		c.mu.Lock()
		p, ok := c.waiting[id]
		if ok {
			delete(c.waiting, id)
		}
		c.mu.Unlock()
		if ok {
			p.resultCh <- msg
		}
	}
}

// Call sends a request and blocks for its response, honoring ctx and
// failing fast with ErrServerGone if the process has already exited.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	c.mu.Lock()
	if c.gone {
		c.mu.Unlock()
		return nil, ErrServerGone
	}
	c.nextID++
	id := c.nextID
	p := &pending{resultCh: make(chan Message, 1)}
	c.waiting[id] = p
	c.mu.Unlock()

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	idBytes, _ := json.Marshal(id)
	msg := Message{JSONRPC: "2.0", ID: idBytes, Method: method, Params: raw}
	if err := writeMessage(c.stdin, msg); err != nil {
		return nil, err
	}

	select {
	case resp, ok := <-p.resultCh:
		if !ok {
			return nil, ErrServerGone
		}
		if resp.Error != nil {
			return nil, resp.Error
		}
		return resp.Result, nil
	case <-ctx.Done():
		c.cancelRequest(id)
		return nil, ctx.Err()
	}
}

// Notify sends a one-way notification (no response expected).
func (c *Client) Notify(method string, params any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	return writeMessage(c.stdin, Message{JSONRPC: "2.0", Method: method, Params: raw})
}

// cancelRequest sends $/cancelRequest for a request this client gave up
// waiting on (context deadline/cancel), so the server can stop working on
// it even though Call has already returned to its caller.
func (c *Client) cancelRequest(id int) {
	c.mu.Lock()
	delete(c.waiting, id)
	c.mu.Unlock()
	_ = c.Notify("$/cancelRequest", map[string]int{"id": id})
}

// Initialize performs the LSP initialize/initialized handshake.
func (c *Client) Initialize(ctx context.Context, rootURI string) error {
	params := map[string]any{
		"processId":    os.Getpid(),
		"rootUri":      rootURI,
		"capabilities": map[string]any{},
	}
	if _, err := c.Call(ctx, "initialize", params); err != nil {
		return fmt.Errorf("lsp: initialize: %w", err)
	}
	return c.Notify("initialized", map[string]any{})
}

// Shutdown performs the shutdown/exit sequence, then waits (bounded) for
// the process to exit on its own before the caller force-kills it.
func (c *Client) Shutdown(ctx context.Context) error {
	if _, err := c.Call(ctx, "shutdown", nil); err != nil && !errors.Is(err, ErrServerGone) {
		return err
	}
	_ = c.Notify("exit", nil)
	select {
	case <-time.After(2 * time.Second):
		return c.cmd.Process.Kill()
	case <-waitDone(c.cmd):
		return nil
	}
}

func waitDone(cmd *exec.Cmd) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		// Wait is already called by the client's waitExit goroutine; polling
		// ProcessState avoids a double-Wait panic.
		for cmd.ProcessState == nil {
			time.Sleep(20 * time.Millisecond)
		}
		close(ch)
	}()
	return ch
}
