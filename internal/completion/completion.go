// Package completion implements the async inline completion engine (C10):
// a debounced trigger, fan-out to multiple providers (LSP and a local
// keyword provider), and a merged, deduplicated, capped result list
// rendered as ghost text ahead of the cursor.
package completion

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	debounceWindow = 300 * time.Millisecond
	maxResults     = 100
)

// Item is one completion candidate.
type Item struct {
	Label      string
	InsertText string
	Detail     string
	Source     string // provider name, used for stable tie-break ordering
	Score      int
}

// Provider supplies completion candidates for a buffer prefix. Both the
// LSP-backed provider and the local keyword provider implement this.
// language is the buffer's language hint (e.g. "go", "rust"), used by
// KeywordProvider to pick a reserved-keyword table; LSP providers ignore
// it since the attached server is already language-specific.
type Provider interface {
	Name() string
	Complete(ctx context.Context, bufferID string, text string, offset int, language string) ([]Item, error)
}

// Request describes one completion trigger.
type Request struct {
	BufferID string
	Text     string
	Offset   int
	Language string
}

// Result is what the engine hands back to the editor: the merged item
// list plus the ghost-text suggestion for the top candidate, if any.
type Result struct {
	BufferID string
	Items    []Item
	Ghost    string // text to render dimmed after the cursor; "" if none
}

// Engine debounces requests per buffer and fans them out to providers,
// dropping the results of a request that has gone stale and merging the
// rest.
type Engine struct {
	providers []Provider

	mu       sync.Mutex
	timers   map[string]*time.Timer
	gen      map[string]int // generation counter per buffer, invalidates stale results
	onResult func(Result)
}

// New creates an Engine that calls onResult whenever a (non-stale) result
// is ready.
func New(onResult func(Result), providers ...Provider) *Engine {
	return &Engine{
		providers: providers,
		timers:    make(map[string]*time.Timer),
		gen:       make(map[string]int),
		onResult:  onResult,
	}
}

// Trigger schedules a debounced completion request for req.BufferID,
// cancelling any pending timer for the same buffer. Each keystroke re-arms
// the timer; only the last one within the debounce window actually fires.
func (e *Engine) Trigger(req Request) {
	e.mu.Lock()
	if t, ok := e.timers[req.BufferID]; ok {
		t.Stop()
	}
	e.gen[req.BufferID]++
	gen := e.gen[req.BufferID]
	e.timers[req.BufferID] = time.AfterFunc(debounceWindow, func() {
		e.run(req, gen)
	})
	e.mu.Unlock()
}

// Cancel invalidates any pending or in-flight request for bufferID, e.g.
// because the cursor moved away or the buffer closed.
func (e *Engine) Cancel(bufferID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if t, ok := e.timers[bufferID]; ok {
		t.Stop()
		delete(e.timers, bufferID)
	}
	e.gen[bufferID]++
}

func (e *Engine) run(req Request, gen int) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	results := make([][]Item, len(e.providers))
	for i, p := range e.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			items, err := p.Complete(ctx, req.BufferID, req.Text, req.Offset, req.Language)
			if err == nil {
				results[i] = items
			}
		}(i, p)
	}
	wg.Wait()

	e.mu.Lock()
	stale := e.gen[req.BufferID] != gen
	e.mu.Unlock()
	if stale {
		return
	}

	merged := mergeAndDedupe(results)
	ghost := ""
	if len(merged) > 0 {
		prefix := wordPrefix(req.Text, req.Offset)
		ghost = strings.TrimPrefix(merged[0].InsertText, prefix)
	}
	if e.onResult != nil {
		e.onResult(Result{BufferID: req.BufferID, Items: merged, Ghost: ghost})
	}
}

// mergeAndDedupe concatenates provider results in provider order,
// preserving each provider's own ranking rather than re-sorting
// globally by score, drops duplicate Labels (first occurrence wins, so
// earlier providers take priority on a tie), and caps at maxResults.
func mergeAndDedupe(lists [][]Item) []Item {
	seen := make(map[string]bool)
	var out []Item
	for _, list := range lists {
		for _, it := range list {
			if seen[it.Label] {
				continue
			}
			seen[it.Label] = true
			out = append(out, it)
		}
	}
	if len(out) > maxResults {
		out = out[:maxResults]
	}
	return out
}

// wordPrefix extracts the identifier-like token immediately before the
// byte offset, used by KeywordProvider and by Engine.run to trim the typed
// prefix off the ghost text.
func wordPrefix(text string, offset int) string {
	if offset > len(text) {
		offset = len(text)
	}
	i := offset
	for i > 0 {
		c := text[i-1]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i--
			continue
		}
		break
	}
	return text[i:offset]
}
