package completion

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeProvider struct {
	name  string
	items []Item
	delay time.Duration
}

func (f fakeProvider) Name() string { return f.name }
func (f fakeProvider) Complete(ctx context.Context, _ string, _ string, _ int, _ string) ([]Item, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.items, nil
}

func TestKeywordProviderRanksPrefixMatches(t *testing.T) {
	p := KeywordProvider{}
	text := "function handleClick() { handleSubmit(); }"
	items, err := p.Complete(context.Background(), "b1", text, len("function handle"), "javascript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected at least one suggestion for prefix 'handle'")
	}
	for _, it := range items {
		if it.Source != "keyword" {
			t.Fatalf("expected keyword source, got %q", it.Source)
		}
	}
}

func TestKeywordProviderRanksByFrequencyBeforeFuzzyScore(t *testing.T) {
	p := KeywordProvider{}
	// "result" appears three times, "resultCache" once; both match the
	// in-progress prefix "resu", so the more frequent identifier should
	// rank first despite an equal or weaker fuzzy score.
	text := "result\nresult\nresult\nresultCache\nresu"
	items, err := p.Complete(context.Background(), "b1", text, len(text), "go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) == 0 || items[0].Label != "result" {
		t.Fatalf("expected 'result' to rank first by frequency, got %+v", items)
	}
}

func TestKeywordProviderSurfacesLanguageKeywordNotInBuffer(t *testing.T) {
	p := KeywordProvider{}
	// Only lowercase "result"/"Resul" identifiers exist in the buffer;
	// "Result" must still surface from the Rust reserved-keyword table.
	text := "let result = Resul::compute()"
	items, err := p.Complete(context.Background(), "b1", text, len("let result = Resul"), "rust")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, it := range items {
		if it.Label == "Result" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'Result' keyword among candidates, got %+v", items)
	}
}

func TestMergeAndDedupePreservesProviderOrderAndDedupesByLabel(t *testing.T) {
	first := []Item{
		{Label: "alpha", Score: 1},
		{Label: "beta", Score: 1},
	}
	second := []Item{
		{Label: "beta", Score: 999}, // lower-priority provider, duplicate label
		{Label: "gamma", Score: 999},
	}
	merged := mergeAndDedupe([][]Item{first, second})

	if len(merged) != 3 {
		t.Fatalf("expected 3 deduped items, got %d: %+v", len(merged), merged)
	}
	labels := []string{merged[0].Label, merged[1].Label, merged[2].Label}
	if labels[0] != "alpha" || labels[1] != "beta" || labels[2] != "gamma" {
		t.Fatalf("expected provider order alpha,beta,gamma, got %v", labels)
	}
	if merged[1].Score != 1 {
		t.Fatalf("expected first provider's 'beta' (score 1) to win, got score %d", merged[1].Score)
	}
}

func TestMergeAndDedupeCapsAtMaxResults(t *testing.T) {
	var lists [][]Item
	for i := 0; i < 5; i++ {
		var batch []Item
		for j := 0; j < 30; j++ {
			batch = append(batch, Item{Label: itemLabel(i, j)})
		}
		lists = append(lists, batch)
	}
	merged := mergeAndDedupe(lists)
	if len(merged) != maxResults {
		t.Fatalf("expected cap at %d, got %d", maxResults, len(merged))
	}
}

func itemLabel(i, j int) string {
	return string(rune('a'+i)) + string(rune('A'+j))
}

func TestEngineDebounceOnlyFiresLastTrigger(t *testing.T) {
	var mu sync.Mutex
	var results []Result
	e := New(func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}, fakeProvider{name: "fake", items: []Item{{Label: "x", InsertText: "x", Score: 1}}})

	e.Trigger(Request{BufferID: "b1", Text: "a", Offset: 1})
	time.Sleep(50 * time.Millisecond)
	e.Trigger(Request{BufferID: "b1", Text: "ab", Offset: 2})

	time.Sleep(debounceWindow + 200*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result after debounce, got %d", len(results))
	}
}

func TestEngineGhostIsSuffixAfterPrefixNotFullLabel(t *testing.T) {
	var mu sync.Mutex
	var got Result
	e := New(func(r Result) {
		mu.Lock()
		got = r
		mu.Unlock()
	}, fakeProvider{name: "fake", items: []Item{{Label: "Result", InsertText: "Result"}}})

	text := "let result = Resul"
	e.Trigger(Request{BufferID: "b1", Text: text, Offset: len(text)})
	time.Sleep(debounceWindow + 200*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if got.Ghost != "t" {
		t.Fatalf("expected ghost suffix %q, got %q", "t", got.Ghost)
	}
}

func TestEngineCancelSuppressesStaleResult(t *testing.T) {
	var mu sync.Mutex
	fired := false
	e := New(func(r Result) {
		mu.Lock()
		fired = true
		mu.Unlock()
	}, fakeProvider{name: "fake", items: []Item{{Label: "x", InsertText: "x"}}})

	e.Trigger(Request{BufferID: "b1", Text: "a", Offset: 1})
	e.Cancel("b1")
	time.Sleep(debounceWindow + 200*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Fatalf("expected cancelled request to suppress result")
	}
}
