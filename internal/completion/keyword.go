package completion

import (
	"context"
	"regexp"
	"sort"

	"github.com/sahilm/fuzzy"
)

var identifierRe = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// KeywordProvider suggests candidates from two sources per §4.8: the
// language's reserved keyword list, and distinct identifiers harvested
// from the buffer text, ranked by frequency (occurrences in the buffer)
// then by fuzzy-match score against the current word prefix. It's the
// always-available fallback when no language server is attached.
type KeywordProvider struct{}

func (KeywordProvider) Name() string { return "keyword" }

func (KeywordProvider) Complete(_ context.Context, _ string, text string, offset int, language string) ([]Item, error) {
	prefix := wordPrefix(text, offset)
	if prefix == "" {
		return nil, nil
	}

	freq := make(map[string]int)
	for _, m := range identifierRe.FindAllString(text, -1) {
		freq[m]++
	}
	for _, kw := range languageKeywords[language] {
		if _, ok := freq[kw]; !ok {
			freq[kw] = 0
		}
	}
	delete(freq, prefix)

	words := make([]string, 0, len(freq))
	for w := range freq {
		words = append(words, w)
	}
	sort.Strings(words) // stable input order for fuzzy.Find ties

	matches := fuzzy.Find(prefix, words)
	sort.SliceStable(matches, func(i, j int) bool {
		wi, wj := matches[i].Str, matches[j].Str
		if freq[wi] != freq[wj] {
			return freq[wi] > freq[wj]
		}
		return matches[i].Score > matches[j].Score
	})

	items := make([]Item, 0, len(matches))
	for _, m := range matches {
		items = append(items, Item{
			Label:      m.Str,
			InsertText: m.Str,
			Detail:     "keyword",
			Source:     "keyword",
			Score:      m.Score,
		})
	}
	return items, nil
}
