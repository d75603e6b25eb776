package lsp

import (
	"context"
	"encoding/json"

	"ratline/internal/completion"
)

// completionItem mirrors the subset of LSP's CompletionItem this client
// understands.
type completionItem struct {
	Label            string `json:"label"`
	InsertText       string `json:"insertText"`
	Detail           string `json:"detail"`
	SortText         string `json:"sortText"`
}

type completionList struct {
	Items []completionItem `json:"items"`
}

// Provider adapts a Client to completion.Provider, converting a buffer
// offset into an LSP line/character position and translating the response
// into completion.Item values.
type Provider struct {
	Client *Client
	URI    func(bufferID string) string
}

func (p *Provider) Name() string { return "lsp" }

func (p *Provider) Complete(ctx context.Context, bufferID, text string, offset int, language string) ([]completion.Item, error) {
	_ = language // the attached server is already language-specific
	line, char := lineChar(text, offset)
	params := map[string]any{
		"textDocument": map[string]string{"uri": p.URI(bufferID)},
		"position":     map[string]int{"line": line, "character": char},
	}
	raw, err := p.Client.Call(ctx, "textDocument/completion", params)
	if err != nil {
		return nil, err
	}

	var list completionList
	if err := json.Unmarshal(raw, &list); err != nil {
		// Some servers return a bare CompletionItem[] instead of a
		// CompletionList wrapper; fall back to that shape.
		var items []completionItem
		if err2 := json.Unmarshal(raw, &items); err2 != nil {
			return nil, err
		}
		list.Items = items
	}

	out := make([]completion.Item, 0, len(list.Items))
	for i, it := range list.Items {
		insert := it.InsertText
		if insert == "" {
			insert = it.Label
		}
		out = append(out, completion.Item{
			Label:      it.Label,
			InsertText: insert,
			Detail:     it.Detail,
			Source:     "lsp",
			Score:      len(list.Items) - i, // preserve server-provided ordering
		})
	}
	return out, nil
}

func lineChar(text string, offset int) (line, char int) {
	if offset > len(text) {
		offset = len(text)
	}
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			char = 0
		} else {
			char++
		}
	}
	return
}
