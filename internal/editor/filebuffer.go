package editor

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"ratline/internal/cursor"
)

// EditorBuffer wraps one Editor with the file identity and dirty
// bookkeeping the spec's data model names separately from the bare text
// buffer: a path (or "untitled"), a dirty flag, and a language hint
// derived from the path extension, used to pick an LSP server and a
// keyword list.
type EditorBuffer struct {
	*Editor
	ID       string // stable per-buffer id, used to key completion state
	Path     string // "" means untitled
	Dirty    bool
	Language string
}

// NewFileBuffer creates an EditorBuffer over initial content for path (""
// for untitled), deriving its language hint from the extension.
func NewFileBuffer(path, initial string, keymap KeymapID, width, height int) *EditorBuffer {
	id := path
	if id == "" {
		id = "untitled-" + uuid.NewString()
	}
	return &EditorBuffer{
		Editor:   New(initial, keymap, width, height),
		ID:       id,
		Path:     path,
		Language: languageFromPath(path),
	}
}

// OpenFile loads path into a new EditorBuffer. A missing file yields an
// empty untitled-at-path buffer rather than an error, matching "open or
// create" editor semantics.
func OpenFile(path string, keymap KeymapID, width, height int) (*EditorBuffer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewFileBuffer(path, "", keymap, width, height), nil
		}
		return nil, err
	}
	return NewFileBuffer(path, string(b), keymap, width, height), nil
}

// Save writes the buffer's text to Path. On failure the error is returned
// for the caller to surface on the status line (§4.7) and the dirty flag
// stays set; on success Save clears it.
func (eb *EditorBuffer) Save() error {
	if eb.Path == "" {
		return errUntitled
	}
	if err := os.WriteFile(eb.Path, []byte(eb.Buffer.Text.String()), 0o644); err != nil {
		return err
	}
	eb.Dirty = false
	return nil
}

var errUntitled = pathError("cannot save: buffer has no path")

type pathError string

func (e pathError) Error() string { return string(e) }

// MarkEdited sets Dirty; call after every mutating Editor.Update.
func (eb *EditorBuffer) MarkEdited() { eb.Dirty = true }

// WordPrefix returns the identifier-like token immediately before the
// cursor, used to decide whether a completion request should fire (an
// empty prefix never fires, per §8).
func (eb *EditorBuffer) WordPrefix() string {
	off := eb.Offset()
	text := eb.Buffer.Text.String()
	if off > len(text) {
		off = len(text)
	}
	i := off
	for i > 0 {
		c := text[i-1]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i--
			continue
		}
		break
	}
	return text[i:off]
}

// Offset returns the cursor's byte offset into the buffer text, the unit
// the completion engine and LSP position math both key on.
func (eb *EditorBuffer) Offset() int {
	off := cursor.Offset(eb.Buffer.Text, eb.Buffer.Cursor.Pos)
	return len(eb.Buffer.Text.Slice(0, off))
}

func languageFromPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".go":
		return "go"
	case ".rs":
		return "rust"
	case ".py":
		return "python"
	case ".js", ".mjs", ".cjs":
		return "javascript"
	case ".ts", ".tsx":
		return "typescript"
	case ".c", ".h":
		return "c"
	case ".cpp", ".cc", ".hpp":
		return "cpp"
	case ".md":
		return "markdown"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	case ".sh":
		return "shell"
	default:
		return ""
	}
}

// Tabs is an ordered collection of EditorBuffers with an active index, the
// "sequence of EditorBuffers (tabs)" the spec's Editor owns.
type Tabs struct {
	buffers []*EditorBuffer
	active  int
}

// NewTabs creates a Tabs collection seeded with one untitled buffer.
func NewTabs(keymap KeymapID, width, height int) *Tabs {
	return &Tabs{buffers: []*EditorBuffer{NewFileBuffer("", "", keymap, width, height)}}
}

// Active returns the focused EditorBuffer, or nil if there are none.
func (t *Tabs) Active() *EditorBuffer {
	if t.active < 0 || t.active >= len(t.buffers) {
		return nil
	}
	return t.buffers[t.active]
}

// All returns every open buffer in tab order.
func (t *Tabs) All() []*EditorBuffer { return t.buffers }

// Open appends a new buffer and focuses it.
func (t *Tabs) Open(eb *EditorBuffer) {
	t.buffers = append(t.buffers, eb)
	t.active = len(t.buffers) - 1
}

// CloseActive removes the focused buffer. Returns false if none remained
// to close.
func (t *Tabs) CloseActive() bool {
	if len(t.buffers) == 0 {
		return false
	}
	t.buffers = append(t.buffers[:t.active], t.buffers[t.active+1:]...)
	if t.active >= len(t.buffers) {
		t.active = len(t.buffers) - 1
	}
	return true
}

// CycleActive moves the active index forward (delta=1) or back (delta=-1),
// wrapping.
func (t *Tabs) CycleActive(delta int) {
	n := len(t.buffers)
	if n == 0 {
		return
	}
	t.active = ((t.active+delta)%n + n) % n
}

// AnyDirty reports whether any open buffer has unsaved changes, used by
// the quit confirmation flow (§4.10).
func (t *Tabs) AnyDirty() bool {
	for _, b := range t.buffers {
		if b.Dirty {
			return true
		}
	}
	return false
}
