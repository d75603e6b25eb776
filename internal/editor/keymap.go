package editor

// KeymapID selects which keymap dispatch table Editor.Update consults.
type KeymapID int

const (
	KeymapDefault KeymapID = iota
	KeymapVim
	KeymapEmacs
)

// Mode is the editor's modal state. Emacs and Default keymaps only ever use
// ModeInsert; Vim uses all four.
type Mode int

const (
	ModeInsert Mode = iota
	ModeNormal
	ModeVisual
	ModeCommand
)

// Action is a keymap-resolved editing command, decoupled from any specific
// key so Vim/Emacs/Default can all reach it via different bindings.
type Action int

const (
	ActionNone Action = iota
	ActionInsertRune
	ActionBackspace
	ActionDeleteForward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionMoveLineStart
	ActionMoveLineEnd
	ActionMoveWordForward
	ActionMoveWordBackward
	ActionMoveBufferStart
	ActionMoveBufferEnd
	ActionNewline
	ActionUndo
	ActionRedo
	ActionEnterInsertMode
	ActionEnterInsertModeAfter
	ActionEnterNormalMode
	ActionEnterVisualMode
	ActionEnterCommandMode
	ActionDeleteSelection
	ActionYank
	ActionPaste
	ActionDeleteLine
	ActionSave
)

// bindingTable maps a key string (tea.KeyMsg.String()) to an Action for one
// (keymap, mode) pair. A context/key -> action table, per the editor's
// design notes, instead of a hand-duplicated switch per keymap.
type bindingTable map[string]Action

var defaultBindings = bindingTable{
	"left": ActionMoveLeft, "right": ActionMoveRight,
	"up": ActionMoveUp, "down": ActionMoveDown,
	"home": ActionMoveLineStart, "end": ActionMoveLineEnd,
	"backspace": ActionBackspace, "delete": ActionDeleteForward,
	"enter": ActionNewline,
	"ctrl+z": ActionUndo, "ctrl+y": ActionRedo,
	"ctrl+left": ActionMoveWordBackward, "ctrl+right": ActionMoveWordForward,
}

var emacsBindings = bindingTable{
	"left": ActionMoveLeft, "right": ActionMoveRight,
	"up": ActionMoveUp, "down": ActionMoveDown,
	"ctrl+b": ActionMoveLeft, "ctrl+f": ActionMoveRight,
	"ctrl+p": ActionMoveUp, "ctrl+n": ActionMoveDown,
	"ctrl+a": ActionMoveLineStart, "ctrl+e": ActionMoveLineEnd,
	"alt+b": ActionMoveWordBackward, "alt+f": ActionMoveWordForward,
	"alt+<": ActionMoveBufferStart, "alt+>": ActionMoveBufferEnd,
	"backspace": ActionBackspace, "ctrl+d": ActionDeleteForward, "delete": ActionDeleteForward,
	"enter": ActionNewline,
	"ctrl+_": ActionUndo,
	"ctrl+k": ActionDeleteLine,
	"ctrl+x": ActionSave,
}

var vimNormalBindings = bindingTable{
	"h": ActionMoveLeft, "l": ActionMoveRight, "k": ActionMoveUp, "j": ActionMoveDown,
	"left": ActionMoveLeft, "right": ActionMoveRight, "up": ActionMoveUp, "down": ActionMoveDown,
	"0": ActionMoveLineStart, "$": ActionMoveLineEnd,
	"w": ActionMoveWordForward, "b": ActionMoveWordBackward,
	"g": ActionMoveBufferStart, "G": ActionMoveBufferEnd,
	"i": ActionEnterInsertMode, "a": ActionEnterInsertModeAfter,
	"v": ActionEnterVisualMode,
	":": ActionEnterCommandMode,
	"x": ActionDeleteForward,
	"u": ActionUndo, "ctrl+r": ActionRedo,
	"y": ActionYank, "p": ActionPaste,
}

var vimInsertBindings = bindingTable{
	"esc":       ActionEnterNormalMode,
	"backspace": ActionBackspace, "delete": ActionDeleteForward,
	"enter": ActionNewline,
	"left": ActionMoveLeft, "right": ActionMoveRight, "up": ActionMoveUp, "down": ActionMoveDown,
}

var vimVisualBindings = bindingTable{
	"esc": ActionEnterNormalMode,
	"h":   ActionMoveLeft, "l": ActionMoveRight, "k": ActionMoveUp, "j": ActionMoveDown,
	"d": ActionDeleteSelection, "x": ActionDeleteSelection,
	"y": ActionYank,
}

// Resolve looks up the Action bound to key for the given keymap and mode.
// Returns ActionNone (and ok=false) for unbound keys, which the caller
// falls back to treating as a literal rune to insert (ModeInsert only).
func Resolve(km KeymapID, mode Mode, key string) (Action, bool) {
	table := tableFor(km, mode)
	a, ok := table[key]
	return a, ok
}

func tableFor(km KeymapID, mode Mode) bindingTable {
	switch km {
	case KeymapEmacs:
		return emacsBindings
	case KeymapVim:
		switch mode {
		case ModeNormal:
			return vimNormalBindings
		case ModeVisual:
			return vimVisualBindings
		case ModeCommand:
			return nil // Editor.Update handles ModeCommand directly, never via Resolve
		default:
			return vimInsertBindings
		}
	default:
		return defaultBindings
	}
}
