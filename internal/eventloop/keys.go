package eventloop

// globalAction is a keymap-resolved, focus-independent command: the App
// level's counterpart to internal/editor's per-keymap Action table,
// applying the same "(context, key) -> action id" redesign (§9) one
// level up instead of a hand-duplicated switch over tea.KeyMsg.String().
type globalAction int

const (
	gaNone globalAction = iota
	gaQuit
	gaPalette
	gaNewTab
	gaCloseTabOrPane
	gaNextTab
	gaPrevTab
	gaFocusUp
	gaFocusDown
	gaFocusLeft
	gaFocusRight
	gaToggleFocus
	gaToggleIDE
	gaSplitOrSave
	gaCyclePaneFocus
)

// globalBindings is checked before any pane-local handler; a key bound
// here never reaches the terminal or editor. Ctrl+S is deliberately
// bound to the ambiguous gaSplitOrSave: resolveSplitOrSave disambiguates
// by focused pane (see DESIGN.md's Open Question decision).
var globalBindings = map[string]globalAction{
	"ctrl+q":    gaQuit,
	"ctrl+p":    gaPalette,
	"ctrl+n":    gaNewTab,
	"ctrl+w":    gaCloseTabOrPane,
	"alt+]":     gaNextTab,
	"alt+[":     gaPrevTab,
	"alt+up":    gaFocusUp,
	"alt+down":  gaFocusDown,
	"alt+left":  gaFocusLeft,
	"alt+right": gaFocusRight,
	"ctrl+g":    gaToggleFocus,
	"ctrl+e":    gaToggleIDE,
	"ctrl+s":    gaSplitOrSave,
	"alt+o":     gaCyclePaneFocus,
}

func resolveGlobal(key string) (globalAction, bool) {
	a, ok := globalBindings[key]
	return a, ok
}
