package eventloop

import (
	"ratline/internal/layout"
	"ratline/internal/mux"
	"ratline/internal/terminal"
	"ratline/internal/ui"
)

// cmdNewTab spawns a fresh shell in a new tab and arms its PTY pump.
func (a *App) cmdNewTab() {
	t, err := terminal.Spawn("shell", shellSpec(a.cfg, a.workDir, 80, 24))
	if err != nil {
		a.setStatus("new tab: " + err.Error())
		return
	}
	_, pid := a.mux.NewTab("shell", t)
	a.queueCmd(a.armPanePump(pid))
}

// cmdCloseTabOrPane closes the focused pane (which may cascade into
// closing its tab, per mux.ClosePane), quitting the app once no tabs
// remain (§3's "closing the last tab requests app shutdown").
func (a *App) cmdCloseTabOrPane() {
	p := a.activePane()
	if p == nil {
		return
	}
	_ = p.Terminal.Close()
	a.mux.ClosePane(p.ID)
	delete(a.pendingPanes, p.ID)
	if a.mux.TabCount() == 0 {
		a.beginQuit()
	}
}

// cmdSplitVertical and cmdSplitQuad grow the active tab's layout,
// spawning fresh shells for any newly added slots.
func (a *App) cmdSplitVertical() { a.split(mux.VerticalSplit) }
func (a *App) cmdSplitQuad()     { a.split(mux.Quad2x2) }

func (a *App) split(layout mux.SplitLayout) {
	t := a.mux.ActiveTab()
	if t == nil {
		return
	}
	want := 0
	switch layout {
	case mux.VerticalSplit:
		want = 2
	case mux.Quad2x2:
		want = 4
	default:
		want = 1
	}
	need := want - len(t.Panes)
	if need < 0 {
		need = 0
	}
	terms := make([]*terminal.Terminal, 0, need)
	for i := 0; i < need; i++ {
		term, err := terminal.Spawn("shell", shellSpec(a.cfg, a.workDir, 40, 24))
		if err != nil {
			a.setStatus("split: " + err.Error())
			break
		}
		terms = append(terms, term)
	}
	before := make(map[mux.PaneID]bool, len(t.Panes))
	for _, pid := range t.Panes {
		before[pid] = true
	}
	a.mux.Split(layout, terms...)
	for _, pid := range t.Panes {
		if !before[pid] {
			a.queueCmd(a.armPanePump(pid))
		}
	}
}

// cmdToggleFocus switches keyboard routing between the terminal
// multiplexer and the editor panel; it's a no-op while the editor panel
// is hidden.
func (a *App) cmdToggleFocus() {
	if !a.ideVisible {
		return
	}
	if a.focus == FocusTerminal {
		a.focus = FocusEditor
	} else {
		a.focus = FocusTerminal
	}
}

// cmdSave writes the active editor buffer to disk, surfacing any error
// on the status line per §4.7's file save policy.
func (a *App) cmdSave() {
	b := a.activeBuffer()
	if b == nil {
		return
	}
	if err := b.Save(); err != nil {
		a.setStatus("save failed: " + err.Error())
		return
	}
	a.setStatus("saved " + b.Path)
}

// beginQuit starts the shutdown sequence: if any buffer is dirty, raise
// a Confirm popup and wait for the decision event instead of quitting
// immediately (§4.10's cancellation clause).
func (a *App) beginQuit() {
	if a.tabs.AnyDirty() {
		a.confirm = &confirmState{kind: confirmQuit, popup: ui.Confirm{Prompt: "Unsaved changes will be lost. Quit anyway?"}}
		a.overlays.Push(overlayConfirm, layout.Overlay{}, a.contentArea())
		return
	}
	a.quitting = true
}

// resolveSplitOrSave implements the Ctrl+S disambiguation decision:
// Terminal focus splits the active pane vertically, Editor focus saves
// the active buffer.
func (a *App) resolveSplitOrSave() {
	if a.focus == FocusEditor {
		a.cmdSave()
		return
	}
	a.cmdSplitVertical()
}
