package eventloop

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"ratline/internal/completion"
	"ratline/internal/editor"
	"ratline/internal/grid"
	"ratline/internal/layout"
	"ratline/internal/mux"
	"ratline/internal/system"
	"ratline/internal/ui"
)

// Update implements the per-tick dispatch order from §4.10: popups get
// first refusal, then global bindings, then the focused pane. The key,
// mouse and pty-exit branches funnel back through a.drainPendingCmds so
// handlers invoked indirectly (command palette, new-tab) can still arm
// background pumps.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.handleResize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		cmd := a.handleKey(msg)
		if a.quitting {
			return a, tea.Quit
		}
		return a, tea.Batch(cmd, a.drainPendingCmds())

	case tea.MouseMsg:
		a.handleMouse(msg)
		return a, a.drainPendingCmds()

	case ptyOutputMsg:
		return a, a.handlePtyOutput(msg)

	case ptyExitMsg:
		a.handlePtyExit(msg)
		if a.quitting {
			return a, tea.Quit
		}
		return a, a.drainPendingCmds()

	case completionResultMsg:
		a.applyCompletionResult(completion.Result(msg))
		return a, waitCompletion(a.resultsCh)

	case tickMsg:
		a.now = time.Time(msg)
		return a, tea.Batch(tickEvery(), fetchGitInfo(a.workDir))

	case gitInfoMsg:
		a.git = system.GitInfo(msg)
		return a, nil

	case lspReadyMsg:
		a.lspClients[msg.Language] = msg.Client
		delete(a.lspPending, msg.Language)
		if a.lspProgress != nil && a.lspProgress.Language == msg.Language {
			a.lspProgress = nil
		}
		a.setStatus(fmt.Sprintf("language server ready: %s", msg.Language))
		return a, nil

	case lspFailedMsg:
		delete(a.lspPending, msg.Language)
		if a.lspProgress != nil && a.lspProgress.Language == msg.Language {
			a.lspProgress = nil
		}
		a.setStatus(fmt.Sprintf("language server unavailable for %s: %v (using keyword completion)", msg.Language, msg.Err))
		return a, nil

	case confirmResultMsg:
		a.handleConfirmResult(msg)
		if a.quitting {
			return a, tea.Quit
		}
		return a, nil

	case configChangedMsg:
		a.reloadConfig()
		return a, waitConfigChange(a.configWatcher)
	}
	return a, nil
}

func (a *App) handleResize(w, h int) {
	a.width, a.height = w, h
	termArea, edArea, showEditor := a.splitAreas()
	if t := a.mux.ActiveTab(); t != nil {
		rects := a.paneRectsFor(t, termArea)
		for _, pid := range t.Panes {
			if r, ok := rects[pid]; ok {
				_ = a.mux.Pane(pid).Terminal.Resize(r.W, r.H)
			}
		}
	}
	if showEditor {
		if b := a.activeBuffer(); b != nil {
			b.SetSize(edArea.W, edArea.H)
		}
	}
}

// handleKey applies the §4.10 routing order: popups, then globals, then
// the focused pane.
func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if top, ok := a.overlays.Top(); ok {
		switch top.ID {
		case overlayConfirm:
			return a.handleConfirmKey(key)
		case overlayPalette:
			return a.handlePaletteKey(msg, key)
		}
	}

	if ga, ok := resolveGlobal(key); ok {
		a.applyGlobalAction(ga)
		return nil
	}

	if a.focus == FocusEditor && a.ideVisible {
		return a.handleEditorKey(msg)
	}
	return a.handleTerminalKey(msg)
}

func (a *App) applyGlobalAction(ga globalAction) {
	switch ga {
	case gaQuit:
		a.beginQuit()
	case gaPalette:
		a.palette = ui.NewPalette(a.registry)
		a.overlays.Push(overlayPalette, layout.Overlay{}, a.contentArea())
	case gaNewTab:
		a.cmdNewTab()
	case gaCloseTabOrPane:
		a.cmdCloseTabOrPane()
	case gaNextTab:
		a.mux.CycleTab(1)
	case gaPrevTab:
		a.mux.CycleTab(-1)
	case gaFocusUp:
		a.mux.FocusDirection(mux.DirUp)
	case gaFocusDown:
		a.mux.FocusDirection(mux.DirDown)
	case gaFocusLeft:
		a.mux.FocusDirection(mux.DirLeft)
	case gaFocusRight:
		a.mux.FocusDirection(mux.DirRight)
	case gaCyclePaneFocus:
		a.mux.CycleFocus(1)
	case gaToggleFocus:
		a.cmdToggleFocus()
	case gaToggleIDE:
		a.ideVisible = !a.ideVisible
	case gaSplitOrSave:
		a.resolveSplitOrSave()
	}
}

func (a *App) handleTerminalKey(msg tea.KeyMsg) tea.Cmd {
	p := a.activePane()
	if p == nil {
		return nil
	}
	_ = p.Terminal.SendKeys(encodeKey(msg, p.Terminal.Grid().Mode().AppCursorKeys))
	return nil
}

func (a *App) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	b := a.activeBuffer()
	if b == nil {
		return nil
	}
	if msg.String() == "ctrl+@" || msg.String() == "ctrl+space" {
		a.acceptGhost(b)
		return nil
	}
	before := b.Buffer.Text.Len()
	b.Editor.Update(msg)
	if cmd := b.Editor.LastCommand; cmd != "" {
		b.Editor.LastCommand = ""
		a.runEditorCommand(b, cmd)
	}
	if b.Buffer.Text.Len() != before {
		b.MarkEdited()
	}
	return a.maybeTriggerCompletion(b)
}

// runEditorCommand interprets a submitted Vim `:`-command line. Only
// save/quit are implemented, enough to give Command mode a real exit
// path; anything else reports itself as unknown on the status line.
func (a *App) runEditorCommand(b *editor.EditorBuffer, cmd string) {
	switch cmd {
	case "w":
		a.cmdSave()
	case "q":
		a.beginQuit()
	case "wq", "x":
		a.cmdSave()
		a.beginQuit()
	default:
		a.setStatus("unknown command: " + cmd)
	}
}

// maybeTriggerCompletion arms the debounced completion request per
// §4.8's trigger rule; an empty word prefix never fires.
func (a *App) maybeTriggerCompletion(b *editor.EditorBuffer) tea.Cmd {
	prefix := b.WordPrefix()
	if prefix == "" {
		a.completion.Cancel(b.ID)
		a.ghost = ""
		a.ghostItems = nil
		return nil
	}
	a.ensureLSPForLanguage(b.Language)
	a.completion.Trigger(completion.Request{
		BufferID: b.ID,
		Text:     b.Buffer.Text.String(),
		Offset:   b.Offset(),
		Language: b.Language,
	})
	return nil
}

// applyCompletionResult discards a result if the active buffer has
// changed, or if the buffer's current word prefix no longer matches the
// one the request was issued for (§4.8's invalidation rule).
func (a *App) applyCompletionResult(r completion.Result) {
	b := a.activeBuffer()
	if b == nil || b.ID != r.BufferID {
		return
	}
	if len(r.Items) > 0 && strings.TrimPrefix(r.Items[0].InsertText, b.WordPrefix()) != r.Ghost {
		return
	}
	a.ghost = r.Ghost
	a.ghostItems = r.Items
}

func (a *App) acceptGhost(b *editor.EditorBuffer) {
	if a.ghost == "" {
		return
	}
	b.Buffer.InsertAt(a.ghost, time.Now())
	b.MarkEdited()
	a.ghost = ""
	a.ghostItems = nil
	a.completion.Cancel(b.ID)
}

func (a *App) handlePaletteKey(msg tea.KeyMsg, key string) tea.Cmd {
	switch key {
	case "esc":
		a.palette = nil
		a.overlays.Remove(overlayPalette)
		return nil
	case "enter":
		a.palette.Accept()
		a.palette = nil
		a.overlays.Remove(overlayPalette)
		return nil
	}
	return a.palette.Update(msg)
}

func (a *App) handleConfirmKey(key string) tea.Cmd {
	kind := a.confirm.kind
	switch key {
	case "y", "Y":
		return func() tea.Msg { return confirmResultMsg{Kind: kind, Confirmed: true} }
	case "n", "N", "esc":
		return func() tea.Msg { return confirmResultMsg{Kind: kind, Confirmed: false} }
	}
	return nil
}

func (a *App) handleConfirmResult(msg confirmResultMsg) {
	a.confirm = nil
	a.overlays.Remove(overlayConfirm)
	if msg.Kind == confirmQuit && msg.Confirmed {
		a.quitting = true
	}
}

// handleMouse routes a click to the pane or editor under it, and forwards
// a mouse report to the PTY when the pane's program has turned on mouse
// tracking (modes 1000/1002/1003, §4.1): programs like vim or htop that
// draw their own UI expect these reports instead of (or alongside) the
// focus-on-click behavior the chrome itself uses.
func (a *App) handleMouse(msg tea.MouseMsg) {
	t := a.mux.ActiveTab()
	if t == nil {
		return
	}
	for _, pid := range t.Panes {
		id := paneZoneID(pid)
		z := zone.Get(id)
		if z == nil || !z.InBounds(msg) {
			continue
		}
		p := a.mux.Pane(pid)
		if p != nil {
			if report := encodeMouseReportIfEnabled(p.Terminal.Grid().Mode(), msg); report != nil {
				_ = p.Terminal.SendKeys(report)
			}
		}
		if msg.Action == tea.MouseActionPress {
			t.Focused = pid
			a.focus = FocusTerminal
		}
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}
	if z := zone.Get(editorZoneID); z != nil && z.InBounds(msg) {
		a.focus = FocusEditor
	}
}

// encodeMouseReportIfEnabled returns the escape sequence to forward for
// msg given the pane's current mouse-report mode, or nil if that mode
// doesn't cover this event (e.g. motion under VT200 without a button
// held, or reporting switched off entirely).
func encodeMouseReportIfEnabled(m grid.Mode, msg tea.MouseMsg) []byte {
	if m.MouseReport == grid.MouseReportOff {
		return nil
	}
	if msg.Action == tea.MouseActionMotion {
		if m.MouseReport == grid.MouseReportX10 {
			return nil
		}
		if m.MouseReport == grid.MouseReportVT200 && msg.Button == tea.MouseButtonNone {
			return nil
		}
	}
	return encodeMouseReport(msg, m.MouseSGR)
}

func (a *App) handlePtyOutput(msg ptyOutputMsg) tea.Cmd {
	p := a.mux.Pane(msg.Pane)
	if p == nil {
		delete(a.pendingPanes, msg.Pane)
		return nil
	}
	if len(msg.Data) > 0 {
		p.Terminal.FeedBytes(msg.Data)
	}
	if msg.Err != nil {
		delete(a.pendingPanes, msg.Pane)
		if exited, code := p.Terminal.Exited(); exited {
			return func() tea.Msg { return ptyExitMsg{Pane: msg.Pane, Code: code} }
		}
		return nil
	}
	return pumpPTY(msg.Pane, p.Terminal)
}

func (a *App) handlePtyExit(msg ptyExitMsg) {
	delete(a.pendingPanes, msg.Pane)
	a.setStatus(fmt.Sprintf("shell exited (%d)", msg.Code))
	a.mux.ClosePane(msg.Pane)
	if a.mux.TabCount() == 0 {
		a.beginQuit()
	}
}

// ensureLSPForLanguage lazily starts a language server the first time a
// buffer of that language triggers completion, if one is configured and
// lsp_enabled is true.
func (a *App) ensureLSPForLanguage(language string) {
	if language == "" || !a.cfg.Bool("lsp_enabled", true) {
		return
	}
	if _, ok := a.lspClients[language]; ok {
		return
	}
	if a.lspPending[language] {
		return
	}
	spec, ok := a.lspServers[language]
	if !ok {
		return
	}
	a.lspPending[language] = true
	a.lspProgress = ui.NewLSPProgress(language)
	a.queueCmd(startLSP(language, spec, a.workDir))
}

func paneZoneID(id mux.PaneID) string { return fmt.Sprintf("pane-%d", id) }

const editorZoneID = "editor"
