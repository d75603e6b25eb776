package eventloop

import "ratline/internal/ui"

// registerCommands populates the command palette with the built-in
// actions; an out-of-scope extension collaborator registers further
// commands into the same *ui.Registry (§6's command registry contract).
func (a *App) registerCommands() {
	a.registry.Register(ui.Command{ID: "tab.new", Label: "New Tab", Category: "Terminal", Handler: a.cmdNewTab})
	a.registry.Register(ui.Command{ID: "tab.close", Label: "Close Tab/Pane", Category: "Terminal", Handler: a.cmdCloseTabOrPane})
	a.registry.Register(ui.Command{ID: "tab.next", Label: "Next Tab", Category: "Terminal", Handler: func() { a.mux.CycleTab(1) }})
	a.registry.Register(ui.Command{ID: "tab.prev", Label: "Previous Tab", Category: "Terminal", Handler: func() { a.mux.CycleTab(-1) }})
	a.registry.Register(ui.Command{ID: "pane.split.vertical", Label: "Split Vertical", Category: "Terminal", Handler: a.cmdSplitVertical})
	a.registry.Register(ui.Command{ID: "pane.split.quad", Label: "Split Quad", Category: "Terminal", Handler: a.cmdSplitQuad})
	a.registry.Register(ui.Command{ID: "view.toggle-ide", Label: "Toggle Editor Panel", Category: "View", Handler: func() { a.ideVisible = !a.ideVisible }})
	a.registry.Register(ui.Command{ID: "view.toggle-focus", Label: "Switch Focus", Category: "View", Handler: a.cmdToggleFocus})
	a.registry.Register(ui.Command{ID: "editor.save", Label: "Save Buffer", Category: "Editor", Handler: a.cmdSave})
	a.registry.Register(ui.Command{ID: "app.quit", Label: "Quit", Category: "App", Handler: func() { a.beginQuit() }})
}
