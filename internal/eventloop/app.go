// Package eventloop implements the application's single-threaded
// cooperative scheduler (C12): one tea.Model fanning keyboard, mouse,
// PTY output, completion results, and timers into a deterministic
// update/render cycle, per the ordering guarantees in §4.10 and §5.
package eventloop

import (
	"strings"
	"time"

	zone "github.com/lrstanley/bubblezone"

	tea "github.com/charmbracelet/bubbletea"

	"ratline/internal/completion"
	"ratline/internal/config"
	"ratline/internal/editor"
	"ratline/internal/layout"
	"ratline/internal/lsp"
	"ratline/internal/mux"
	"ratline/internal/ptyhost"
	"ratline/internal/system"
	"ratline/internal/terminal"
	"ratline/internal/ui"
)

// Focus names which half of the split owns keyboard routing once popups
// have had first refusal, resolving the source's Ctrl+S ambiguity (see
// DESIGN.md): Terminal focus makes Ctrl+S split the pane, Editor focus
// makes it save the active buffer.
type Focus int

const (
	FocusTerminal Focus = iota
	FocusEditor
)

// confirmState holds one in-flight Confirm popup and which decision flow
// it belongs to.
type confirmState struct {
	kind  confirmKind
	popup ui.Confirm
}

// overlay IDs pushed onto App.overlays; handleKey and renderOverlay both
// dispatch on the topmost entry instead of a fixed precedence cascade.
const (
	overlayConfirm = "confirm"
	overlayPalette = "palette"
)

// App is the single owned top-level model (§9: "Global mutable state:
// none is permitted. The App is a single owned value"). It exclusively
// owns the Multiplexer and the Editor tabs, plus the completion engine
// and every piece of popup/chrome state layered on top of them.
type App struct {
	mux   *mux.Multiplexer
	tabs  *editor.Tabs
	focus Focus

	completion  *completion.Engine
	resultsCh   chan completion.Result
	lspClients  map[string]*lsp.Client // keyed by language
	lspPending  map[string]bool
	lspServers  map[string]lsp.ServerSpec

	theme       ui.Theme
	registry    *ui.Registry
	palette     *ui.Palette
	confirm     *confirmState
	lspProgress *ui.LSPProgress
	help        ui.HelpFooter
	overlays    layout.Stack

	cfg           *config.Config
	configPath    string
	configWatcher *config.Watcher
	sessionLog    *config.SessionLog
	workDir       string
	git           system.GitInfo

	ideVisible bool
	splitRatio float64
	width      int
	height     int

	statusMessage string
	quitting      bool
	pendingPanes  map[mux.PaneID]bool // panes with an active PTY read pump
	pendingCmds   []tea.Cmd           // commands queued by command-registry handlers

	ghost      string            // current ghost-text suggestion for the active buffer
	ghostItems []completion.Item // full candidate list backing the ghost text

	now time.Time // latest tick, used to render the status bar clock
}

// queueCmd schedules cmd to run after the current Update call returns;
// command-registry handlers have no return value of their own (the
// palette invokes them as a plain func()), so this is how a handler like
// "new tab" arranges for its pane's PTY pump to get armed.
func (a *App) queueCmd(cmd tea.Cmd) {
	if cmd != nil {
		a.pendingCmds = append(a.pendingCmds, cmd)
	}
}

func (a *App) drainPendingCmds() tea.Cmd {
	if len(a.pendingCmds) == 0 {
		return nil
	}
	cmds := a.pendingCmds
	a.pendingCmds = nil
	return tea.Batch(cmds...)
}

// New creates an App with one tab/pane running the default shell and one
// untitled editor buffer, using cfg for initial layout/keymap settings.
func New(cfg *config.Config, sessionLog *config.SessionLog, workDir string) (*App, error) {
	a := &App{
		mux:          mux.New(),
		lspClients:   make(map[string]*lsp.Client),
		lspPending:   make(map[string]bool),
		lspServers:   lspServersFromConfig(cfg),
		theme:        ui.DefaultTheme(),
		registry:     ui.NewRegistry(),
		help:         ui.NewHelpFooter(),
		cfg:          cfg,
		sessionLog:   sessionLog,
		workDir:      workDir,
		ideVisible:   cfg.Bool("ide_visible", true),
		splitRatio:   cfg.Float("split_ratio", 0.5),
		pendingPanes: make(map[mux.PaneID]bool),
	}
	a.resultsCh = make(chan completion.Result, 8)
	a.completion = completion.New(func(r completion.Result) { a.resultsCh <- r }, completion.KeywordProvider{})

	km := keymapFromConfig(cfg)
	a.tabs = editor.NewTabs(km, 80, 24)

	term, err := terminal.Spawn("shell", shellSpec(cfg, workDir, 80, 24))
	if err != nil {
		return nil, err
	}
	a.mux.NewTab("shell", term)

	if name := cfg.String("theme", "vitesse"); strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		if theme, err := ui.LoadThemeFile(name); err == nil {
			a.theme = theme
		}
	}

	a.registerCommands()

	if path, err := config.FilePath(); err == nil {
		a.configPath = path
		if w, err := config.Watch(path); err == nil {
			a.configWatcher = w
		}
	}

	return a, nil
}

// shellSpec builds the ptyhost.Spec for a freshly spawned pane, honoring
// the configured shell override.
func shellSpec(cfg *config.Config, dir string, cols, rows int) ptyhost.Spec {
	return ptyhost.Spec{
		Shell: cfg.String("shell", ""),
		Dir:   dir,
		Size:  ptyhost.Size{Cols: cols, Rows: rows},
	}
}

// Init starts the initial background pumps: the first pane's PTY reader,
// the clock tick, and a git-status refresh.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tickEvery(), fetchGitInfo(a.workDir), waitCompletion(a.resultsCh)}
	if a.configWatcher != nil {
		cmds = append(cmds, waitConfigChange(a.configWatcher))
	}
	for _, t := range a.mux.Tabs() {
		for _, pid := range t.Panes {
			cmds = append(cmds, a.armPanePump(pid))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) armPanePump(pid mux.PaneID) tea.Cmd {
	p := a.mux.Pane(pid)
	if p == nil || !p.Terminal.HasPty() || a.pendingPanes[pid] {
		return nil
	}
	a.pendingPanes[pid] = true
	return pumpPTY(pid, p.Terminal)
}

// OpenFile loads path into a new editor tab and switches keyboard focus
// to it, used when the CLI is invoked with a path argument.
func (a *App) OpenFile(path string) {
	eb, err := editor.OpenFile(path, keymapFromConfig(a.cfg), 80, 24)
	if err != nil {
		a.setStatus("open: " + err.Error())
		return
	}
	a.tabs.Open(eb)
	a.ideVisible = true
	a.focus = FocusEditor
}

// activeBuffer is a convenience accessor used throughout Update/View.
func (a *App) activeBuffer() *editor.EditorBuffer { return a.tabs.Active() }

// activePane is the focused terminal pane in the active tab.
func (a *App) activePane() *mux.Pane {
	t := a.mux.ActiveTab()
	if t == nil {
		return nil
	}
	return a.mux.Pane(t.Focused)
}

func (a *App) setStatus(msg string) {
	a.statusMessage = msg
	if a.sessionLog != nil {
		_ = a.sessionLog.Write(msg)
	}
}

// contentArea returns the screen rectangle available below the status
// bar, per §4.11's "terminal pane = full area minus status bar".
func (a *App) contentArea() layout.Rect {
	h := a.height - 1
	if h < 0 {
		h = 0
	}
	return layout.Rect{X: 0, Y: 0, W: a.width, H: h}
}

// splitAreas divides the content area into the multiplexer area and the
// editor area per the configured split ratio, or returns the full area
// for the multiplexer alone when the IDE panel is hidden.
func (a *App) splitAreas() (term layout.Rect, ed layout.Rect, showEditor bool) {
	content := a.contentArea()
	if !a.ideVisible {
		return content, layout.Rect{}, false
	}
	left := int(float64(content.W) * a.splitRatio)
	if left < 1 {
		left = 1
	}
	if left > content.W-1 {
		left = content.W - 1
	}
	term = layout.Rect{X: content.X, Y: content.Y, W: left, H: content.H}
	ed = layout.Rect{X: content.X + left, Y: content.Y, W: content.W - left, H: content.H}
	return term, ed, true
}

// reloadConfig re-parses the on-disk config file after the watcher
// reports a change, applying any settings that affect already-running
// state (theme, split ratio, IDE visibility). A parse failure leaves the
// previous config in place and only reports the error on the status
// line.
func (a *App) reloadConfig() {
	if a.configPath == "" {
		return
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		a.setStatus("config reload failed: " + err.Error())
		return
	}
	a.cfg = cfg
	a.ideVisible = cfg.Bool("ide_visible", a.ideVisible)
	a.splitRatio = cfg.Float("split_ratio", a.splitRatio)
	a.lspServers = lspServersFromConfig(cfg)

	if name := cfg.String("theme", "vitesse"); strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		if theme, err := ui.LoadThemeFile(name); err == nil {
			a.theme = theme
		}
	} else {
		a.theme = ui.DefaultTheme()
	}
	a.setStatus("config reloaded")
}

func keymapFromConfig(cfg *config.Config) editor.KeymapID {
	switch cfg.String("keymap", "default") {
	case "vim":
		return editor.KeymapVim
	case "emacs":
		return editor.KeymapEmacs
	default:
		return editor.KeymapDefault
	}
}

func lspServersFromConfig(cfg *config.Config) map[string]lsp.ServerSpec {
	_ = cfg
	// A static catalog of common language servers, the same
	// Command/Args shape the config's future "lsp_cmd_<language>"
	// override would replace; no discovery mechanism is mandated.
	return map[string]lsp.ServerSpec{
		"go":         {Command: "gopls", Args: []string{"serve"}},
		"rust":       {Command: "rust-analyzer"},
		"python":     {Command: "pylsp"},
		"typescript": {Command: "typescript-language-server", Args: []string{"--stdio"}},
		"javascript": {Command: "typescript-language-server", Args: []string{"--stdio"}},
	}
}

// EnsureZoneGlobal initializes bubblezone's global manager, needed once
// before the bubbletea program starts so pane click zones resolve.
func EnsureZoneGlobal() { zone.NewGlobal() }
