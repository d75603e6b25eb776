package eventloop

import (
	"time"

	"ratline/internal/completion"
	"ratline/internal/lsp"
	"ratline/internal/mux"
	"ratline/internal/system"
)

// ptyOutputMsg carries bytes read from one pane's PTY back to the main
// loop, which is the only goroutine allowed to apply them to a grid.
type ptyOutputMsg struct {
	Pane mux.PaneID
	Data []byte
	Err  error
}

// ptyExitMsg reports a pane's child process exiting, the AppEvent the
// spec names PtyExit{terminal_id, code}.
type ptyExitMsg struct {
	Pane mux.PaneID
	Code int
}

// completionResultMsg wraps one debounced completion round's merged
// result, delivered from the engine's background fan-out goroutine
// through a channel this message's pump command drains.
type completionResultMsg completion.Result

// tickMsg drives the clock chip and periodic git-status refresh.
type tickMsg time.Time

// gitInfoMsg carries a refreshed git status for the status bar.
type gitInfoMsg system.GitInfo

// configChangedMsg reports the on-disk config file changed underneath
// the running app, prompting a reload.
type configChangedMsg struct{}

// lspReadyMsg reports a language server finished its initialize
// handshake and is ready to serve completions for language.
type lspReadyMsg struct {
	Language string
	Client   *lsp.Client
}

// lspFailedMsg reports a language server failed to spawn or initialize;
// the engine keeps running keyword-only for that language.
type lspFailedMsg struct {
	Language string
	Err      error
}

// confirmResultMsg carries the user's answer to a Confirm popup, the
// "decision event" the quit flow reinjects per §4.10.
type confirmResultMsg struct {
	Kind      confirmKind
	Confirmed bool
}

// confirmKind distinguishes which in-flight confirm popup a decision
// belongs to, since more than one kind of confirm can exist over time
// (today: only quit-with-dirty-buffers).
type confirmKind int

const (
	confirmQuit confirmKind = iota
)
