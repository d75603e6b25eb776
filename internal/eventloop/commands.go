package eventloop

import (
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ratline/internal/completion"
	"ratline/internal/config"
	"ratline/internal/lsp"
	"ratline/internal/mux"
	"ratline/internal/rlog"
	"ratline/internal/system"
	"ratline/internal/terminal"
)

const tickInterval = 500 * time.Millisecond

// pumpPTY blocks on one pane's terminal until it produces output or its
// child exits, then returns the result as a tea.Msg. The caller re-arms
// this command after handling ptyOutputMsg so the pump keeps running for
// the life of the pane; it is never started for a headless terminal.
func pumpPTY(pane mux.PaneID, term *terminal.Terminal) tea.Cmd {
	return func() tea.Msg {
		data, err := term.ReadBlocking()
		if err != nil {
			if exited, code := term.Exited(); exited {
				return ptyExitMsg{Pane: pane, Code: code}
			}
		}
		return ptyOutputMsg{Pane: pane, Data: data, Err: err}
	}
}

// waitCompletion drains one result from the engine's result channel. The
// engine's own goroutines write to it from outside the main loop;
// reading it back through a tea.Cmd is what gets a result onto the
// single-threaded Update path safely.
func waitCompletion(ch <-chan completion.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return completionResultMsg(r)
	}
}

// waitConfigChange blocks until the config file's watcher reports a
// write, then returns a signal to reload it. The caller re-arms this
// after handling configChangedMsg, mirroring waitCompletion's bridge
// from a background-owned channel onto the single-threaded Update path.
func waitConfigChange(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		_, ok := <-w.Changed
		if !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// tickEvery arms the next clock-tick wakeup.
func tickEvery() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// fetchGitInfo refreshes the working-directory git status off the main
// loop; GetGitInfo shells out and must not block Update.
func fetchGitInfo(dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		gi, _ := system.GetGitInfo(ctx, dir)
		return gitInfoMsg(gi)
	}
}

// lspSpawnTimeout bounds how long a language server gets to spawn and
// complete its initialize handshake (§5).
const lspSpawnTimeout = 5 * time.Second

// startLSP spawns and initializes a language server for language,
// reporting success or failure asynchronously so the main loop can show
// a progress popup (ui.LSPProgress) without blocking keystrokes.
func startLSP(language string, spec lsp.ServerSpec, rootURI string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lspSpawnTimeout)
		defer cancel()

		client, err := lsp.Start(ctx, spec, func(method string, _ json.RawMessage) {
			rlog.Log.Debug("lsp notification", "language", language, "method", method)
		})
		if err != nil {
			return lspFailedMsg{Language: language, Err: err}
		}
		if err := client.Initialize(ctx, "file://"+rootURI); err != nil {
			return lspFailedMsg{Language: language, Err: err}
		}
		return lspReadyMsg{Language: language, Client: client}
	}
}
