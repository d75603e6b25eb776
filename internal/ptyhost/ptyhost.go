// Package ptyhost spawns child processes on a pseudo-terminal. The
// primary backend is github.com/charmbracelet/x/xpty, which handles the
// platform-specific controlling-terminal setup (including Windows
// ConPTY); if xpty itself fails to provision a PTY, Spawn falls back to
// github.com/creack/pty so a spawn request still succeeds on a host
// where xpty cannot provision one.
package ptyhost

import (
	"context"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/x/xpty"
	"github.com/creack/pty"
)

// Size is a terminal cell grid size.
type Size struct {
	Cols, Rows int
}

// Pty is the minimal surface Host needs from a pseudo-terminal: it is
// xpty.Pty's own Read/Write/Close/Resize shape, kept as a local interface
// so the creack/pty fallback can satisfy it too.
type Pty interface {
	io.ReadWriteCloser
	Resize(Size) error
}

// xptyAdapter adapts xpty.Pty's Resize(cols, rows int) to Pty's
// Resize(Size).
type xptyAdapter struct {
	p xpty.Pty
}

func (x *xptyAdapter) Read(b []byte) (int, error)  { return x.p.Read(b) }
func (x *xptyAdapter) Write(b []byte) (int, error) { return x.p.Write(b) }
func (x *xptyAdapter) Close() error                { return x.p.Close() }
func (x *xptyAdapter) Resize(s Size) error         { return x.p.Resize(s.Cols, s.Rows) }

// ptyFile adapts *os.File (what creack/pty.Start returns) to Pty.
type ptyFile struct {
	f *os.File
}

func (p *ptyFile) Read(b []byte) (int, error)  { return p.f.Read(b) }
func (p *ptyFile) Write(b []byte) (int, error) { return p.f.Write(b) }
func (p *ptyFile) Close() error                { return p.f.Close() }

func (p *ptyFile) Resize(s Size) error {
	return pty.Setsize(p.f, &pty.Winsize{Cols: uint16(s.Cols), Rows: uint16(s.Rows)})
}

// Spec describes a process to spawn on a PTY.
type Spec struct {
	Shell string   // empty picks the platform default shell
	Args  []string
	Dir   string
	Env   []string
	Size  Size
}

// Host owns one spawned child process and its PTY master end.
type Host struct {
	pty     Pty
	cmd     *exec.Cmd
	done    chan struct{}
	exit    int
	werr    error
	waitCtx context.CancelFunc // non-nil only for the xpty backend, whose wait loop takes a context
}

// Spawn starts a new shell (or the given Spec.Shell) attached to a fresh
// PTY sized to Spec.Size, preferring xpty and falling back to creack/pty.
func Spawn(spec Spec) (*Host, error) {
	cols, rows := spec.Size.Cols, spec.Size.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	if h, err := spawnXpty(spec, cols, rows); err == nil {
		return h, nil
	}
	return spawnCreack(spec)
}

func buildCmd(spec Spec) *exec.Cmd {
	shell, args := spec.Shell, spec.Args
	if shell == "" {
		shell, args = DefaultShell()
	}
	cmd := exec.Command(shell, args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	return cmd
}

func spawnXpty(spec Spec, cols, rows int) (*Host, error) {
	xp, err := xpty.NewPty(cols, rows)
	if err != nil {
		return nil, spawnErr(err)
	}
	cmd := buildCmd(spec)
	if err := xp.Start(cmd); err != nil {
		_ = xp.Close()
		return nil, spawnErr(err)
	}
	if err := xp.Resize(cols, rows); err != nil {
		_ = err // best-effort; some platforms only accept resize after the child is running
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Host{
		pty:     &xptyAdapter{p: xp},
		cmd:     cmd,
		done:    make(chan struct{}),
		waitCtx: cancel,
	}
	go h.waitXpty(ctx)
	return h, nil
}

func spawnCreack(spec Spec) (*Host, error) {
	cmd := buildCmd(spec)
	f, err := pty.Start(cmd)
	if err != nil {
		return nil, spawnErr(err)
	}
	p := &ptyFile{f: f}
	if spec.Size.Cols > 0 && spec.Size.Rows > 0 {
		_ = p.Resize(spec.Size)
	}

	h := &Host{pty: p, cmd: cmd, done: make(chan struct{})}
	go h.wait()
	return h, nil
}

// wait blocks on the creack/pty-backed child via cmd.Wait() directly.
func (h *Host) wait() {
	h.werr = h.cmd.Wait()
	if h.cmd.ProcessState != nil {
		h.exit = h.cmd.ProcessState.ExitCode()
	}
	close(h.done)
}

// waitXpty blocks on the xpty-backed child via xpty.WaitProcess, the
// cross-platform wait xpty requires in place of cmd.Wait() (ConPTY on
// Windows does not support the ordinary os/exec wait path).
func (h *Host) waitXpty(ctx context.Context) {
	h.werr = xpty.WaitProcess(ctx, h.cmd)
	if h.cmd.ProcessState != nil {
		h.exit = h.cmd.ProcessState.ExitCode()
	}
	close(h.done)
}

// Read reads output produced by the child since the last Read. Returns a
// PtyError{ChildExited} once the process has exited and no more data
// remains.
func (h *Host) Read(buf []byte) (int, error) {
	n, err := h.pty.Read(buf)
	if err != nil {
		select {
		case <-h.done:
			return n, exitedErr(h.exit)
		default:
			return n, ioErr(err)
		}
	}
	return n, nil
}

// Write sends bytes to the child's stdin.
func (h *Host) Write(buf []byte) (int, error) {
	n, err := h.pty.Write(buf)
	if err != nil {
		return n, ioErr(err)
	}
	return n, nil
}

// Resize updates the PTY's reported window size.
func (h *Host) Resize(s Size) error {
	if err := h.pty.Resize(s); err != nil {
		return ioErr(err)
	}
	return nil
}

// Close closes the PTY master end, which signals the child via SIGHUP.
func (h *Host) Close() error {
	if h.waitCtx != nil {
		h.waitCtx()
	}
	return h.pty.Close()
}

// Exited reports whether the child has already terminated, and its code.
func (h *Host) Exited() (bool, int) {
	select {
	case <-h.done:
		return true, h.exit
	default:
		return false, 0
	}
}

// Done is closed once the child process has exited.
func (h *Host) Done() <-chan struct{} { return h.done }

// DefaultShell returns the platform-appropriate shell and arguments: $SHELL
// if set, else /bin/bash, else /bin/sh on Unix; COMSPEC or powershell.exe
// on Windows.
func DefaultShell() (string, []string) {
	if runtime.GOOS == "windows" {
		sh := os.Getenv("COMSPEC")
		if sh == "" {
			sh = "powershell.exe"
		}
		return sh, nil
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh, []string{"-l"}
	}
	if _, err := os.Stat("/bin/bash"); err == nil {
		return "/bin/bash", []string{"-l"}
	}
	return "/bin/sh", []string{"-l"}
}
