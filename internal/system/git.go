package system

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// GitInfo is the working-directory git status the status bar's chip
// needs: whether dir is inside a repo, its branch (or short SHA when
// detached), and whether the tree has uncommitted changes.
type GitInfo struct {
	InRepo   bool
	Branch   string
	ShortSHA string
	Dirty    bool
}

const gitCallTimeout = 800 * time.Millisecond

// runGit runs one git subcommand under dir with its own bounded timeout
// (carved out of ctx, the caller's overall budget), returning trimmed
// stdout+stderr. ok is false on any failure — a missing git binary, a
// non-repo directory, or a timeout all look the same to the caller: no
// status to show.
func runGit(ctx context.Context, dir string, args ...string) (out string, ok bool) {
	cctx, cancel := context.WithTimeout(ctx, gitCallTimeout)
	defer cancel()
	b, err := exec.CommandContext(cctx, "git", append([]string{"-C", dir}, args...)...).CombinedOutput()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// GetGitInfo inspects the git repository at dir and returns its branch,
// short SHA, and dirty state. A non-repo directory or missing git binary
// is not an error — GitInfo.InRepo is simply false, so the status bar
// chip stays empty rather than surfacing a warning on every keystroke.
func GetGitInfo(ctx context.Context, dir string) (GitInfo, error) {
	var gi GitInfo
	if _, err := exec.LookPath("git"); err != nil {
		return gi, nil
	}

	if out, ok := runGit(ctx, dir, "rev-parse", "--is-inside-work-tree"); !ok || out != "true" {
		return gi, nil
	}
	gi.InRepo = true

	if branch, ok := runGit(ctx, dir, "symbolic-ref", "--quiet", "--short", "HEAD"); ok {
		gi.Branch = branch
	} else if branch, ok := runGit(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD"); ok && branch != "HEAD" {
		gi.Branch = branch // detached HEAD fallback
	}

	if sha, ok := runGit(ctx, dir, "rev-parse", "--short", "HEAD"); ok {
		gi.ShortSHA = sha
	}

	if status, ok := runGit(ctx, dir, "status", "--porcelain"); ok {
		gi.Dirty = status != ""
	}

	return gi, nil
}
