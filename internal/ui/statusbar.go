package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"ratline/internal/system"
)

// StatusBar is the bottom chrome row: keymap/mode chip, file path and
// dirty flag, working-directory git chip, and a clock — the "current
// file path, working directory" read-only accessors from §6 made visible,
// adapted from the teacher's GitInfo/tickCmd status bar.
type StatusBar struct {
	Mode     string
	FilePath string
	Dirty    bool
	Message  string
	Git      system.GitInfo
	Now      time.Time
}

// Render draws the status bar at the given width.
func (s StatusBar) Render(width int) string {
	base := StatusBarBase()
	modeChip := ChipStyle(Vitesse.Primary).Render(strings.ToUpper(s.Mode))

	file := s.FilePath
	if file == "" {
		file = "[untitled]"
	}
	if s.Dirty {
		file += " ●"
	}

	var gitChip string
	if s.Git.InRepo {
		branch := s.Git.Branch
		if branch == "" {
			branch = s.Git.ShortSHA
		}
		dirty := ""
		if s.Git.Dirty {
			dirty = "*"
		}
		gitChip = ChipStyle(Vitesse.Blue).Render(fmt.Sprintf(" %s%s", branch, dirty))
	}

	clock := s.Now.Format("15:04:05")

	left := fmt.Sprintf("%s %s", modeChip, base.Render(" "+file))
	right := strings.TrimSpace(gitChip + " " + base.Render(clock))
	if s.Message != "" {
		right = base.Render(s.Message) + "  " + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return base.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
