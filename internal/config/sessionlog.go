package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	maxLogSize = 10 * 1024 * 1024 // 10 MiB
	maxLogAge  = 30 * 24 * time.Hour
)

// SessionLog is a timestamped, append-only text file under config.LogDir,
// rotated by size and pruned by age. It backs the optional session logs
// named in §6: one file per run, line-buffered so a crash loses at most
// the last unflushed write.
type SessionLog struct {
	dir  string
	file *os.File
}

// OpenSessionLog prunes logs older than maxLogAge in dir and opens a fresh
// timestamped log file for the current run, creating dir if needed.
func OpenSessionLog(dir string, now time.Time) (*SessionLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	prune(dir, now)

	name := fmt.Sprintf("session-%s.log", now.Format("20060102-150405"))
	f, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &SessionLog{dir: dir, file: f}, nil
}

// Write appends a timestamped line. If the current file has grown past
// maxLogSize, it rotates to a new file first.
func (s *SessionLog) Write(line string) error {
	if fi, err := s.file.Stat(); err == nil && fi.Size() >= maxLogSize {
		if err := s.rotate(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.file, "%s %s\n", time.Now().Format(time.RFC3339), strings.TrimRight(line, "\n"))
	return err
}

func (s *SessionLog) rotate() error {
	if err := s.file.Close(); err != nil {
		return err
	}
	name := fmt.Sprintf("session-%s.log", time.Now().Format("20060102-150405.000"))
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	s.file = f
	return nil
}

// Close closes the underlying file.
func (s *SessionLog) Close() error { return s.file.Close() }

// prune removes session-*.log files older than maxLogAge, best-effort.
func prune(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.Add(-maxLogAge)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), "session-") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
}

// listLogs returns session log file names under dir in rotation order,
// oldest first. Used by tests to assert pruning/rotation behavior.
func listLogs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "session-") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
