// Package app wires the resolved configuration and session log into an
// eventloop.App and runs it as a bubbletea program.
package app

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ratline/internal/config"
	"ratline/internal/eventloop"
)

// Options configures one run of the program.
type Options struct {
	OpenPath string // optional file to open in the editor panel on launch
}

// Start loads config, opens the session log, builds the App, and runs
// the bubbletea program until the user quits.
func Start(opts Options) error {
	eventloop.EnsureZoneGlobal()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sessionLog, err := openSessionLog()
	if err != nil {
		return err
	}
	if sessionLog != nil {
		defer sessionLog.Close()
	}

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	a, err := eventloop.New(cfg, sessionLog, workDir)
	if err != nil {
		return err
	}
	if opts.OpenPath != "" {
		a.OpenFile(opts.OpenPath)
	}

	_, err = tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

func loadConfig() (*config.Config, error) {
	path, err := config.FilePath()
	if err != nil {
		return config.New(), nil
	}
	return config.Load(path)
}

func openSessionLog() (*config.SessionLog, error) {
	dir, err := config.LogDir()
	if err != nil {
		return nil, nil
	}
	return config.OpenSessionLog(dir, time.Now())
}

// Main runs Start and exits the process with status 1 if it fails.
func Main(opts Options) {
	if err := Start(opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
