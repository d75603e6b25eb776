// Package config resolves ratline's on-disk locations and parses its
// line-oriented config file and rotated session logs (§6 of the spec).
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Dir returns the ratline config directory under the user config base.
// On Linux this typically resolves to $XDG_CONFIG_HOME/ratline; on macOS to
// ~/Library/Application Support/ratline; on Windows to %AppData%/ratline.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil || strings.TrimSpace(base) == "" {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", errors.New("cannot determine config directory")
		}
		base = home
	}
	return filepath.Join(base, "ratline"), nil
}

// FilePath returns the path to the main config file, config.txt under Dir().
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.txt"), nil
}

// LogDir returns the directory session logs are written under.
func LogDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
