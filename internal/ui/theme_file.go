package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// themeFile is the on-disk shape of an external theme (§6's theme sink):
// a handful of named colors plus an optional 256-entry palette override,
// given as hex strings.
type themeFile struct {
	FG        string   `yaml:"fg"`
	BG        string   `yaml:"bg"`
	Cursor    string   `yaml:"cursor"`
	Selection string   `yaml:"selection"`
	Palette   []string `yaml:"palette"`
}

// LoadThemeFile parses a YAML theme file at path into a Theme, starting
// from DefaultTheme so an incomplete file still yields a usable result.
func LoadThemeFile(path string) (Theme, error) {
	theme := DefaultTheme()

	b, err := os.ReadFile(path)
	if err != nil {
		return theme, err
	}

	var tf themeFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return theme, err
	}

	if tf.FG != "" {
		theme.FG = lipgloss.Color(tf.FG)
	}
	if tf.BG != "" {
		theme.BG = lipgloss.Color(tf.BG)
	}
	if tf.Cursor != "" {
		theme.Cursor = lipgloss.Color(tf.Cursor)
	}
	if tf.Selection != "" {
		theme.Selection = lipgloss.Color(tf.Selection)
	}
	for i, hex := range tf.Palette {
		if i >= len(theme.Palette) {
			break
		}
		theme.Palette[i] = lipgloss.Color(hex)
	}
	return theme, nil
}
