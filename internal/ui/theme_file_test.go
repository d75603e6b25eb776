package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadThemeFileOverridesNamedColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	contents := "fg: \"#ffffff\"\nbg: \"#000000\"\ncursor: \"#ff00ff\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile: %v", err)
	}
	if theme.FG != "#ffffff" {
		t.Fatalf("FG = %v, want #ffffff", theme.FG)
	}
	if theme.BG != "#000000" {
		t.Fatalf("BG = %v, want #000000", theme.BG)
	}
	if theme.Cursor != "#ff00ff" {
		t.Fatalf("Cursor = %v, want #ff00ff", theme.Cursor)
	}
	// Selection was absent from the file, so the default survives.
	if theme.Selection != DefaultTheme().Selection {
		t.Fatalf("Selection should fall back to the default when unset")
	}
}

func TestLoadThemeFilePalettePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	contents := "palette:\n  - \"#111111\"\n  - \"#222222\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	theme, err := LoadThemeFile(path)
	if err != nil {
		t.Fatalf("LoadThemeFile: %v", err)
	}
	if theme.Palette[0] != "#111111" || theme.Palette[1] != "#222222" {
		t.Fatalf("palette[0:2] = %v, %v", theme.Palette[0], theme.Palette[1])
	}
	if theme.Palette[2] != DefaultTheme().Palette[2] {
		t.Fatalf("unspecified palette entries should keep their default")
	}
}

func TestLoadThemeFileMissingPathReturnsError(t *testing.T) {
	_, err := LoadThemeFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing theme file")
	}
}
