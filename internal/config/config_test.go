package config

import (
	"os"
	"path/filepath"
	"testing"

	"ratline/internal/testutil"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.String("keymap", "") != "default" {
		t.Fatalf("expected default keymap, got %q", c.String("keymap", ""))
	}
}

func TestLoadParsesKeyValueLinesAndIgnoresComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	contents := "# comment\nkeymap = vim\nsplit_ratio=0.3\n\nide_visible = false\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.String("keymap", ""); got != "vim" {
		t.Fatalf("keymap = %q, want vim", got)
	}
	if got := c.Float("split_ratio", -1); got != 0.3 {
		t.Fatalf("split_ratio = %v, want 0.3", got)
	}
	if got := c.Bool("ide_visible", true); got != false {
		t.Fatalf("ide_visible = %v, want false", got)
	}
	// untouched default survives
	if got := c.Bool("lsp_enabled", false); got != true {
		t.Fatalf("lsp_enabled = %v, want true (default)", got)
	}
}

func TestSaveRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")
	c := New()
	c.Set("keymap", "emacs")
	if err := c.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	c2, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c2.String("keymap", ""); got != "emacs" {
		t.Fatalf("keymap = %q, want emacs", got)
	}
}

func TestDirFallsBackToHomeWhenConfigDirUnset(t *testing.T) {
	restore := testutil.WithEnv(t, "XDG_CONFIG_HOME", "")
	defer restore()
	restoreHome := testutil.WithEnv(t, "HOME", t.TempDir())
	defer restoreHome()

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	if filepath.Base(dir) != "ratline" {
		t.Fatalf("Dir() = %q, want a path ending in ratline", dir)
	}
}
