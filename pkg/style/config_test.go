package style

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Page.Width <= 0 {
		t.Errorf("Page.Width = %d, want positive", cfg.Page.Width)
	}
	if cfg.Page.ContentWidth() <= 0 {
		t.Errorf("ContentWidth = %d, want positive", cfg.Page.ContentWidth())
	}
	if _, ok := cfg.Styles["process_primary"]; !ok {
		t.Error("embedded config missing process_primary style")
	}
	if cfg.Dark == nil {
		t.Fatal("embedded config missing [dark] block")
	}
	if cfg.Dark.Background == "" {
		t.Error("dark block missing background")
	}
}

func TestDefaultReturnsFreshCopy(t *testing.T) {
	a := Default()
	a.Page.Width = 1

	if b := Default(); b.Page.Width == 1 {
		t.Error("Default() copies must be independent")
	}
}

func TestNodeDimensions(t *testing.T) {
	cfg := Default()

	tests := []struct {
		typ  string
		want [2]int
	}{
		{"process", [2]int{260, 56}},
		{"decision", [2]int{200, 100}},
		{"junction", [2]int{24, 24}},
		{"no_such_type", [2]int{260, 56}}, // falls back to process
	}

	for _, tt := range tests {
		w, h := cfg.NodeDimensions(tt.typ)
		if w != tt.want[0] || h != tt.want[1] {
			t.Errorf("NodeDimensions(%q) = (%d, %d), want %v", tt.typ, w, h, tt.want)
		}
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	override := `
[page]
width = 2000

[styles]
process_primary = "rounded=0;"
`
	if err := os.WriteFile(path, []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Page.Width != 2000 {
		t.Errorf("Page.Width = %d, want 2000", cfg.Page.Width)
	}
	if cfg.Styles["process_primary"] != "rounded=0;" {
		t.Errorf("process_primary not overridden: %q", cfg.Styles["process_primary"])
	}
	// Untouched keys keep their defaults.
	if cfg.Spacing.VGap != 80 {
		t.Errorf("Spacing.VGap = %d, want default 80", cfg.Spacing.VGap)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[page\nwidth"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of invalid TOML should fail")
	}
}
