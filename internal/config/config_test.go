package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Map.Width != 2048 || cfg.Map.Height != 2048 {
		t.Errorf("map extents = %dx%d, want defaults", cfg.Map.Width, cfg.Map.Height)
	}
	if !cfg.Editor.AutoBorder || !cfg.Editor.EraserLeaveUnique {
		t.Error("editor defaults not applied")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapsmith.toml")
	content := `
[map]
width = 512
height = 256

[history]
max_entries = 50

[editor]
auto_border = false
eraser_leave_unique = true

[catalog]
path = "/tmp/brushes.json"
watch = true

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Map.Width != 512 || cfg.Map.Height != 256 {
		t.Errorf("map extents = %dx%d", cfg.Map.Width, cfg.Map.Height)
	}
	if cfg.History.MaxEntries != 50 {
		t.Errorf("max entries = %d", cfg.History.MaxEntries)
	}
	if cfg.Editor.AutoBorder {
		t.Error("auto_border should be off")
	}
	if cfg.Catalog.Path != "/tmp/brushes.json" || !cfg.Catalog.Watch {
		t.Errorf("catalog = %+v", cfg.Catalog)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[map\nwidth ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MAPSMITH_LOG_LEVEL", "warn")
	t.Setenv("MAPSMITH_MAP_WIDTH", "128")
	t.Setenv("MAPSMITH_AUTO_BORDER", "false")
	t.Setenv("MAPSMITH_UNDO_DEPTH", "not-a-number")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
	if cfg.Map.Width != 128 {
		t.Errorf("map width = %d, want 128", cfg.Map.Width)
	}
	if cfg.Editor.AutoBorder {
		t.Error("auto border override ignored")
	}
	// Garbage numeric overrides keep the default.
	if cfg.History.MaxEntries != 1000 {
		t.Errorf("undo depth = %d, want default 1000", cfg.History.MaxEntries)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Map.Width = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
