package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Tasks.BatchSize != 100 {
		t.Errorf("BatchSize = %d, want 100", cfg.Tasks.BatchSize)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[log]
level = "debug"
path = "/tmp/filestorm.log"

[tasks]
batch_size = 50
ignore = ["*.swp", ".git"]
preview_lines = 40

[keys]
script = "keys.lua"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Path != "/tmp/filestorm.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Tasks.BatchSize != 50 {
		t.Errorf("BatchSize = %d, want 50", cfg.Tasks.BatchSize)
	}
	if len(cfg.Tasks.Ignore) != 2 || cfg.Tasks.Ignore[0] != "*.swp" {
		t.Errorf("Ignore = %v", cfg.Tasks.Ignore)
	}
	if cfg.Tasks.PreviewLines != 40 {
		t.Errorf("PreviewLines = %d, want 40", cfg.Tasks.PreviewLines)
	}
	// Unset keys keep their defaults.
	if cfg.Tasks.Concurrency != 8 {
		t.Errorf("Concurrency = %d, want default 8", cfg.Tasks.Concurrency)
	}
	if cfg.Keys.Script != "keys.lua" {
		t.Errorf("Keys.Script = %q", cfg.Keys.Script)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[log\nlevel = ???"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if parseErr.Path != path {
		t.Errorf("ParseError.Path = %q, want %q", parseErr.Path, path)
	}
}
