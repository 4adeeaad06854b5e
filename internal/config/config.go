// Package config loads the program configuration from a TOML file and
// applies keymap customization scripts written in Lua.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full program configuration.
type Config struct {
	Log   Log   `toml:"log"`
	Tasks Tasks `toml:"tasks"`
	Keys  Keys  `toml:"keys"`
}

// Log configures the log file.
type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

// Tasks tunes background operations.
type Tasks struct {
	// BatchSize is the initial directory enumeration batch threshold.
	BatchSize int `toml:"batch_size"`

	// Ignore lists glob patterns excluded from enumeration.
	Ignore []string `toml:"ignore"`

	// PreviewLines caps the number of lines a preview loads.
	PreviewLines int `toml:"preview_lines"`

	// Concurrency caps the number of tasks running at once.
	Concurrency int `toml:"concurrency"`
}

// Keys configures keymap customization.
type Keys struct {
	// Script is a Lua file that adds bindings via map(mode, keys, action).
	Script string `toml:"script"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: Log{
			Level: "warn",
		},
		Tasks: Tasks{
			BatchSize:    100,
			PreviewLines: 200,
			Concurrency:  8,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "filestorm", "config.toml"), nil
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return cfg, nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
