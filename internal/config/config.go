// Package config loads the editor configuration from TOML files with
// environment overrides.
//
// Resolution order, later wins:
//
//  1. Built-in defaults.
//  2. The TOML config file, when present.
//  3. MAPSMITH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig reports a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full editor configuration.
type Config struct {
	Map     MapConfig     `toml:"map"`
	History HistoryConfig `toml:"history"`
	Editor  EditorConfig  `toml:"editor"`
	Catalog CatalogConfig `toml:"catalog"`
	Logging LoggingConfig `toml:"logging"`
	Session SessionConfig `toml:"session"`
}

// MapConfig sets the map extents.
type MapConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// HistoryConfig bounds the undo stack.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries"`
}

// EditorConfig holds paint-time behavior switches.
type EditorConfig struct {
	AutoBorder        bool `toml:"auto_border"`
	EraserLeaveUnique bool `toml:"eraser_leave_unique"`
}

// CatalogConfig locates the brush catalog.
type CatalogConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// LoggingConfig sets log output behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// SessionConfig locates the persisted session state.
type SessionConfig struct {
	Path string `toml:"path"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Map:     MapConfig{Width: 2048, Height: 2048},
		History: HistoryConfig{MaxEntries: 1000},
		Editor:  EditorConfig{AutoBorder: true, EraserLeaveUnique: true},
		Catalog: CatalogConfig{Path: "brushes.json"},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config file at path, layered over defaults and under
// environment overrides. A missing file is not an error; an unreadable or
// malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("%w: map extents %dx%d", ErrInvalidConfig, c.Map.Width, c.Map.Height)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("%w: negative history depth %d", ErrInvalidConfig, c.History.MaxEntries)
	}
	return nil
}

// applyEnv overlays MAPSMITH_* environment variables onto cfg. Unparsable
// numeric values leave the current setting untouched.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("MAPSMITH_LOG_LEVEL"); ok {
		cfg.Logging.Level = v
	}
	if v, ok := os.LookupEnv("MAPSMITH_CATALOG"); ok {
		cfg.Catalog.Path = v
	}
	if v, ok := os.LookupEnv("MAPSMITH_SESSION"); ok {
		cfg.Session.Path = v
	}
	if v, ok := lookupInt("MAPSMITH_MAP_WIDTH"); ok {
		cfg.Map.Width = v
	}
	if v, ok := lookupInt("MAPSMITH_MAP_HEIGHT"); ok {
		cfg.Map.Height = v
	}
	if v, ok := lookupInt("MAPSMITH_UNDO_DEPTH"); ok {
		cfg.History.MaxEntries = v
	}
	if v, ok := lookupBool("MAPSMITH_AUTO_BORDER"); ok {
		cfg.Editor.AutoBorder = v
	}
	if v, ok := lookupBool("MAPSMITH_CATALOG_WATCH"); ok {
		cfg.Catalog.Watch = v
	}
}

func lookupInt(name string) (int, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupBool(name string) (bool, bool) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}
