// Package config loads the editor settings from a TOML file.
//
// Every key is optional; a missing file path means pure defaults:
//
//	log_level        = "info"   # debug, info, warn, error
//	history_capacity = 10       # undo states kept, at least 2
//	mosaic_seed      = 0        # fixed seed for mosaic placement, 0 = random
//
//	[preview]
//	max_dimension = 1024        # longest preview side in pixels, 0 = unlimited
//
// The IMAGE_EDIT_LOG_LEVEL environment variable overrides log_level.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/ironsheep/image-edit-mcp/internal/history"
)

// EnvLogLevel names the environment variable that overrides log_level.
const EnvLogLevel = "IMAGE_EDIT_LOG_LEVEL"

// Config holds every tunable setting.
type Config struct {
	LogLevel        string  `toml:"log_level"`
	HistoryCapacity int     `toml:"history_capacity"`
	MosaicSeed      uint64  `toml:"mosaic_seed"`
	Preview         Preview `toml:"preview"`
}

// Preview configures image_preview output.
type Preview struct {
	MaxDimension int `toml:"max_dimension"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		LogLevel:        "info",
		HistoryCapacity: history.DefaultCapacity,
		Preview:         Preview{MaxDimension: 1024},
	}
}

// Load reads path over the defaults, applies the environment override and
// validates the result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML into cfg, leaving unset keys as they were. Unknown keys
// are rejected so typos do not pass silently.
func Parse(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q: %w", c.LogLevel, err))
	}
	if c.HistoryCapacity < history.MinCapacity {
		errs = append(errs, fmt.Errorf("history_capacity must be at least %d, got %d",
			history.MinCapacity, c.HistoryCapacity))
	}
	if c.Preview.MaxDimension < 0 {
		errs = append(errs, fmt.Errorf("preview.max_dimension must not be negative, got %d",
			c.Preview.MaxDimension))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Rand returns the random source for mosaic placement: seeded from
// MosaicSeed when set, otherwise from the runtime's random state.
func (c Config) Rand() *rand.Rand {
	if c.MosaicSeed != 0 {
		return rand.New(rand.NewPCG(c.MosaicSeed, c.MosaicSeed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
