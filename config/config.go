// Package config loads nextbasic.toml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

// FileName is the config file looked for when none is named
const FileName = "nextbasic.toml"

// Config is everything the server and runner can be told
type Config struct {
	Listen     string `toml:"listen"`
	Assets     string `toml:"assets"`
	Filesystem string `toml:"filesystem"`

	Basic Basic `toml:"basic"`
	Log   Log   `toml:"log"`
}

// Basic tunes program execution
type Basic struct {
	ThrottleMS int   `toml:"throttle_ms"`
	Seed       int64 `toml:"seed"`
}

// Log controls zerolog output
type Log struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// Default is the configuration used when nothing is set
func Default() Config {
	return Config{
		Listen:     ":8080",
		Assets:     "./assets",
		Filesystem: "./fs.json",
		Basic:      Basic{ThrottleMS: 200},
		Log:        Log{Level: "info"},
	}
}

// Load reads the file at path over the defaults.
// A missing file just leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read %s: %w", path, err)
	}

	return Parse(string(data), cfg)
}

// Parse decodes TOML text over base
func Parse(text string, base Config) (Config, error) {
	cfg := base

	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return base, fmt.Errorf("parse error in config: %w", err)
	}

	if undec := md.Undecoded(); len(undec) > 0 {
		return base, fmt.Errorf("unknown config key %s", undec[0].String())
	}

	if err := cfg.Validate(); err != nil {
		return base, err
	}

	return cfg, nil
}

// Validate checks values the TOML decoder can't
func (c Config) Validate() error {
	if c.Basic.ThrottleMS < 0 {
		return fmt.Errorf("basic.throttle_ms must not be negative, got %d", c.Basic.ThrottleMS)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

// Throttle is the pause between statements
func (c Config) Throttle() time.Duration {
	return time.Duration(c.Basic.ThrottleMS) * time.Millisecond
}

// LogLevel converts the level name, empty means info
func (c Config) LogLevel() (zerolog.Level, error) {
	if len(c.Log.Level) == 0 {
		return zerolog.InfoLevel, nil
	}

	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}
