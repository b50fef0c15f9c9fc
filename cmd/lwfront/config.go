package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "lwfront.toml"

// fileConfig mirrors lwfront.toml. Zero values mean "not set".
type fileConfig struct {
	Diagnostics diagnosticsConfig `toml:"diagnostics"`
	Parse       parseConfig       `toml:"parse"`
	Cache       cacheConfig       `toml:"cache"`
	Trace       traceConfig       `toml:"trace"`
}

type diagnosticsConfig struct {
	Max    int    `toml:"max"`
	Color  string `toml:"color"`
	Format string `toml:"format"`
}

type parseConfig struct {
	Jobs int `toml:"jobs"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// findConfig walks up from startDir looking for lwfront.toml.
func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fileConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return fileConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c fileConfig) validate() error {
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("diagnostics.max must be >= 0, got %d", c.Diagnostics.Max)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("parse.jobs must be >= 0, got %d", c.Parse.Jobs)
	}
	switch c.Diagnostics.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("diagnostics.color: expected auto|on|off, got %q", c.Diagnostics.Color)
	}
	switch c.Diagnostics.Format {
	case "", "pretty", "json", "sarif", "short":
	default:
		return fmt.Errorf("diagnostics.format: expected pretty|json|sarif|short, got %q", c.Diagnostics.Format)
	}
	return nil
}

// resolveConfig loads the explicit path, or the discovered file, or nothing.
func resolveConfig(explicit string) (fileConfig, string, error) {
	if explicit != "" {
		cfg, err := loadConfig(explicit)
		return cfg, explicit, err
	}
	path, ok, err := findConfig(".")
	if err != nil || !ok {
		return fileConfig{}, "", err
	}
	cfg, err := loadConfig(path)
	return cfg, path, err
}
