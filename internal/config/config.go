// Package config loads denolint.toml, the optional per-project manifest
// that pins the rule set, plugin list and sandbox runner.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest file looked up from the working directory upward.
const FileName = "denolint.toml"

// Config mirrors the [lint] section of denolint.toml.
type Config struct {
	Lint LintSection `toml:"lint"`
}

// LintSection configures a lint run.
type LintSection struct {
	// Rules selects built-in rules by code. Empty means all of them.
	Rules []string `toml:"rules"`

	// Plugins lists external rule module paths, relative to the manifest.
	Plugins []string `toml:"plugins"`

	// Runner overrides the plugin sandbox command.
	Runner []string `toml:"runner"`

	// Jobs bounds file-level parallelism; 0 means auto.
	Jobs int `toml:"jobs"`

	// Cache toggles the persistent result cache.
	Cache bool `toml:"cache"`
}

// Find walks up from startDir to locate denolint.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load parses a manifest. Plugin paths are resolved relative to the
// manifest's directory so the config works from any cwd.
func Load(path string) (*Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("lint") {
		return &cfg, nil
	}
	base := filepath.Dir(path)
	for i, p := range cfg.Lint.Plugins {
		if !filepath.IsAbs(p) {
			cfg.Lint.Plugins[i] = filepath.Join(base, p)
		}
	}
	return &cfg, nil
}

// Discover finds and loads the nearest manifest. The bool reports whether
// one was found; absence is not an error.
func Discover(startDir string) (*Config, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
