package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names a config file when --config is not given.
const EnvConfig = "HAMMERVIEW_CONFIG"

// Load builds the viewer config: defaults, then the config file, then flags.
// The result is validated.
func Load() (*Config, error) {
	cfg := Default()

	if path := resolveConfigPath(); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveConfigPath picks --config, then $HAMMERVIEW_CONFIG, then the search locations.
func resolveConfigPath() string {
	if p := ConfigPath(); p != "" {
		return p
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return findConfigFile()
}

// findConfigFile returns the first existing file among ./hammerview.yaml,
// ./config.yaml and the user config directory.
func findConfigFile() string {
	for _, path := range []string{
		"hammerview.yaml",
		"config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	} {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the per-user config directory for the viewer.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "HammerView")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "HammerView")
		}
		return filepath.Join(home, "AppData", "Roaming", "HammerView")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "hammerview")
		}
		return filepath.Join(home, ".config", "hammerview")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled setting does not silently fall back to its default. A relative
// assets.dir is taken relative to the file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	prevDir := cfg.Assets.Dir
	cfg.Assets.Dir = ""

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		cfg.Assets.Dir = prevDir
		return err
	}

	switch {
	case cfg.Assets.Dir == "":
		cfg.Assets.Dir = prevDir
	case !filepath.IsAbs(cfg.Assets.Dir):
		cfg.Assets.Dir = filepath.Join(filepath.Dir(path), cfg.Assets.Dir)
	}
	return nil
}
