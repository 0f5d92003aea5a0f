package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const savedHeader = "# hammerview configuration\n# Flags given on the command line override these values.\n"

// WriteRequested saves cfg to the --write-config path. It returns the path
// written, or "" when the flag was not given.
func WriteRequested(cfg *Config) (string, error) {
	path := *flagWriteConfig
	if path == "" {
		return "", nil
	}
	if err := cfg.SaveTo(path); err != nil {
		return "", fmt.Errorf("writing config to %s: %w", path, err)
	}
	return path, nil
}

// SaveTo writes the config as YAML, creating parent directories. The file is
// written next to its destination and renamed into place, so a failed write
// leaves any previous file intact.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	buf.WriteString(savedHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".config-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
