// Package config loads the optional loom.yaml runtime configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Config represents the optional loom.yaml configuration.
type Config struct {
	// Version is the config schema version. Only the v1 major line is
	// accepted; empty means v1.
	Version     string            `yaml:"version,omitempty"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics"`
	List        ListConfig        `yaml:"list"`
}

// DiagnosticsConfig controls runtime warnings and logging detail.
type DiagnosticsConfig struct {
	// Verbose enables timestamps and stack traces in the log handler.
	Verbose bool `yaml:"verbose,omitempty"`
	// OverflowWarnings reports children that do not fit their container.
	OverflowWarnings bool `yaml:"overflow_warnings,omitempty"`
}

// ListConfig tunes virtualized list behavior.
type ListConfig struct {
	// ResultBuffer is the capacity of the channel carrying finished item
	// builds back to the tree. Zero means the default of 64.
	ResultBuffer int `yaml:"result_buffer,omitempty"`
}

// Default returns the configuration used when no loom.yaml is present.
func Default() *Config {
	return &Config{
		Version: "v1",
		Diagnostics: DiagnosticsConfig{
			OverflowWarnings: true,
		},
		List: ListConfig{
			ResultBuffer: 64,
		},
	}
}

// LoadOptional reads loom.yaml from dir if present, applying defaults on
// top of whatever the file leaves unset.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "loom.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read loom.yaml: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration bytes and validates the schema version.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse loom.yaml: %w", err)
	}

	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = "v1"
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid config version %q", cfg.Version)
	}
	if semver.Major(version) != "v1" {
		return nil, fmt.Errorf("unsupported config version %q (want v1)", cfg.Version)
	}
	cfg.Version = version

	if cfg.List.ResultBuffer <= 0 {
		cfg.List.ResultBuffer = 64
	}
	return &cfg, nil
}
