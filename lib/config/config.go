// Copyright 2026 The sshsign Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for sshsign.
//
// Configuration is a single optional YAML file named by the
// SSHSIGN_CONFIG environment variable. When the variable is unset the
// defaults apply: the tool must work bare when git invokes it as
// gpg.ssh.program with no environment of its own. When the variable
// is set, the file must exist and parse; a broken config is an error,
// not a silent fallback.
//
// Config values supply defaults only. Explicit command-line arguments
// always win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "SSHSIGN_CONFIG"

// Config is the tool configuration.
type Config struct {
	// DefaultNamespace is the signature namespace used when no -n
	// flag is given. Git commit signing uses "git".
	DefaultNamespace string `yaml:"default_namespace"`

	// AllowedSignersFile is the allowed-signers listing consulted
	// when verify is invoked without -f. Empty means verification
	// runs without principal resolution unless -f is passed.
	AllowedSignersFile string `yaml:"allowed_signers_file"`

	// Keytool configures the delegated key-management subprocess.
	Keytool KeytoolConfig `yaml:"keytool"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`
}

// KeytoolConfig configures the dropbearkey collaborator.
type KeytoolConfig struct {
	// Binary is the dropbearkey executable. Empty means PATH lookup
	// of "dropbearkey".
	Binary string `yaml:"binary"`
}

// LoggingConfig configures slog output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Default: warn.
	Level string `yaml:"level"`

	// File is an optional log destination. Empty means stderr.
	File string `yaml:"file"`
}

// Default returns the configuration used when no config file is set.
func Default() *Config {
	return &Config{
		DefaultNamespace: "git",
		Logging:          LoggingConfig{Level: "warn"},
	}
}

// Load reads configuration from the SSHSIGN_CONFIG environment
// variable, or returns defaults when it is unset.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging
// over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.DefaultNamespace == "" {
		errs = append(errs, fmt.Errorf("default_namespace must not be empty"))
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel returns the configured slog level.
func (c *Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Logging.Level)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(name string) (slog.Level, error) {
	switch name {
	case "", "warn":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", name)
	}
}
