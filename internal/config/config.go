// Package config centralises configuration for the converter.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds converter settings loaded from YAML and the environment.
type Config struct {
	// TypeNames overrides output file names per HealthKit type identifier.
	TypeNames map[string]string `yaml:"type_names"`

	// SkipTypes lists type identifiers to drop from the output.
	SkipTypes []string `yaml:"skip_types"`

	// KeepTimezone leaves timezone offsets on date columns.
	KeepTimezone bool `yaml:"keep_timezone"`

	// Combined writes all records to a single file with a type column.
	Combined bool `yaml:"combined"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// DefaultPath returns the conventional config location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "healthcsv.yaml"
	}
	return filepath.Join(home, ".config", "healthcsv", "config.yaml")
}

// Load reads configuration from a YAML file, returning defaults when the
// file does not exist. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HEALTHCSV_SKIP_TYPES"); v != "" {
		c.SkipTypes = splitAndTrim(v)
	}
	if v := os.Getenv("HEALTHCSV_KEEP_TIMEZONE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.KeepTimezone = b
		}
	}
	if v := os.Getenv("HEALTHCSV_COMBINED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Combined = b
		}
	}
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
