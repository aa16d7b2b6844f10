// Package config loads numconform settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/roach88/numconform/internal/backend"
)

// Config holds the settings shared by every command. Command-line flags
// override them.
type Config struct {
	// DefaultPattern is used for scenarios that set no pattern.
	DefaultPattern string `yaml:"default_pattern"`

	// DefaultLocale is used for scenarios that set no locale.
	DefaultLocale string `yaml:"default_locale"`

	// Backends selects the backends a run covers, by ID.
	Backends []string `yaml:"backends"`

	// Database is the verdict ledger path. Empty disables recording.
	Database string `yaml:"database"`

	// FailOnError makes error verdicts fail a run. Fail verdicts always do.
	FailOnError bool `yaml:"fail_on_error"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DefaultPattern: backend.DefaultPattern,
		DefaultLocale:  backend.DefaultLocale,
		Backends:       []string{string(backend.Platform)},
		FailOnError:    true,
	}
}

// DefaultPath is where LoadConfig looks when given no path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".numconform", "config.yaml"), nil
}

// LoadConfig reads the config at path, layered over DefaultConfig. An
// empty path means DefaultPath. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the locale and backend names.
func (c *Config) Validate() error {
	if c.DefaultLocale != "" {
		if _, err := language.Parse(c.DefaultLocale); err != nil {
			return fmt.Errorf("default_locale %q: %w", c.DefaultLocale, err)
		}
	}
	for _, b := range c.Backends {
		switch backend.ID(b) {
		case backend.Legacy, backend.Platform, backend.Pattern:
		default:
			return fmt.Errorf("backends: unknown backend %q", b)
		}
	}
	return nil
}

// AdapterOptions returns the adapter options the config implies.
func (c *Config) AdapterOptions() []backend.Option {
	return []backend.Option{
		backend.WithDefaultPattern(c.DefaultPattern),
		backend.WithDefaultLocale(c.DefaultLocale),
	}
}

// BackendIDs returns Backends as IDs.
func (c *Config) BackendIDs() []backend.ID {
	ids := make([]backend.ID, len(c.Backends))
	for i, b := range c.Backends {
		ids[i] = backend.ID(b)
	}
	return ids
}
