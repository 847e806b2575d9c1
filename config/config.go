// Package config loads application settings and concept/notation tables and builds
// converters from them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvVar contains the name of environment variable holding the config file path.
const EnvVar = "NOTATE_CONFIG"

// Config holds application settings.
type Config struct {
	General   GeneralConfig   `toml:"general"`
	Converter ConverterConfig `toml:"converter"`
	Tables    TablesConfig    `toml:"tables"`
}

// GeneralConfig holds logging settings.
type GeneralConfig struct {
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// ConverterConfig holds converter settings.
type ConverterConfig struct {
	Start     string   `toml:"start"`
	Variables []string `toml:"variables"`
}

// TablesConfig holds table file settings.
type TablesConfig struct {
	// Files contains YAML or TOML table files applied after the built-in table.
	Files []string `toml:"files"`

	// NoBuiltin disables the built-in arithmetic table.
	NoBuiltin bool `toml:"no_builtin"`

	DefaultFrom string   `toml:"default_from"`
	DefaultTo   string   `toml:"default_to"`
	Watch       bool     `toml:"watch"`
	Debounce    Duration `toml:"debounce"`
}

// Duration wraps time.Duration for TOML parsing.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns configuration with default values.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file.
// Relative table file names are resolved against the config file directory.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	dir := filepath.Dir(path)
	for i, f := range cfg.Tables.Files {
		f = os.ExpandEnv(f)
		if !filepath.IsAbs(f) {
			f = filepath.Join(dir, f)
		}
		cfg.Tables.Files[i] = f
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadFromEnv loads configuration from the file named by NOTATE_CONFIG environment variable
// or from one of default locations. Returns default configuration if there is no config file.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path != "" {
		return Load(path)
	}

	defaultPaths := []string{"./notate.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "notate", "config.toml"))
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Tables.DefaultFrom == "" {
		c.Tables.DefaultFrom = "infix"
	}
	if c.Tables.DefaultTo == "" {
		c.Tables.DefaultTo = "putdown"
	}
	if c.Tables.Debounce.Duration == 0 {
		c.Tables.Debounce.Duration = 500 * time.Millisecond
	}
}
