package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const defaultMaxImportBytes = 512 << 20 // raw-locations exports run large

// Config represents the application configuration
type Config struct {
	// Listen is the HTTP listen address for the local viewer.
	Listen string `yaml:"listen,omitempty"`
	// Timezone is the IANA zone used to derive calendar days (e.g.
	// "Asia/Tokyo"). Empty means the system zone.
	Timezone string `yaml:"timezone,omitempty"`
	// MaxImportBytes caps uploaded export documents.
	MaxImportBytes int64 `yaml:"max_import_bytes,omitempty"`
}

// DefaultConfigPath returns the default config file path following XDG spec
func DefaultConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "retrace", "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// A missing file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Listen:         "127.0.0.1:8080",
		MaxImportBytes: defaultMaxImportBytes,
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Listen == "" {
		cfg.Listen = "127.0.0.1:8080"
	}
	if cfg.MaxImportBytes <= 0 {
		cfg.MaxImportBytes = defaultMaxImportBytes
	}

	return cfg, nil
}

// ApplyEnv overlays RETRACE_* environment variables (typically loaded from
// a .env file) onto the config. Flags still win over both.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("RETRACE_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("RETRACE_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("RETRACE_MAX_IMPORT_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxImportBytes = n
		}
	}
}
