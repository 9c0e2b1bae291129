// Package config handles configuration loading.
package config

import (
	"fmt"
	"os"

	"github.com/woozymasta/exceljson/internal/schema"

	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
type Config struct {
	// Schema replaces the built-in turbine columns when set.
	Schema *schema.Definition `yaml:"schema,omitempty"`

	Sheet            string `yaml:"sheet,omitempty"`             // sheet to read and write, first sheet if empty
	DecimalSeparator string `yaml:"decimal_separator,omitempty"` // locale decimal separator of numeric text
	Format           string `yaml:"format,omitempty"`            // GeoJSON output encoding: json or yaml
	MaxUploadMB      int    `yaml:"max_upload_mb,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DecimalSeparator == "" {
		c.DecimalSeparator = ","
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 32
	}
}
