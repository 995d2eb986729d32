// Package config provides configuration loading for the conversion server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the server.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Convert ConvertConfig `yaml:"convert"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ConvertConfig holds upload and preview limits.
type ConvertConfig struct {
	PreviewRows    int    `yaml:"preview_rows"`
	MaxPreviewRows int    `yaml:"max_preview_rows"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	DownloadName   string `yaml:"download_name"`
}

// Default returns a config with all defaults applied, for running without a
// config file.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// Load reads and parses the config file at path and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Convert.PreviewRows > c.Convert.MaxPreviewRows {
		return fmt.Errorf("preview_rows %d exceeds max_preview_rows %d", c.Convert.PreviewRows, c.Convert.MaxPreviewRows)
	}
	return nil
}
