package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config models pfe.yml.
type Config struct {
	Server struct {
		Addr        string   `yaml:"addr"`
		BasePath    string   `yaml:"base_path"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Language string `yaml:"language"`
}

// Default returns the configuration used when no pfe.yml exists.
func Default() *Config {
	var cfg Config
	cfg.Server.Addr = ":8000"
	cfg.Server.BasePath = "/api"
	cfg.Server.CORSOrigins = []string{"*"}
	cfg.Database.Path = "pfe.db"
	cfg.Language = "fr"
	return &cfg
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "pfe.yml")
}

// Load reads and validates config from workspace, falling back to
// defaults when the file does not exist.
func Load(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes. Unset fields
// keep their default values.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config meets required structure.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config.server.addr is required")
	}
	if !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("config.server.base_path must start with '/'")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("config.database.path is required")
	}
	for _, origin := range c.Server.CORSOrigins {
		if origin == "" {
			return fmt.Errorf("config.server.cors_origins contains an empty origin")
		}
	}
	if c.Language == "" {
		return fmt.Errorf("config.language is required")
	}
	return nil
}
