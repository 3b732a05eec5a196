// Package config provides configuration types for the ATS mock simulator.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default ports for the mock and admin listeners.
const (
	DefaultMockPort  = 8000
	DefaultAdminPort = 8001
)

// Config is the top-level simulator configuration, usually loaded from an
// atsmock.yaml file.
type Config struct {
	// MockPort is the port serving mock endpoint traffic.
	MockPort int `yaml:"mock_port"`

	// AdminPort is the port serving the admin API. Zero disables it.
	AdminPort int `yaml:"admin_port"`

	// ReadTimeout and WriteTimeout are HTTP server timeouts in seconds.
	ReadTimeout  int `yaml:"read_timeout"`
	WriteTimeout int `yaml:"write_timeout"`

	// MaxLogEntries caps the request history buffer.
	MaxLogEntries int `yaml:"max_log_entries"`

	// Logging controls the operational logger.
	Logging LoggingConfig `yaml:"logging"`

	// Endpoints lists endpoint definitions loaded at startup: inline
	// entries, file references, or glob patterns.
	Endpoints []EndpointEntry `yaml:"endpoints,omitempty"`
}

// LoggingConfig selects log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a configuration with default ports and timeouts.
func DefaultConfig() *Config {
	return &Config{
		MockPort:      DefaultMockPort,
		AdminPort:     DefaultAdminPort,
		ReadTimeout:   30,
		WriteTimeout:  30,
		MaxLogEntries: 1000,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadFile reads and parses a YAML configuration file. Fields absent from
// the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	if c.MockPort <= 0 || c.MockPort > 65535 {
		return fmt.Errorf("mock_port %d out of range", c.MockPort)
	}
	if c.AdminPort < 0 || c.AdminPort > 65535 {
		return fmt.Errorf("admin_port %d out of range", c.AdminPort)
	}
	if c.AdminPort != 0 && c.AdminPort == c.MockPort {
		return fmt.Errorf("admin_port and mock_port are both %d", c.MockPort)
	}
	for i := range c.Endpoints {
		if err := c.Endpoints[i].validate(); err != nil {
			return fmt.Errorf("endpoints[%d]: %w", i, err)
		}
	}
	return nil
}

// BaseDir returns the directory used to resolve relative file references,
// typically the directory containing the config file.
func BaseDir(configPath string) string {
	if configPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			return cwd
		}
		return "."
	}
	return filepath.Dir(configPath)
}
