// Package config loads the settings shared by the demo programs.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names an optional YAML file that replaces the embedded defaults.
const EnvPath = "GOSYNC_CONFIG"

// ─── YAML schema ───────────────────────────────────────────────────────────

type SharedState struct {
	Workers int `yaml:"workers"`
	Initial int `yaml:"initial"`
}

type MessagePassing struct {
	SendInterval time.Duration `yaml:"send_interval"`
	Producers    [][]string    `yaml:"producers"`
}

type Config struct {
	SharedState    SharedState    `yaml:"shared_state"`
	MessagePassing MessagePassing `yaml:"message_passing"`
}

// ─── embedded YAML file ───────────────────────────────────────────────────

//go:embed config.yml
var raw []byte

// Default returns the embedded configuration.
func Default() (*Config, error) {
	return Parse(raw)
}

// Load returns the file named by $GOSYNC_CONFIG if set, else the defaults.
func Load() (*Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes data and validates the result.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects settings the demos cannot run with.
func (c *Config) Validate() error {
	if c.SharedState.Workers < 0 {
		return fmt.Errorf("shared_state.workers must not be negative, got %d", c.SharedState.Workers)
	}
	if c.MessagePassing.SendInterval < 0 {
		return fmt.Errorf("message_passing.send_interval must not be negative, got %s", c.MessagePassing.SendInterval)
	}
	if len(c.MessagePassing.Producers) == 0 {
		return fmt.Errorf("message_passing.producers must list at least one producer")
	}
	return nil
}
