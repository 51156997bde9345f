// Package config loads the service's YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Database settings come from the
// environment, not this file.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	NATS struct {
		URL string `yaml:"url"`
	} `yaml:"nats"`

	Keeper struct {
		MaxKeepersPerTeam int `yaml:"max_keepers_per_team"`
		MaxKeeperYears    int `yaml:"max_keeper_years"`
	} `yaml:"keeper"`

	Outbox struct {
		FallbackInterval string `yaml:"fallback_interval"`
	} `yaml:"outbox"`
}

// Load reads and parses the config file at path. A missing file yields
// defaults so the service can run from environment alone.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	cfg.NATS.URL = "nats://localhost:4222"
	cfg.Keeper.MaxKeepersPerTeam = 3
	cfg.Keeper.MaxKeeperYears = 2
	return cfg
}
