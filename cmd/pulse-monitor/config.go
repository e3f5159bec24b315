package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the monitor configuration.
type Config struct {
	// Topic is the topic the subscription and publication are created on.
	Topic string

	// LogFile, if set, receives a CBOR event trace.
	LogFile string

	// LogLevel is the slog level: debug, info, warn, error.
	LogLevel string

	// WaitTimeout is the default timeout for the wait command.
	WaitTimeout time.Duration
}

// fileConfig is the YAML shape of Config. Durations are written as
// strings ("2s", "500ms") since yaml.v3 has no native duration support.
type fileConfig struct {
	Topic       string `yaml:"topic"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
	WaitTimeout string `yaml:"wait_timeout"`
}

// DefaultConfig returns the default monitor configuration.
func DefaultConfig() Config {
	return Config{
		Topic:       "sensor/temperature",
		LogLevel:    "info",
		WaitTimeout: 5 * time.Second,
	}
}

// LoadConfig loads a monitor configuration from a YAML file. Missing
// fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := DefaultConfig()
	if raw.Topic != "" {
		cfg.Topic = raw.Topic
	}
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.WaitTimeout != "" {
		d, err := time.ParseDuration(raw.WaitTimeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid wait_timeout: %w", err)
		}
		if d > 0 {
			cfg.WaitTimeout = d
		}
	}

	return cfg, nil
}
