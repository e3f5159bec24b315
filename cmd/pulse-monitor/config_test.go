package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	data := []byte("topic: robot/odom\nlog_level: debug\nwait_timeout: 2s\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if cfg.Topic != "robot/odom" {
		t.Errorf("Topic = %q, want robot/odom", cfg.Topic)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.WaitTimeout != 2*time.Second {
		t.Errorf("WaitTimeout = %v, want 2s", cfg.WaitTimeout)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error = %v", err)
	}
	if cfg.Topic != DefaultConfig().Topic {
		t.Errorf("Topic = %q, want default %q", cfg.Topic, DefaultConfig().Topic)
	}
	if cfg.WaitTimeout != DefaultConfig().WaitTimeout {
		t.Errorf("WaitTimeout = %v, want default %v", cfg.WaitTimeout, DefaultConfig().WaitTimeout)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadConfig on a missing file returned nil error")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor.yaml")
	if err := os.WriteFile(path, []byte("topic: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig on invalid YAML returned nil error")
	}
}
