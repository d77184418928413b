package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.DownloadDir != "./download" {
		t.Errorf("Expected download dir './download', got '%s'", cfg.DownloadDir)
	}
	if cfg.Downloader != "youtube-dl" {
		t.Errorf("Expected downloader 'youtube-dl', got '%s'", cfg.Downloader)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("Expected poll interval 1s, got %v", cfg.PollInterval)
	}
	if cfg.Timeout != 0 {
		t.Errorf("Expected no timeout, got %v", cfg.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid, got: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"empty dir", func(c *Config) { c.DownloadDir = "" }, "DownloadDir"},
		{"empty downloader", func(c *Config) { c.Downloader = "" }, "Downloader"},
		{"zero interval", func(c *Config) { c.PollInterval = 0 }, "PollInterval"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "Timeout"},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, "LogLevel"},
	}

	for _, test := range tests {
		cfg := DefaultConfig()
		test.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error, got nil", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.field) {
			t.Errorf("%s: expected error to mention %s, got: %v", test.name, test.field, err)
		}
	}
}

func TestInitConfig(t *testing.T) {
	cfg, err := InitConfig("")
	if err != nil {
		t.Fatalf("Expected no error for empty path, got: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}

	path := filepath.Join(t.TempDir(), "music-manager.yaml")
	content := "downloadDir: /music/inbox\ndownloader: yt-dlp\npollInterval: 2s\ntimeout: 1h\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err = InitConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.DownloadDir != "/music/inbox" || cfg.Downloader != "yt-dlp" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.PollInterval != 2*time.Second || cfg.Timeout != time.Hour {
		t.Errorf("Unexpected durations: %v %v", cfg.PollInterval, cfg.Timeout)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("Unset keys should keep defaults, got log level %s", cfg.LogLevel)
	}

	if _, err := InitConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "MUSIC_MANAGER_DOWNLOADER=yt-dlp\nMUSIC_MANAGER_POLL_INTERVAL=500ms\nMUSIC_MANAGER_LOG_LEVEL=debug\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv(EnvLogLevel, "warn")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg, envFile); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if cfg.Downloader != "yt-dlp" {
		t.Errorf("Expected downloader from env file, got %s", cfg.Downloader)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("Expected poll interval from env file, got %v", cfg.PollInterval)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Process environment should win over env file, got %s", cfg.LogLevel)
	}
	if cfg.DownloadDir != "./download" {
		t.Errorf("Unset keys should keep defaults, got %s", cfg.DownloadDir)
	}
}

func TestApplyEnv_MissingFileAndBadDuration(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyEnv(cfg, filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("Missing env file should be ignored, got: %v", err)
	}

	t.Setenv(EnvTimeout, "forever")
	if err := ApplyEnv(cfg, ""); err == nil {
		t.Error("Expected error for bad duration, got nil")
	}
}
