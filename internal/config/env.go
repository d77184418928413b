package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys, read from the process environment and the env file
const (
	EnvDownloadDir  = "MUSIC_MANAGER_DOWNLOAD_DIR"
	EnvDownloader   = "MUSIC_MANAGER_DOWNLOADER"
	EnvPollInterval = "MUSIC_MANAGER_POLL_INTERVAL"
	EnvTimeout      = "MUSIC_MANAGER_TIMEOUT"
	EnvLogLevel     = "MUSIC_MANAGER_LOG_LEVEL"
)

var envKeys = []string{EnvDownloadDir, EnvDownloader, EnvPollInterval, EnvTimeout, EnvLogLevel}

// ApplyEnv overlays cfg with envFile (missing file is fine) and then with the
// process environment, which wins.
func ApplyEnv(cfg *Config, envFile string) error {
	vars := make(map[string]string)
	if envFile != "" {
		fileVars, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to read env file %s: %w", envFile, err)
		}
		for k, v := range fileVars {
			vars[k] = v
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(key); ok {
			vars[key] = v
		}
	}
	return applyVars(cfg, vars)
}

func applyVars(cfg *Config, vars map[string]string) error {
	if v := vars[EnvDownloadDir]; v != "" {
		cfg.DownloadDir = v
	}
	if v := vars[EnvDownloader]; v != "" {
		cfg.Downloader = v
	}
	if v := vars[EnvLogLevel]; v != "" {
		cfg.LogLevel = v
	}
	if v := vars[EnvPollInterval]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPollInterval, err)
		}
		cfg.PollInterval = d
	}
	if v := vars[EnvTimeout]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}
