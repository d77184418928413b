package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ytget/music-manager/internal/download"
	"github.com/ytget/music-manager/internal/job"
)

// DefaultLogLevel is used when nothing else sets the level
const DefaultLogLevel = "info"

// Config holds everything needed to build a supervisor and its launcher
type Config struct {
	DownloadDir  string        `yaml:"downloadDir" validate:"required"`
	Downloader   string        `yaml:"downloader" validate:"required"`
	PollInterval time.Duration `yaml:"pollInterval" validate:"gt=0"`
	Timeout      time.Duration `yaml:"timeout" validate:"gte=0"`
	LogLevel     string        `yaml:"logLevel" validate:"oneof=trace debug info warn warning error fatal panic"`
}

// DefaultConfig returns the built-in settings, no timeout
func DefaultConfig() *Config {
	return &Config{
		DownloadDir:  download.DefaultDownloadDir,
		Downloader:   download.DefaultExecutable,
		PollInterval: job.DefaultPollInterval,
		Timeout:      0,
		LogLevel:     DefaultLogLevel,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and returns the first violation
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Field(), fe.ActualTag(), fe.Value())
	}
	return fmt.Errorf("invalid config: %w", err)
}
