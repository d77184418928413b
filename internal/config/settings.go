package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir  = "download_directory"
	KeyDownloader   = "downloader_executable"
	KeyPollInterval = "poll_interval_ms"
	KeyTimeout      = "timeout_seconds"
)

// Poll interval bounds
const (
	MinPollInterval = 100 * time.Millisecond
	MaxPollInterval = time.Minute
)

// Settings remembers GUI configuration between runs
type Settings struct {
	prefs fyne.Preferences
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{prefs: app.Preferences()}
}

// GetDownloadDirectory returns the remembered download directory, storing fallback if there is none
func (s *Settings) GetDownloadDirectory(fallback string) string {
	dir := s.prefs.String(KeyDownloadDir)
	if dir == "" {
		s.SetDownloadDirectory(fallback)
		return fallback
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.prefs.SetString(KeyDownloadDir, dir)
}

// GetDownloader returns the remembered downloader executable, storing fallback if there is none
func (s *Settings) GetDownloader(fallback string) string {
	exe := s.prefs.String(KeyDownloader)
	if exe == "" {
		s.SetDownloader(fallback)
		return fallback
	}
	return exe
}

// SetDownloader sets the downloader executable
func (s *Settings) SetDownloader(exe string) {
	s.prefs.SetString(KeyDownloader, exe)
}

// GetPollInterval returns the remembered poll interval, storing fallback if there is none
func (s *Settings) GetPollInterval(fallback time.Duration) time.Duration {
	ms := s.prefs.Int(KeyPollInterval)
	if ms <= 0 {
		s.SetPollInterval(fallback)
		return clampPollInterval(fallback)
	}
	return time.Duration(ms) * time.Millisecond
}

// SetPollInterval sets the poll interval
func (s *Settings) SetPollInterval(d time.Duration) {
	s.prefs.SetInt(KeyPollInterval, int(clampPollInterval(d)/time.Millisecond))
}

// GetTimeout returns the remembered job timeout, 0 means none
func (s *Settings) GetTimeout(fallback time.Duration) time.Duration {
	secs := s.prefs.IntWithFallback(KeyTimeout, -1)
	if secs < 0 {
		s.SetTimeout(fallback)
		return fallback.Truncate(time.Second)
	}
	return time.Duration(secs) * time.Second
}

// SetTimeout sets the job timeout, negative values disable it
func (s *Settings) SetTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.prefs.SetInt(KeyTimeout, int(d/time.Second))
}

// Merge fills cfg from the preferences. Keys in pinned were set explicitly by
// the user for this run, so they are stored instead of read.
func (s *Settings) Merge(cfg *Config, pinned map[string]bool) {
	if pinned[KeyDownloadDir] {
		s.SetDownloadDirectory(cfg.DownloadDir)
	} else {
		cfg.DownloadDir = s.GetDownloadDirectory(cfg.DownloadDir)
	}

	if pinned[KeyDownloader] {
		s.SetDownloader(cfg.Downloader)
	} else {
		cfg.Downloader = s.GetDownloader(cfg.Downloader)
	}

	if pinned[KeyPollInterval] {
		s.SetPollInterval(cfg.PollInterval)
	} else {
		cfg.PollInterval = s.GetPollInterval(cfg.PollInterval)
	}

	if pinned[KeyTimeout] {
		s.SetTimeout(cfg.Timeout)
	} else {
		cfg.Timeout = s.GetTimeout(cfg.Timeout)
	}
}

func clampPollInterval(d time.Duration) time.Duration {
	if d < MinPollInterval {
		return MinPollInterval
	}
	if d > MaxPollInterval {
		return MaxPollInterval
	}
	return d
}
