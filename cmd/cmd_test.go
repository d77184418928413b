package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/ytget/music-manager/internal/config"
	"github.com/ytget/music-manager/internal/job"
	"github.com/ytget/music-manager/internal/job/jobtest"
	"github.com/ytget/music-manager/internal/log"
	"github.com/ytget/music-manager/internal/model"
)

func newTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	registerFlags(c)
	require.NoError(t, c.ParseFlags(args))
	return c
}

func TestReadInput(t *testing.T) {
	input, err := readInput(strings.NewReader("https://a\n"), nil)
	require.NoError(t, err)
	require.Equal(t, "https://a\n", string(input))

	input, err = readInput(strings.NewReader("https://b\n"), []string{"-"})
	require.NoError(t, err)
	require.Equal(t, "https://b\n", string(input))

	file := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(file, []byte("https://c\nhttps://d\n"), 0644))
	input, err = readInput(strings.NewReader("ignored"), []string{file})
	require.NoError(t, err)
	require.Equal(t, "https://c\nhttps://d\n", string(input))

	_, err = readInput(strings.NewReader(" \n\t\n"), nil)
	require.ErrorIs(t, err, ErrNoInput)

	_, err = readInput(nil, []string{filepath.Join(t.TempDir(), "missing.txt")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Defaults(t *testing.T) {
	c := newTestCommand(t, "--env-file", filepath.Join(t.TempDir(), "missing.env"))

	cfg, err := loadConfig(c)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadConfig_Layers(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte("downloadDir: /music/yaml\ndownloader: yaml-dl\ntimeout: 10m\n"), 0644))
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(config.EnvDownloader+"=env-dl\n"+config.EnvLogLevel+"=debug\n"), 0644))

	c := newTestCommand(t,
		"--config", yamlFile,
		"--env-file", envFile,
		"--poll-interval", "250ms",
	)
	cfg, err := loadConfig(c)
	require.NoError(t, err)
	require.Equal(t, "/music/yaml", cfg.DownloadDir)
	require.Equal(t, "env-dl", cfg.Downloader)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, 250*time.Millisecond, cfg.PollInterval)
	require.Equal(t, 10*time.Minute, cfg.Timeout)

	// flags beat the env file
	c = newTestCommand(t,
		"--config", yamlFile,
		"--env-file", envFile,
		"--downloader", "yt-dlp",
	)
	cfg, err = loadConfig(c)
	require.NoError(t, err)
	require.Equal(t, "yt-dlp", cfg.Downloader)
}

func TestLoadConfig_Invalid(t *testing.T) {
	c := newTestCommand(t,
		"--env-file", filepath.Join(t.TempDir(), "missing.env"),
		"--poll-interval", "0s",
	)
	_, err := loadConfig(c)
	require.Error(t, err)
	require.Contains(t, err.Error(), "PollInterval")
}

func TestPinnedSettings(t *testing.T) {
	c := newTestCommand(t, "--downloader", "yt-dlp", "--timeout", "1m")
	pinned := pinnedSettings(c)
	require.True(t, pinned[config.KeyDownloader])
	require.True(t, pinned[config.KeyTimeout])
	require.False(t, pinned[config.KeyDownloadDir])
	require.False(t, pinned[config.KeyPollInterval])
}

func headlessCommand(ctx context.Context) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	c := &cobra.Command{Use: "download"}
	c.SetContext(ctx)
	c.SetOut(&out)
	return c, &out
}

func headlessSupervisor(launcher *jobtest.Launcher) (*job.Supervisor, *job.TickerScheduler, chan model.JobRecord) {
	sched := job.NewTickerScheduler(job.Direct)
	finished := make(chan model.JobRecord, 1)
	sup := job.NewSupervisor(launcher, sched,
		job.WithPollInterval(time.Millisecond),
		job.WithLogger(log.Discard()),
		job.WithFinishHook(func(r model.JobRecord) { finished <- r }),
	)
	return sup, sched, finished
}

func TestRunHeadless_Completed(t *testing.T) {
	launcher := &jobtest.Launcher{NewProcess: func() *jobtest.Process {
		return &jobtest.Process{ExitAfter: 2}
	}}
	sup, sched, finished := headlessSupervisor(launcher)
	defer sched.Close()

	c, out := headlessCommand(t.Context())
	require.NoError(t, runHeadless(c, sup, []byte("https://a\n"), finished))
	require.Equal(t, "https://a\n", string(launcher.Input(0)))
	require.Contains(t, out.String(), "downloading...")
	require.Contains(t, out.String(), "Completed")
}

func TestRunHeadless_LaunchFailure(t *testing.T) {
	launcher := &jobtest.Launcher{Err: errors.New("executable file not found in $PATH")}
	sup, sched, finished := headlessSupervisor(launcher)
	defer sched.Close()

	c, out := headlessCommand(t.Context())
	err := runHeadless(c, sup, []byte("https://a\n"), finished)
	var launchErr *job.LaunchError
	require.ErrorAs(t, err, &launchErr)
	require.Contains(t, out.String(), "Failed")
	require.NotContains(t, out.String(), "downloading...")
}

func TestRunHeadless_PollError(t *testing.T) {
	statusErr := errors.New("wait: input/output error")
	launcher := &jobtest.Launcher{NewProcess: func() *jobtest.Process {
		return &jobtest.Process{FailAt: 1, FailErr: statusErr}
	}}
	sup, sched, finished := headlessSupervisor(launcher)
	defer sched.Close()

	c, _ := headlessCommand(t.Context())
	err := runHeadless(c, sup, []byte("https://a\n"), finished)
	var pollErr *job.PollError
	require.ErrorAs(t, err, &pollErr)
	require.ErrorIs(t, err, statusErr)
}

func TestNewSupervisor_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Downloader = "music-manager-no-such-downloader"
	cfg.DownloadDir = filepath.Join(t.TempDir(), "download")

	sched := &jobtest.ManualScheduler{}
	sup := newSupervisor(cfg, sched)

	var rec jobtest.Recorder
	require.False(t, sup.RequestStart(t.Context(), []byte("https://a\n"), rec.Callbacks()))
	require.Equal(t, []string{"error"}, rec.Events())
	require.Zero(t, sched.Active())

	// the launcher created the download directory before failing to start
	info, err := os.Stat(cfg.DownloadDir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
