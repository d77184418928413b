package download

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ytget/music-manager/internal/job"
	"github.com/ytget/music-manager/internal/log"
	"github.com/ytget/music-manager/internal/platform"
)

// Downloader defaults
const (
	DefaultExecutable  = "youtube-dl"
	DefaultDownloadDir = "./download"

	// DefaultWaitDelay bounds how long output is drained after the downloader
	// exits while a leftover child still holds its pipes
	DefaultWaitDelay = 5 * time.Second
)

// Downloader command line flags
const (
	FlagEmbedThumbnail = "--embed-thumbnail"
	FlagAddMetadata    = "--add-metadata"
	FlagExtractAudio   = "--extract-audio"
	FlagIgnoreErrors   = "--ignore-errors"
	FlagAudioFormat    = "--audio-format"
	AudioFormatBest    = "best"
	FlagBatchFile      = "-a"
	StdinTarget        = "-"
)

// Output streams, used as log field values
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// FieldExitCode carries the downloader's exit code in the exit log entry
const FieldExitCode = "exit_code"

// Launcher starts the downloader in the download directory
type Launcher struct {
	executable string
	args       []string
	dir        string
	waitDelay  time.Duration
	logger     *logrus.Entry
}

var _ job.Launcher = (*Launcher)(nil)

// NewLauncher creates a launcher for executable running in dir
func NewLauncher(executable, dir string, logger *logrus.Entry) *Launcher {
	if executable == "" {
		executable = DefaultExecutable
	}
	if dir == "" {
		dir = DefaultDownloadDir
	}
	if logger == nil {
		logger = log.NewLogger("downloader")
	}
	return &Launcher{
		executable: executable,
		args:       BuildArgs(),
		dir:        dir,
		waitDelay:  DefaultWaitDelay,
		logger:     logger,
	}
}

// BuildArgs builds the downloader command arguments
func BuildArgs() []string {
	return []string{
		FlagEmbedThumbnail,               // Cover art from the thumbnail
		FlagAddMetadata,                  // Title, artist etc. from the page
		FlagExtractAudio,                 // Keep the audio track only
		FlagIgnoreErrors,                 // A broken URL must not stop the batch
		FlagAudioFormat, AudioFormatBest, // Do not re-encode
		FlagBatchFile, StdinTarget,       // URL list from stdin
	}
}

// Launch implements job.Launcher
func (l *Launcher) Launch(ctx context.Context, jobID string, input []byte) (job.Process, error) {
	if err := platform.CreateDirectoryIfNotExists(l.dir); err != nil {
		return nil, fmt.Errorf("failed to prepare download directory: %w", err)
	}

	logger := l.logger.WithField(log.FieldJobID, jobID)
	ctx, cancel := context.WithCancel(ctx)

	cmd := exec.CommandContext(ctx, l.executable, l.args...)
	cmd.Dir = l.dir
	cmd.Stdin = bytes.NewReader(input)
	stdout := newLineWriter(logger.WithField(log.FieldStream, StreamStdout), logrus.DebugLevel)
	stderr := newLineWriter(logger.WithField(log.FieldStream, StreamStderr), logrus.WarnLevel)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = l.waitDelay
	startInGroup(cmd)
	cmd.Cancel = func() error { return killGroup(cmd) }

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start %s: %w", l.executable, err)
	}
	logger.WithFields(logrus.Fields{
		"pid":  cmd.Process.Pid,
		"path": cmd.Path,
		"dir":  cmd.Dir,
	}).Debug("downloader started")

	p := newProcess(cmd, cancel, logger, stdout, stderr)
	go p.wait()
	return p, nil
}
