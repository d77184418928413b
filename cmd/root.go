package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ytget/music-manager/internal/config"
	"github.com/ytget/music-manager/internal/download"
	"github.com/ytget/music-manager/internal/job"
	"github.com/ytget/music-manager/internal/log"
)

// DefaultEnvFile is read from the working directory when present
const DefaultEnvFile = ".env"

// Flag names
const (
	FlagConfig       = "config"
	FlagEnvFile      = "env-file"
	FlagLogLevel     = "log-level"
	FlagDownloadDir  = "download-dir"
	FlagDownloader   = "downloader"
	FlagPollInterval = "poll-interval"
	FlagTimeout      = "timeout"
)

var (
	configFile   string
	envFile      string
	logLevel     string
	downloadDir  string
	downloader   string
	pollInterval time.Duration
	timeout      time.Duration

	version = "dev"
	conf    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "music-manager",
	Short: "music-manager downloads audio from a list of media URLs",
	Long: `Paste media URLs, one per line, and download their audio tracks
with an external downloader (youtube-dl compatible).`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage:      true,
	SilenceErrors:     true,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initMusicManager,
	RunE:              runGUI,
}

// Execute runs the command line, exiting non-zero on error
func Execute(v string) {
	if v != "" {
		version = v
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}

func init() {
	registerFlags(rootCmd)

	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(versionCmd)
}

func registerFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFile, FlagConfig, "c", "", "Path to YAML config file")
	flags.StringVar(&envFile, FlagEnvFile, DefaultEnvFile, "Path to env file with MUSIC_MANAGER_* variables")
	flags.StringVarP(&logLevel, FlagLogLevel, "l", config.DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&downloadDir, FlagDownloadDir, download.DefaultDownloadDir, "Directory the downloader runs in")
	flags.StringVar(&downloader, FlagDownloader, download.DefaultExecutable, "Downloader executable name or path")
	flags.DurationVar(&pollInterval, FlagPollInterval, job.DefaultPollInterval, "How often the running downloader is checked")
	flags.DurationVar(&timeout, FlagTimeout, 0, "Kill the downloader after this long, 0 waits forever")
}

func initMusicManager(cmd *cobra.Command, _ []string) error {
	log.InitLog(logLevel)

	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.InitLog(c.LogLevel)
	conf = c

	logrus.WithFields(logrus.Fields{
		"download_dir":  c.DownloadDir,
		"downloader":    c.Downloader,
		"poll_interval": c.PollInterval,
		"timeout":       c.Timeout,
	}).Debug("config loaded")
	return nil
}

// loadConfig layers defaults, the YAML file, the env file, the environment
// and finally the flags the user actually set
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.InitConfig(configFile)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(c, envFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed(FlagLogLevel) {
		c.LogLevel = logLevel
	}
	if flags.Changed(FlagDownloadDir) {
		c.DownloadDir = downloadDir
	}
	if flags.Changed(FlagDownloader) {
		c.Downloader = downloader
	}
	if flags.Changed(FlagPollInterval) {
		c.PollInterval = pollInterval
	}
	if flags.Changed(FlagTimeout) {
		c.Timeout = timeout
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// pinnedSettings maps the flags set on the command line to the preference
// keys they override
func pinnedSettings(cmd *cobra.Command) map[string]bool {
	flags := cmd.Flags()
	return map[string]bool{
		config.KeyDownloadDir:  flags.Changed(FlagDownloadDir),
		config.KeyDownloader:   flags.Changed(FlagDownloader),
		config.KeyPollInterval: flags.Changed(FlagPollInterval),
		config.KeyTimeout:      flags.Changed(FlagTimeout),
	}
}

func newSupervisor(c *config.Config, sched job.Scheduler, opts ...job.Option) *job.Supervisor {
	launcher := download.NewLauncher(c.Downloader, c.DownloadDir, log.NewLogger("downloader"))
	opts = append([]job.Option{
		job.WithPollInterval(c.PollInterval),
		job.WithTimeout(c.Timeout),
		job.WithLogger(log.NewLogger("supervisor")),
	}, opts...)
	return job.NewSupervisor(launcher, sched, opts...)
}

func versionString() string {
	return fmt.Sprintf("music-manager %s", version)
}
