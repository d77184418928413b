package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ytget/music-manager/internal/job"
	"github.com/ytget/music-manager/internal/model"
)

// ErrNoInput is returned when the URL list is empty
var ErrNoInput = errors.New("no URLs given")

var downloadCmd = &cobra.Command{
	Use:   "download [FILE]",
	Short: "Download the URLs listed in FILE without opening a window",
	Long: `Feed the URLs listed in FILE, one per line, to the downloader and wait for it
to exit. Without FILE, or with "-", the list is read from standard input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDownload,
}

func runDownload(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	sched := job.NewTickerScheduler(job.Direct)
	defer sched.Close()

	finished := make(chan model.JobRecord, 1)
	sup := newSupervisor(conf, sched, job.WithFinishHook(func(r model.JobRecord) {
		finished <- r
	}))
	return runHeadless(cmd, sup, input, finished)
}

// runHeadless starts one job and blocks until the supervisor reports it finished.
// Interrupting the command context kills the downloader.
func runHeadless(cmd *cobra.Command, sup *job.Supervisor, input []byte, finished <-chan model.JobRecord) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var jobErr error
	started := sup.RequestStart(ctx, input, job.Callbacks{
		ShowBusy: func() {
			fmt.Fprintln(out, "downloading...")
		},
		ReportError: func(err error) {
			jobErr = err
		},
	})
	if !started && jobErr == nil {
		return errors.New("a download is already running")
	}

	record := <-finished
	fmt.Fprintln(out, record.Summary())
	if jobErr != nil {
		return jobErr
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("download interrupted: %w", err)
	}
	return nil
}

func readInput(stdin io.Reader, args []string) ([]byte, error) {
	var (
		input []byte
		err   error
	)
	if len(args) == 0 || args[0] == "-" {
		input, err = io.ReadAll(stdin)
	} else {
		input, err = os.ReadFile(args[0])
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read URL list: %w", err)
	}
	if strings.TrimSpace(string(input)) == "" {
		return nil, ErrNoInput
	}
	return input, nil
}
