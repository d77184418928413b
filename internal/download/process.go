package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// process is the job.Process of a started downloader. Wait runs on its own
// goroutine, TryWait only looks at the result.
type process struct {
	cmd     *exec.Cmd
	cancel  context.CancelFunc
	logger  *logrus.Entry
	outputs []*lineWriter

	done chan struct{}
	err  error
}

func newProcess(cmd *exec.Cmd, cancel context.CancelFunc, logger *logrus.Entry, outputs ...*lineWriter) *process {
	return &process{
		cmd:     cmd,
		cancel:  cancel,
		logger:  logger,
		outputs: outputs,
		done:    make(chan struct{}),
	}
}

// wait blocks until the downloader exits and its output is drained
func (p *process) wait() {
	err := p.cmd.Wait()
	for _, w := range p.outputs {
		w.Flush()
	}

	// -1 when killed by a signal
	exitCode := -1
	if p.cmd.ProcessState != nil {
		exitCode = p.cmd.ProcessState.ExitCode()
	}
	p.logger.WithField(FieldExitCode, exitCode).Info("downloader exited")

	// failed items are the tool's business, it runs with --ignore-errors
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		err = nil
	}
	p.err = err
	close(p.done)
}

// TryWait implements job.Process
func (p *process) TryWait() (bool, error) {
	select {
	case <-p.done:
		if p.err != nil {
			return true, fmt.Errorf("failed to wait for downloader: %w", p.err)
		}
		return true, nil
	default:
		return false, nil
	}
}

// Kill implements job.Process. Children of the downloader are killed too.
func (p *process) Kill() error {
	err := killGroup(p.cmd)
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

// Release implements job.Process
func (p *process) Release() {
	p.cancel()
}
