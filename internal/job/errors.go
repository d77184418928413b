package job

import (
	"errors"
	"fmt"
)

// ErrTimeout is wrapped by the PollError of a job that ran longer than the configured timeout.
var ErrTimeout = errors.New("job timed out")

// LaunchError means the external process could not be started.
type LaunchError struct {
	JobID string
	Err   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to start job %s: %v", e.JobID, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// PollError means the status of a started process could not be queried.
type PollError struct {
	JobID string
	Err   error
}

func (e *PollError) Error() string {
	return fmt.Sprintf("failed to poll job %s: %v", e.JobID, e.Err)
}

func (e *PollError) Unwrap() error {
	return e.Err
}
