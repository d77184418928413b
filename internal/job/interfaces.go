package job

import (
	"context"
	"time"
)

// Launcher starts the external process of a job with input on its standard input.
type Launcher interface {
	Launch(ctx context.Context, jobID string, input []byte) (Process, error)
}

// Process is a handle to a started external process.
type Process interface {
	// TryWait reports whether the process has terminated without blocking.
	// A non-nil error means the status could not be determined.
	TryWait() (exited bool, err error)

	// Kill asks the process to terminate.
	Kill() error

	// Release frees resources held by the handle once the process is gone.
	Release()
}

// CancelFunc stops a periodic task. Calling it more than once is a no-op.
type CancelFunc func()

// Scheduler runs fn every period until the returned CancelFunc is called.
type Scheduler interface {
	Every(period time.Duration, fn func()) CancelFunc
}
