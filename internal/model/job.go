package model

import (
	"fmt"
	"time"
)

// JobRecord summarizes a single job handled by a supervisor
type JobRecord struct {
	ID         string
	Outcome    JobOutcome
	LastError  string    // error message if the job failed
	StartedAt  time.Time // when the launch was attempted
	FinishedAt time.Time // when the supervisor observed the end of the job
}

// Duration returns how long the job ran, or 0 if it has not finished
func (jr *JobRecord) Duration() time.Duration {
	if jr.StartedAt.IsZero() || jr.FinishedAt.IsZero() {
		return 0
	}
	return jr.FinishedAt.Sub(jr.StartedAt)
}

// Summary returns a one line description suitable for logs and the CLI
func (jr *JobRecord) Summary() string {
	d := jr.Duration().Round(time.Second)
	if jr.Outcome.IsFailure() {
		return fmt.Sprintf("%s %s after %s: %s", jr.ID, jr.Outcome, d, jr.LastError)
	}
	return fmt.Sprintf("%s %s in %s", jr.ID, jr.Outcome, d)
}
