package model

// JobState represents the busy state of a job supervisor
type JobState string

const (
	// JobStateIdle means no job is running and a start request will be accepted
	JobStateIdle JobState = "Idle"

	// JobStateRunning means a job is in flight and start requests are ignored
	JobStateRunning JobState = "Running"
)

// String returns the string representation of JobState
func (js JobState) String() string {
	return string(js)
}

// IsBusy returns true if a new job can not be started in this state
func (js JobState) IsBusy() bool {
	return js == JobStateRunning
}

// JobOutcome is the terminal result of a started job
type JobOutcome string

const (
	// JobOutcomeCompleted means the process terminated, whatever its exit code
	JobOutcomeCompleted JobOutcome = "Completed"

	// JobOutcomeFailed means the job ended through an error (launch, poll or timeout)
	JobOutcomeFailed JobOutcome = "Failed"
)

// String returns the string representation of JobOutcome
func (jo JobOutcome) String() string {
	return string(jo)
}

// IsFailure returns true if the outcome was reported to the user as an error
func (jo JobOutcome) IsFailure() bool {
	return jo == JobOutcomeFailed
}
