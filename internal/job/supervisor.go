package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ytget/music-manager/internal/log"
	"github.com/ytget/music-manager/internal/model"
)

const (
	// DefaultPollInterval is how often a running process is checked
	DefaultPollInterval = time.Second

	// JobIDPrefix prefixes every generated job id
	JobIDPrefix = "job-"
)

// Callbacks are invoked by the supervisor to report the lifecycle of a job.
// Nil fields are skipped. ReportError and HideBusy run while the job still
// counts as running, so a RequestStart made from inside them is rejected;
// use WithFinishHook to react once the supervisor is idle again.
type Callbacks struct {
	ShowBusy    func()
	HideBusy    func()
	ReportError func(err error)
}

func (c Callbacks) showBusy() {
	if c.ShowBusy != nil {
		c.ShowBusy()
	}
}

func (c Callbacks) hideBusy() {
	if c.HideBusy != nil {
		c.HideBusy()
	}
}

func (c Callbacks) reportError(err error) {
	if c.ReportError != nil {
		c.ReportError(err)
	}
}

// Option configures a Supervisor
type Option func(*Supervisor)

// WithPollInterval sets the poll period, non-positive values keep the default
func WithPollInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithTimeout kills a job still running after d of polling, 0 disables it
func WithTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		if d >= 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger entry used by the supervisor
func WithLogger(logger *logrus.Entry) Option {
	return func(s *Supervisor) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFinishHook registers fn to receive the record of every job once the
// supervisor is idle again, including jobs that failed to launch
func WithFinishHook(fn func(model.JobRecord)) Option {
	return func(s *Supervisor) {
		s.onFinish = fn
	}
}

// Supervisor runs at most one job at a time
type Supervisor struct {
	launcher  Launcher
	scheduler Scheduler
	interval  time.Duration
	timeout   time.Duration
	logger    *logrus.Entry
	onFinish  func(model.JobRecord)

	mx      sync.Mutex
	state   model.JobState
	current *run
	last    *model.JobRecord
}

// run is the supervisor side of a single job
type run struct {
	record model.JobRecord
	proc   Process
	cb     Callbacks
	cancel CancelFunc
	polls  int
	done   bool
	logger *logrus.Entry
}

// NewSupervisor creates an idle supervisor
func NewSupervisor(launcher Launcher, scheduler Scheduler, opts ...Option) *Supervisor {
	s := &Supervisor{
		launcher:  launcher,
		scheduler: scheduler,
		interval:  DefaultPollInterval,
		logger:    log.NewLogger("supervisor"),
		state:     model.JobStateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current busy state
func (s *Supervisor) State() model.JobState {
	s.mx.Lock()
	defer s.mx.Unlock()
	return s.state
}

// LastJob returns the record of the most recently finished job
func (s *Supervisor) LastJob() (model.JobRecord, bool) {
	s.mx.Lock()
	defer s.mx.Unlock()
	if s.last == nil {
		return model.JobRecord{}, false
	}
	return *s.last, true
}

// RequestStart launches a job fed with input unless one is already running.
// A rejected request returns false and fires no callback. A launch failure
// reports a *LaunchError synchronously and also returns false.
func (s *Supervisor) RequestStart(ctx context.Context, input []byte, cb Callbacks) bool {
	s.mx.Lock()
	if s.state.IsBusy() {
		s.mx.Unlock()
		s.logger.Debug("job in progress, ignoring start request")
		return false
	}
	s.state = model.JobStateRunning
	s.mx.Unlock()

	r := &run{
		cb: cb,
		record: model.JobRecord{
			ID:        generateJobID(),
			StartedAt: time.Now(),
		},
	}
	r.logger = s.logger.WithField(log.FieldJobID, r.record.ID)

	proc, err := s.launcher.Launch(ctx, r.record.ID, input)
	if err != nil {
		launchErr := &LaunchError{JobID: r.record.ID, Err: err}
		r.logger.WithError(err).Error("launch failed")
		defer s.finish(r, launchErr)
		cb.reportError(launchErr)
		return false
	}
	r.proc = proc
	r.logger.WithField("input_bytes", len(input)).Info("job started")
	cb.showBusy()

	s.mx.Lock()
	s.current = r
	r.cancel = s.scheduler.Every(s.interval, func() { s.poll(r) })
	s.mx.Unlock()
	return true
}

// poll is the periodic task of a running job
func (s *Supervisor) poll(r *run) {
	s.mx.Lock()
	if r.done || s.current != r {
		s.mx.Unlock()
		return
	}
	r.polls++
	polls := r.polls
	s.mx.Unlock()

	exited, err := r.proc.TryWait()
	if err == nil && !exited && s.timeout > 0 && time.Duration(polls)*s.interval >= s.timeout {
		if kerr := r.proc.Kill(); kerr != nil {
			r.logger.WithError(kerr).Warn("failed to kill timed out process")
		}
		err = fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
	}
	if err == nil && !exited {
		return
	}

	if !s.claim(r) {
		return
	}
	if err != nil {
		pollErr := &PollError{JobID: r.record.ID, Err: err}
		r.logger.WithError(err).Error("job failed")
		defer s.finish(r, pollErr)
		r.cb.reportError(pollErr)
		r.cb.hideBusy()
		return
	}
	defer s.finish(r, nil)
	r.cb.hideBusy()
}

// claim marks r as concluding, false if another tick got there first
func (s *Supervisor) claim(r *run) bool {
	s.mx.Lock()
	defer s.mx.Unlock()
	if r.done {
		return false
	}
	r.done = true
	return true
}

// finish stops polling, releases the process and returns to idle
func (s *Supervisor) finish(r *run, err error) {
	s.mx.Lock()
	cancel := r.cancel
	s.mx.Unlock()

	if cancel != nil {
		cancel()
	}
	if r.proc != nil {
		r.proc.Release()
	}

	s.mx.Lock()
	r.done = true
	r.record.FinishedAt = time.Now()
	if err != nil {
		r.record.Outcome = model.JobOutcomeFailed
		r.record.LastError = err.Error()
	} else {
		r.record.Outcome = model.JobOutcomeCompleted
	}
	record := r.record
	s.last = &record
	if s.current == r {
		s.current = nil
	}
	s.state = model.JobStateIdle
	s.mx.Unlock()

	r.logger.WithField("outcome", record.Outcome).Info(record.Summary())
	if s.onFinish != nil {
		s.onFinish(record)
	}
}

// generateJobID generates a unique job ID using UUID v7 so ids sort by start time
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
