// Package jobtest provides deterministic doubles for the job package: a
// scheduler driven by hand and a launcher whose processes exit on cue.
package jobtest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ytget/music-manager/internal/job"
)

// ManualScheduler runs registered tasks only when Tick is called.
type ManualScheduler struct {
	mx      sync.Mutex
	tasks   []*task
	Periods []time.Duration // periods passed to Every, in order
}

type task struct {
	fn        func()
	cancelled bool
}

var _ job.Scheduler = (*ManualScheduler)(nil)

// Every implements job.Scheduler
func (m *ManualScheduler) Every(period time.Duration, fn func()) job.CancelFunc {
	t := &task{fn: fn}
	m.mx.Lock()
	m.tasks = append(m.tasks, t)
	m.Periods = append(m.Periods, period)
	m.mx.Unlock()
	return func() {
		m.mx.Lock()
		t.cancelled = true
		m.mx.Unlock()
	}
}

// Tick runs every live task once
func (m *ManualScheduler) Tick() {
	m.mx.Lock()
	live := make([]*task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	m.mx.Unlock()

	for _, t := range live {
		t.fn()
	}
}

// TickN calls Tick n times
func (m *ManualScheduler) TickN(n int) {
	for i := 0; i < n; i++ {
		m.Tick()
	}
}

// Active returns the number of tasks not cancelled yet
func (m *ManualScheduler) Active() int {
	m.mx.Lock()
	defer m.mx.Unlock()
	n := 0
	for _, t := range m.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Process is a job.Process that exits after a number of polls or fails on one.
type Process struct {
	ExitAfter int   // TryWait reports exit on this poll, 0 means never
	FailAt    int   // TryWait fails on this poll, 0 means never
	FailErr   error // error returned at FailAt

	mx       sync.Mutex
	polls    int
	killed   bool
	released bool
}

var _ job.Process = (*Process)(nil)

// ErrStatus is the default error returned at FailAt
var ErrStatus = errors.New("status query failed")

// TryWait implements job.Process
func (p *Process) TryWait() (bool, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.polls++
	if p.FailAt > 0 && p.polls == p.FailAt {
		if p.FailErr != nil {
			return false, p.FailErr
		}
		return false, ErrStatus
	}
	if p.killed {
		return true, nil
	}
	return p.ExitAfter > 0 && p.polls >= p.ExitAfter, nil
}

// Kill implements job.Process
func (p *Process) Kill() error {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.killed = true
	return nil
}

// Release implements job.Process
func (p *Process) Release() {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.released = true
}

// Polls returns how many times TryWait was called
func (p *Process) Polls() int {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.polls
}

// Killed reports whether Kill was called
func (p *Process) Killed() bool {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.killed
}

// Released reports whether Release was called
func (p *Process) Released() bool {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.released
}

// Launcher hands out Processes built by NewProcess, or fails with Err.
type Launcher struct {
	Err        error
	NewProcess func() *Process

	mx        sync.Mutex
	inputs    [][]byte
	jobIDs    []string
	processes []*Process
}

var _ job.Launcher = (*Launcher)(nil)

// Launch implements job.Launcher
func (l *Launcher) Launch(_ context.Context, jobID string, input []byte) (job.Process, error) {
	l.mx.Lock()
	defer l.mx.Unlock()
	l.inputs = append(l.inputs, append([]byte(nil), input...))
	l.jobIDs = append(l.jobIDs, jobID)
	if l.Err != nil {
		return nil, l.Err
	}
	p := &Process{}
	if l.NewProcess != nil {
		p = l.NewProcess()
	}
	l.processes = append(l.processes, p)
	return p, nil
}

// Launches returns the number of Launch calls
func (l *Launcher) Launches() int {
	l.mx.Lock()
	defer l.mx.Unlock()
	return len(l.inputs)
}

// Input returns the payload of the i-th Launch call
func (l *Launcher) Input(i int) []byte {
	l.mx.Lock()
	defer l.mx.Unlock()
	return l.inputs[i]
}

// JobID returns the job id of the i-th Launch call
func (l *Launcher) JobID(i int) string {
	l.mx.Lock()
	defer l.mx.Unlock()
	return l.jobIDs[i]
}

// Process returns the i-th process handed out
func (l *Launcher) Process(i int) *Process {
	l.mx.Lock()
	defer l.mx.Unlock()
	return l.processes[i]
}

// Recorder collects callback invocations in order.
type Recorder struct {
	mx     sync.Mutex
	events []string
	errs   []error
}

// Callbacks returns job.Callbacks that record into r
func (r *Recorder) Callbacks() job.Callbacks {
	return job.Callbacks{
		ShowBusy:    func() { r.add("show", nil) },
		HideBusy:    func() { r.add("hide", nil) },
		ReportError: func(err error) { r.add("error", err) },
	}
}

func (r *Recorder) add(event string, err error) {
	r.mx.Lock()
	defer r.mx.Unlock()
	r.events = append(r.events, event)
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

// Events returns recorded events: "show", "hide" and "error"
func (r *Recorder) Events() []string {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]string(nil), r.events...)
}

// Errors returns the errors passed to ReportError
func (r *Recorder) Errors() []error {
	r.mx.Lock()
	defer r.mx.Unlock()
	return append([]error(nil), r.errs...)
}
