package job

// Package job implements a single-flight supervisor for one external process at a
// time. A start request launches the process through a Launcher, then a periodic
// task from a Scheduler polls it without blocking until it terminates. Callers see
// the job through three callbacks (show busy, hide busy, report error) and every
// started job ends with exactly one of:
//
//	HideBusy
//	ReportError(*PollError), HideBusy
//
// A launch failure reports a *LaunchError and never shows the busy indicator.
// Start requests made while a job runs are ignored.
