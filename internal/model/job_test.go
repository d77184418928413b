package model

import (
	"testing"
	"time"
)

func TestJobRecord_Duration(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name     string
		record   JobRecord
		expected time.Duration
	}{
		{"not started", JobRecord{}, 0},
		{"running", JobRecord{StartedAt: start}, 0},
		{"finished", JobRecord{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}, 90 * time.Second},
	}

	for _, test := range tests {
		result := test.record.Duration()
		if result != test.expected {
			t.Errorf("%s: Duration() = %v, expected %v", test.name, result, test.expected)
		}
	}
}

func TestJobRecord_Summary(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	ok := &JobRecord{
		ID:         "job-1",
		Outcome:    JobOutcomeCompleted,
		StartedAt:  start,
		FinishedAt: start.Add(3 * time.Second),
	}
	if got, want := ok.Summary(), "job-1 Completed in 3s"; got != want {
		t.Errorf("Summary() = %q, expected %q", got, want)
	}

	failed := &JobRecord{
		ID:         "job-2",
		Outcome:    JobOutcomeFailed,
		LastError:  "boom",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
	}
	if got, want := failed.Summary(), "job-2 Failed after 2s: boom"; got != want {
		t.Errorf("Summary() = %q, expected %q", got, want)
	}
}
