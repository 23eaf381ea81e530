package domain

import (
	"fmt"
	"time"
)

// DefaultGrace is how far past its deadline a non-strict work item may run.
const DefaultGrace = 5 * 24 * time.Hour

type WorkItem struct {
	ID    string
	Title string

	// Constraints
	Deadline time.Time
	Strict   bool

	// Duration
	RequiredHours  float64
	CompletedHours float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDeadline returns the latest instant a session for this item may end.
// Strict items end by Deadline; lenient ones get the grace extension.
func (w *WorkItem) EffectiveDeadline(grace time.Duration) time.Time {
	if w.Strict {
		return w.Deadline
	}
	return w.Deadline.Add(grace)
}

// RemainingHours is the work still to be scheduled, never negative.
func (w *WorkItem) RemainingHours() float64 {
	r := w.RequiredHours - w.CompletedHours
	if r < 0 {
		return 0
	}
	return r
}

// IsRetired reports whether the item needs no further scheduling.
func (w *WorkItem) IsRetired() bool {
	return w.RequiredHours > 0 && w.CompletedHours >= w.RequiredHours
}

// ApplyProgress records completed work. Completed hours are clamped to
// RequiredHours so the item retires instead of going negative.
func (w *WorkItem) ApplyProgress(hours float64, now time.Time) error {
	if hours <= 0 {
		return fmt.Errorf("progress must be positive, got %.2fh", hours)
	}
	if w.IsRetired() {
		return fmt.Errorf("work item %s is already complete", w.ID)
	}
	w.CompletedHours += hours
	if w.CompletedHours > w.RequiredHours {
		w.CompletedHours = w.RequiredHours
	}
	w.UpdatedAt = now
	return nil
}

// Validate checks the fields the scheduler relies on.
func (w *WorkItem) Validate() error {
	switch {
	case w.ID == "":
		return fmt.Errorf("work item: id is required")
	case w.Deadline.IsZero():
		return fmt.Errorf("work item %s: deadline is required", w.ID)
	case w.RequiredHours <= 0:
		return fmt.Errorf("work item %s: required hours must be positive, got %g", w.ID, w.RequiredHours)
	case w.CompletedHours < 0:
		return fmt.Errorf("work item %s: completed hours must not be negative, got %g", w.ID, w.CompletedHours)
	case w.CompletedHours > w.RequiredHours:
		return fmt.Errorf("work item %s: completed hours (%g) exceed required hours (%g)", w.ID, w.CompletedHours, w.RequiredHours)
	}
	return nil
}

// StrictnessLabel returns "strict" or "flexible", the vocabulary used in
// snapshots and on the command line.
func (w *WorkItem) StrictnessLabel() string {
	if w.Strict {
		return StrictnessStrict
	}
	return StrictnessFlexible
}
