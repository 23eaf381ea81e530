package scheduler

import (
	"fmt"
	"strings"
)

// Reason classifies why a work item could not be (fully) scheduled.
type Reason string

const (
	ReasonDeadlinePassed       Reason = "DEADLINE_PASSED"
	ReasonInsufficientCapacity Reason = "INSUFFICIENT_CAPACITY"
	ReasonBelowMinimumSession  Reason = "BELOW_MINIMUM_SESSION"

	// Checker findings.
	ReasonSessionOverlap  Reason = "SESSION_OVERLAP"
	ReasonEventOverlap    Reason = "EVENT_OVERLAP"
	ReasonOutsideWindow   Reason = "OUTSIDE_WINDOW"
	ReasonBeforeNow       Reason = "BEFORE_NOW"
	ReasonAfterDeadline   Reason = "AFTER_DEADLINE"
	ReasonSessionBounds   Reason = "SESSION_BOUNDS"
	ReasonHoursMismatch   Reason = "HOURS_MISMATCH"
	ReasonUnknownWorkItem Reason = "UNKNOWN_WORK_ITEM"
)

// Infeasibility is a per-item, non-fatal scheduling failure. Sessions placed
// for the item before the failure may still be part of the result.
type Infeasibility struct {
	WorkItemID   string
	Reason       Reason
	Message      string
	MissingHours float64
}

// ValidationError rejects a whole run because the input snapshot is malformed.
// The caller must fix the data before rescheduling.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid schedule input: " + e.Problems[0].Error()
	}
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return fmt.Sprintf("invalid schedule input (%d problems): %s", len(e.Problems), strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() []error {
	return e.Problems
}
