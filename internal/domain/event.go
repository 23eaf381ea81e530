package domain

import (
	"fmt"
	"time"
)

// Event is an immovable block of time. The scheduler never moves or splits it.
type Event struct {
	ID        string
	Title     string
	Start     time.Time
	End       time.Time
	CreatedAt time.Time
}

func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event: id is required")
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("event %s: start and end are required", e.ID)
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("event %s: end %s must be after start %s",
			e.ID, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	return nil
}

// Overlaps reports whether the half-open intervals [e.Start, e.End) and
// [start, end) intersect.
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.Start.Before(end) && start.Before(e.End)
}
