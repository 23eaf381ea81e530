package domain

import "time"

// Session is a scheduled block of work on one item. Sessions are regenerated
// on every scheduling run; the previous set is discarded.
type Session struct {
	ID         string
	WorkItemID string
	Start      time.Time
	End        time.Time
	CreatedAt  time.Time
}

func (s *Session) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Hours returns the session length in fractional hours.
func (s *Session) Hours() float64 {
	return s.Duration().Hours()
}

func (s *Session) Overlaps(start, end time.Time) bool {
	return s.Start.Before(end) && start.Before(s.End)
}

// ProgressLog records hours actually worked on an item.
type ProgressLog struct {
	ID         string
	WorkItemID string
	Hours      float64
	Note       string
	LoggedAt   time.Time
}
