package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// OverflowPolicy decides which items may exceed the soft daily cap when the
// capped pass cannot place all of their hours.
type OverflowPolicy string

const (
	// OverflowStrictOnly lets hard-deadline items exceed the cap; flexible
	// items would rather slip past their grace window.
	OverflowStrictOnly OverflowPolicy = "strict_only"
	OverflowAlways     OverflowPolicy = "always"
	OverflowNever      OverflowPolicy = "never"
)

// ParseOverflowPolicy accepts the config/CLI spelling of an OverflowPolicy.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch OverflowPolicy(s) {
	case OverflowStrictOnly, OverflowAlways, OverflowNever:
		return OverflowPolicy(s), nil
	}
	return "", fmt.Errorf("unknown overflow policy %q (want strict_only, always or never)", s)
}

// Policy holds the tunables of a scheduling run. Window bounds are offsets
// from local midnight in Location.
type Policy struct {
	Location    *time.Location
	WindowStart time.Duration
	WindowEnd   time.Duration
	MinSession  time.Duration
	MaxSession  time.Duration
	WeekdayCap  time.Duration
	WeekendCap  time.Duration
	Grace       time.Duration
	Granularity time.Duration
	Overflow    OverflowPolicy
}

// DefaultPolicy returns the 12:00-18:00 window, 2-5h sessions,
// 3h weekday / 6h weekend caps and the 5 day grace for flexible items.
func DefaultPolicy() Policy {
	return Policy{
		Location:    time.UTC,
		WindowStart: 12 * time.Hour,
		WindowEnd:   18 * time.Hour,
		MinSession:  2 * time.Hour,
		MaxSession:  5 * time.Hour,
		WeekdayCap:  3 * time.Hour,
		WeekendCap:  6 * time.Hour,
		Grace:       domain.DefaultGrace,
		Granularity: 15 * time.Minute,
		Overflow:    OverflowStrictOnly,
	}
}

func (p Policy) Validate() error {
	switch {
	case p.WindowStart < 0 || p.WindowEnd > 24*time.Hour || p.WindowEnd <= p.WindowStart:
		return fmt.Errorf("policy: window %s-%s is not within one day", p.WindowStart, p.WindowEnd)
	case p.MinSession <= 0:
		return fmt.Errorf("policy: minimum session must be positive")
	case p.MaxSession < p.MinSession:
		return fmt.Errorf("policy: maximum session %s is shorter than minimum %s", p.MaxSession, p.MinSession)
	case p.WeekdayCap < 0 || p.WeekendCap < 0:
		return fmt.Errorf("policy: daily caps must not be negative")
	case p.Grace < 0:
		return fmt.Errorf("policy: grace must not be negative")
	case p.Granularity < 0:
		return fmt.Errorf("policy: granularity must not be negative")
	}
	if _, err := ParseOverflowPolicy(string(p.Overflow)); err != nil {
		return fmt.Errorf("policy: %w", err)
	}
	return nil
}

func (p Policy) loc() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// CapFor returns the soft work cap for the calendar day containing t.
func (p Policy) CapFor(t time.Time) time.Duration {
	switch t.In(p.loc()).Weekday() {
	case time.Saturday, time.Sunday:
		return p.WeekendCap
	}
	return p.WeekdayCap
}

func (p Policy) allowsOverflow(strict bool) bool {
	switch p.Overflow {
	case OverflowAlways:
		return true
	case OverflowNever:
		return false
	}
	return strict
}

// dayStart returns local midnight of the calendar day containing t.
func (p Policy) dayStart(t time.Time) time.Time {
	y, m, d := t.In(p.loc()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, p.loc())
}

// wallClock returns the instant at offset past midnight on day, using wall
// clock arithmetic so DST transitions keep the window at 12:00-18:00.
func (p Policy) wallClock(day time.Time, offset time.Duration) time.Time {
	y, m, d := day.In(p.loc()).Date()
	h := int(offset / time.Hour)
	mins := int((offset % time.Hour) / time.Minute)
	sec := int((offset % time.Minute) / time.Second)
	return time.Date(y, m, d, h, mins, sec, 0, p.loc())
}

// Window returns the work window of the day containing t.
func (p Policy) Window(t time.Time) Window {
	day := p.dayStart(t)
	return Window{Start: p.wallClock(day, p.WindowStart), End: p.wallClock(day, p.WindowEnd)}
}

// roundUp moves now forward to the next Granularity boundary.
func (p Policy) roundUp(now time.Time) time.Time {
	now = now.In(p.loc())
	if p.Granularity <= 0 {
		return now
	}
	r := now.Truncate(p.Granularity)
	if r.Before(now) {
		r = r.Add(p.Granularity)
	}
	return r
}
