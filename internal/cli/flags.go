package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

var timeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// parseTimeIn accepts RFC3339, a local "YYYY-MM-DD HH:MM", or a bare date.
// A bare date is the start of that day, or its last minute when endOfDay is set.
func parseTimeIn(s string, loc *time.Location, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	day, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: use YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339", s)
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Minute), nil
	}
	return day, nil
}

// parseHours accepts decimal hours ("2.5") or a Go duration ("90m", "2h30m").
func parseHours(s string) (float64, error) {
	s = strings.TrimSpace(s)
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d, derr := time.ParseDuration(s)
		if derr != nil {
			return 0, fmt.Errorf("invalid hours %q: use a number like 2.5 or a duration like 90m", s)
		}
		h = d.Hours()
	}
	if h <= 0 {
		return 0, fmt.Errorf("hours must be positive, got %q", s)
	}
	return h, nil
}

// timeValue is a pflag.Value for instants entered on the command line.
type timeValue struct {
	t        *time.Time
	loc      *time.Location
	endOfDay bool
}

var _ pflag.Value = (*timeValue)(nil)

func newTimeValue(p *time.Time, loc *time.Location, endOfDay bool) *timeValue {
	return &timeValue{t: p, loc: loc, endOfDay: endOfDay}
}

func (v *timeValue) String() string {
	if v.t == nil || v.t.IsZero() {
		return ""
	}
	return v.t.Format("2006-01-02 15:04")
}

func (v *timeValue) Set(s string) error {
	t, err := parseTimeIn(s, v.loc, v.endOfDay)
	if err != nil {
		return err
	}
	*v.t = t
	return nil
}

func (v *timeValue) Type() string { return "time" }

type hoursValue float64

var _ pflag.Value = (*hoursValue)(nil)

func (v *hoursValue) String() string {
	if *v == 0 {
		return ""
	}
	return strconv.FormatFloat(float64(*v), 'f', -1, 64)
}

func (v *hoursValue) Set(s string) error {
	h, err := parseHours(s)
	if err != nil {
		return err
	}
	*v = hoursValue(h)
	return nil
}

func (v *hoursValue) Type() string { return "hours" }
