package scheduler

import (
	"sort"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// Day is one calendar day of the availability index: the open parts of its
// work window and how much work has been committed against its cap.
type Day struct {
	Date      time.Time // local midnight
	Window    Window
	Open      []Window
	Cap       time.Duration
	Committed time.Duration
}

// Headroom is the work that still fits under the day's soft cap.
func (d *Day) Headroom() time.Duration {
	if d.Committed >= d.Cap {
		return 0
	}
	return d.Cap - d.Committed
}

func (d *Day) OpenTotal() time.Duration {
	var total time.Duration
	for _, w := range d.Open {
		total += w.Len()
	}
	return total
}

// longestOpen returns the longest open window ending no later than limit,
// ignoring windows for which skip reports true. Ties go to the earlier window.
func (d *Day) longestOpen(limit time.Time, skip func(Window) bool) (Window, bool) {
	var best Window
	found := false
	for _, w := range d.Open {
		c := w.ClipEnd(limit)
		if c.Empty() || (skip != nil && skip(c)) {
			continue
		}
		if !found || c.Len() > best.Len() {
			best = c
			found = true
		}
	}
	return best, found
}

// openAt returns the open window starting exactly at t.
func (d *Day) openAt(t time.Time) (Window, bool) {
	for _, w := range d.Open {
		if w.Start.Equal(t) {
			return w, true
		}
	}
	return Window{}, false
}

// reserve removes w from the open set and charges it to the day's cap.
func (d *Day) reserve(w Window) {
	d.Open = subtract(d.Open, w)
	d.Committed += w.Len()
}

// Availability is the day-by-day free-time index the allocator carves from.
type Availability struct {
	Days []*Day
}

// BuildAvailability computes open windows for every calendar day from the day
// containing from through the day containing through. Windows start no earlier
// than from; every event intersecting a day's window is subtracted from it.
func BuildAvailability(events []domain.Event, from, through time.Time, p Policy) *Availability {
	a := &Availability{}
	if through.Before(from) {
		return a
	}

	sorted := make([]domain.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	last := p.dayStart(through)
	for day := p.dayStart(from); !day.After(last); day = day.AddDate(0, 0, 1) {
		window := p.Window(day)
		open := window
		if open.Start.Before(from) {
			open.Start = from
		}

		d := &Day{Date: day, Window: window, Cap: p.CapFor(day)}
		if !open.Empty() {
			d.Open = []Window{open}
		}
		for _, ev := range sorted {
			if !ev.Start.Before(window.End) {
				break
			}
			block := Window{Start: ev.Start, End: ev.End}
			if !block.Overlaps(open) {
				continue
			}
			d.Open = subtract(d.Open, block)
		}
		d.Open = coalesce(d.Open)
		a.Days = append(a.Days, d)
	}
	return a
}

// OpenOn returns the open windows for the calendar day containing t.
func (a *Availability) OpenOn(t time.Time, p Policy) []Window {
	d := a.dayOf(t, p)
	if d == nil {
		return nil
	}
	out := make([]Window, len(d.Open))
	copy(out, d.Open)
	return out
}

func (a *Availability) dayOf(t time.Time, p Policy) *Day {
	key := p.dayStart(t)
	for _, d := range a.Days {
		if d.Date.Equal(key) {
			return d
		}
	}
	return nil
}
