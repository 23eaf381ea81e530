package scheduler

import (
	"sort"
	"time"
)

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Len() time.Duration {
	if !w.End.After(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start)
}

func (w Window) Empty() bool { return w.Len() == 0 }

func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Contains reports whether o lies entirely inside w.
func (w Window) Contains(o Window) bool {
	return !o.Start.Before(w.Start) && !o.End.After(w.End)
}

// ClipEnd returns w with its end moved back to limit if limit is earlier.
func (w Window) ClipEnd(limit time.Time) Window {
	if limit.Before(w.End) {
		w.End = limit
	}
	return w
}

// subtract removes cut from every window, splitting where needed.
func subtract(ws []Window, cut Window) []Window {
	out := make([]Window, 0, len(ws)+1)
	for _, w := range ws {
		if !w.Overlaps(cut) {
			out = append(out, w)
			continue
		}
		if left := (Window{Start: w.Start, End: cut.Start}); !left.Empty() {
			out = append(out, left)
		}
		if right := (Window{Start: cut.End, End: w.End}); !right.Empty() {
			out = append(out, right)
		}
	}
	return out
}

// coalesce sorts windows and merges those that overlap or touch.
func coalesce(ws []Window) []Window {
	if len(ws) == 0 {
		return nil
	}
	sorted := make([]Window, 0, len(ws))
	for _, w := range ws {
		if !w.Empty() {
			sorted = append(sorted, w)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	var out []Window
	for _, w := range sorted {
		if n := len(out); n > 0 && !w.Start.After(out[n-1].End) {
			if w.End.After(out[n-1].End) {
				out[n-1].End = w.End
			}
			continue
		}
		out = append(out, w)
	}
	return out
}
