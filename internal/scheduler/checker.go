package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// tolerance absorbs the second-level rounding of hour conversions.
const tolerance = time.Second

// Violation is a checker finding against one work item.
type Violation struct {
	WorkItemID string
	Reason     Reason
	Message    string
	// Hard violations break a scheduling invariant; the item's sessions must
	// not be returned. Soft ones (missing hours) only report.
	Hard    bool
	Missing time.Duration
}

// DayLoad is the informational per-day cap report.
type DayLoad struct {
	Date    time.Time
	Worked  time.Duration
	Cap     time.Duration
	OverCap bool
}

// Report is the checker's verdict over a session set.
type Report struct {
	Violations []Violation
	Days       []DayLoad
}

// HardViolators returns the IDs of items with at least one hard violation.
func (r Report) HardViolators() map[string]bool {
	out := make(map[string]bool)
	for _, v := range r.Violations {
		if v.Hard {
			out[v.WorkItemID] = true
		}
	}
	return out
}

// Check validates sessions against the work items and events they were
// planned for. It never rejects the run: findings are per item.
func Check(sessions []domain.Session, items []domain.WorkItem, events []domain.Event, now time.Time, p Policy) Report {
	var r Report
	byID := make(map[string]domain.WorkItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	sorted := make([]domain.Session, len(sessions))
	copy(sorted, sessions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	r.Violations = append(r.Violations, checkSessionOverlap(sorted)...)
	r.Violations = append(r.Violations, checkEventOverlap(sorted, events)...)

	perItem := make(map[string][]domain.Session)
	for _, s := range sorted {
		item, ok := byID[s.WorkItemID]
		if !ok {
			r.Violations = append(r.Violations, Violation{
				WorkItemID: s.WorkItemID, Reason: ReasonUnknownWorkItem, Hard: true,
				Message: "session references a work item that is not in the snapshot",
			})
			continue
		}
		perItem[s.WorkItemID] = append(perItem[s.WorkItemID], s)
		r.Violations = append(r.Violations, checkPlacement(s, item, now, p)...)
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		item := byID[id]
		if item.IsRetired() {
			continue
		}
		r.Violations = append(r.Violations, checkHours(item, perItem[id], p)...)
	}

	r.Days = dayLoads(sorted, p)
	return r
}

func checkSessionOverlap(sorted []domain.Session) []Violation {
	var out []Violation
	for i := range sorted {
		for j := i + 1; j < len(sorted) && sorted[j].Start.Before(sorted[i].End); j++ {
			a, b := sorted[i], sorted[j]
			msg := fmt.Sprintf("session %s-%s overlaps a session of %s",
				a.Start.Format(time.RFC3339), a.End.Format(time.RFC3339), b.WorkItemID)
			out = append(out,
				Violation{WorkItemID: a.WorkItemID, Reason: ReasonSessionOverlap, Message: msg, Hard: true},
				Violation{WorkItemID: b.WorkItemID, Reason: ReasonSessionOverlap, Message: msg, Hard: true},
			)
		}
	}
	return out
}

func checkEventOverlap(sorted []domain.Session, events []domain.Event) []Violation {
	var out []Violation
	for _, s := range sorted {
		for _, ev := range events {
			if ev.Overlaps(s.Start, s.End) {
				out = append(out, Violation{
					WorkItemID: s.WorkItemID, Reason: ReasonEventOverlap, Hard: true,
					Message: fmt.Sprintf("session at %s overlaps event %s", s.Start.Format(time.RFC3339), ev.ID),
				})
			}
		}
	}
	return out
}

func checkPlacement(s domain.Session, item domain.WorkItem, now time.Time, p Policy) []Violation {
	var out []Violation
	at := s.Start.Format(time.RFC3339)

	if s.Start.Before(now) {
		out = append(out, Violation{
			WorkItemID: item.ID, Reason: ReasonBeforeNow, Hard: true,
			Message: fmt.Sprintf("session at %s starts before now", at),
		})
	}
	if !p.Window(s.Start).Contains(Window{Start: s.Start, End: s.End}) {
		out = append(out, Violation{
			WorkItemID: item.ID, Reason: ReasonOutsideWindow, Hard: true,
			Message: fmt.Sprintf("session at %s is outside the daily work window", at),
		})
	}
	if deadline := item.EffectiveDeadline(p.Grace); s.End.After(deadline) {
		out = append(out, Violation{
			WorkItemID: item.ID, Reason: ReasonAfterDeadline, Hard: true,
			Message: fmt.Sprintf("session at %s ends after effective deadline %s", at, deadline.Format(time.RFC3339)),
		})
	}
	return out
}

func checkHours(item domain.WorkItem, sessions []domain.Session, p Policy) []Violation {
	var out []Violation
	required := hoursToDuration(item.RemainingHours())

	var total time.Duration
	for _, s := range sessions {
		total += s.Duration()
		d := s.Duration()
		if d < p.MinSession-tolerance || d > p.MaxSession+tolerance {
			out = append(out, Violation{
				WorkItemID: item.ID, Reason: ReasonSessionBounds, Hard: true,
				Message: fmt.Sprintf("session at %s lasts %s, outside [%s, %s]",
					s.Start.Format(time.RFC3339), d, p.MinSession, p.MaxSession),
			})
		}
	}

	slack := tolerance * time.Duration(len(sessions)+1)
	switch {
	case total > required+slack:
		out = append(out, Violation{
			WorkItemID: item.ID, Reason: ReasonHoursMismatch, Hard: true,
			Message: fmt.Sprintf("scheduled %s exceeds remaining %s", formatHours(total), formatHours(required)),
		})
	case total < required-slack:
		out = append(out, Violation{
			WorkItemID: item.ID, Reason: ReasonInsufficientCapacity, Missing: required - total,
			Message: fmt.Sprintf("only %s of %s scheduled before %s", formatHours(total), formatHours(required),
				item.EffectiveDeadline(p.Grace).Format(time.RFC3339)),
		})
	}
	return out
}

func dayLoads(sorted []domain.Session, p Policy) []DayLoad {
	var out []DayLoad
	for _, s := range sorted {
		date := p.dayStart(s.Start)
		if n := len(out); n > 0 && out[n-1].Date.Equal(date) {
			out[n-1].Worked += s.Duration()
			out[n-1].OverCap = out[n-1].Worked > out[n-1].Cap+tolerance
			continue
		}
		cp := p.CapFor(date)
		out = append(out, DayLoad{Date: date, Worked: s.Duration(), Cap: cp, OverCap: s.Duration() > cp+tolerance})
	}
	return out
}
