package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// Result is the complete replacement session set for a snapshot. Callers
// persist Sessions in place of any previous run's output.
type Result struct {
	Sessions   []domain.Session
	Infeasible []Infeasibility
	Days       []DayLoad
}

// Engine runs scheduling passes under a fixed policy. It holds no mutable
// state, so one Engine may serve concurrent calls on independent snapshots.
type Engine struct {
	policy Policy
}

// New returns an Engine for p. The policy is validated on every run.
func New(p Policy) *Engine {
	return &Engine{policy: p}
}

func (e *Engine) Policy() Policy { return e.policy }

func (e *Engine) Schedule(items []domain.WorkItem, events []domain.Event, now time.Time) (*Result, error) {
	return Schedule(items, events, now, e.policy)
}

// Schedule places sessions for every unretired work item around the events.
// Malformed input returns a *ValidationError and no result; items that cannot
// be fully placed are reported in Result.Infeasible.
func Schedule(items []domain.WorkItem, events []domain.Event, now time.Time, p Policy) (*Result, error) {
	if err := validateInput(items, events, now, p); err != nil {
		return nil, err
	}

	result := &Result{Sessions: []domain.Session{}, Infeasible: []Infeasibility{}}

	var active []domain.WorkItem
	for _, it := range items {
		if !it.IsRetired() {
			active = append(active, it)
		}
	}
	if len(active) == 0 {
		return result, nil
	}

	start := p.roundUp(now)
	candidates := make([]Candidate, 0, len(active))
	horizon := start
	for _, it := range active {
		c := NewCandidate(it, p)
		candidates = append(candidates, c)
		if c.Deadline.After(horizon) {
			horizon = c.Deadline
		}
	}
	CanonicalSort(candidates)

	avail := BuildAvailability(events, start, horizon, p)
	allocations := Allocate(candidates, avail, start, p)

	var sessions []domain.Session
	infeasible := make(map[string]Infeasibility)
	for _, a := range allocations {
		sessions = append(sessions, a.Sessions...)
		if a.Reason != "" {
			infeasible[a.Candidate.Item.ID] = Infeasibility{
				WorkItemID:   a.Candidate.Item.ID,
				Reason:       a.Reason,
				Message:      a.describe(),
				MissingHours: a.Missing.Hours(),
			}
		}
	}

	report := Check(sessions, active, events, now, p)
	drop := report.HardViolators()
	for _, v := range report.Violations {
		if _, seen := infeasible[v.WorkItemID]; seen {
			continue
		}
		inf := Infeasibility{WorkItemID: v.WorkItemID, Reason: v.Reason, Message: v.Message}
		if v.Missing > 0 {
			inf.MissingHours = v.Missing.Hours()
		}
		infeasible[v.WorkItemID] = inf
	}

	for _, s := range sessions {
		if !drop[s.WorkItemID] {
			result.Sessions = append(result.Sessions, s)
		}
	}
	sort.SliceStable(result.Sessions, func(i, j int) bool {
		a, b := result.Sessions[i], result.Sessions[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		return a.WorkItemID < b.WorkItemID
	})

	for _, inf := range infeasible {
		result.Infeasible = append(result.Infeasible, inf)
	}
	sort.Slice(result.Infeasible, func(i, j int) bool {
		return result.Infeasible[i].WorkItemID < result.Infeasible[j].WorkItemID
	})

	if len(drop) == 0 {
		result.Days = report.Days
	} else {
		result.Days = dayLoads(result.Sessions, p)
	}
	return result, nil
}

func validateInput(items []domain.WorkItem, events []domain.Event, now time.Time, p Policy) error {
	var problems []error
	if err := p.Validate(); err != nil {
		problems = append(problems, err)
	}
	if now.IsZero() {
		problems = append(problems, fmt.Errorf("now is required"))
	}

	seenItems := make(map[string]bool, len(items))
	for i := range items {
		it := items[i]
		if err := it.Validate(); err != nil {
			problems = append(problems, err)
		}
		if it.ID != "" && seenItems[it.ID] {
			problems = append(problems, fmt.Errorf("duplicate work item id %q", it.ID))
		}
		seenItems[it.ID] = true
	}

	seenEvents := make(map[string]bool, len(events))
	for i := range events {
		ev := events[i]
		if err := ev.Validate(); err != nil {
			problems = append(problems, err)
		}
		if ev.ID != "" && seenEvents[ev.ID] {
			problems = append(problems, fmt.Errorf("duplicate event id %q", ev.ID))
		}
		seenEvents[ev.ID] = true
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
