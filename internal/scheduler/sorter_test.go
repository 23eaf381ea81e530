package scheduler

import (
	"testing"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func ids(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Item.ID
	}
	return out
}

func TestCanonicalSort_EarliestEffectiveDeadlineFirst(t *testing.T) {
	p := DefaultPolicy()
	cands := []Candidate{
		NewCandidate(domain.WorkItem{ID: "late", Deadline: at(20, 12, 0), Strict: true, RequiredHours: 4}, p),
		NewCandidate(domain.WorkItem{ID: "soon", Deadline: at(10, 12, 0), Strict: true, RequiredHours: 4}, p),
		// flexible: effective deadline is 5 days later (the 17th)
		NewCandidate(domain.WorkItem{ID: "flex", Deadline: at(12, 12, 0), RequiredHours: 4}, p),
	}
	CanonicalSort(cands)
	assert.Equal(t, []string{"soon", "flex", "late"}, ids(cands))
}

func TestCanonicalSort_LargerRemainingBreaksTie(t *testing.T) {
	p := DefaultPolicy()
	due := at(10, 12, 0)
	cands := []Candidate{
		NewCandidate(domain.WorkItem{ID: "small", Deadline: due, Strict: true, RequiredHours: 3}, p),
		NewCandidate(domain.WorkItem{ID: "big", Deadline: due, Strict: true, RequiredHours: 20}, p),
		NewCandidate(domain.WorkItem{ID: "mostly-done", Deadline: due, Strict: true, RequiredHours: 30, CompletedHours: 28}, p),
	}
	CanonicalSort(cands)
	assert.Equal(t, []string{"big", "small", "mostly-done"}, ids(cands))
}

func TestCanonicalSort_IDBreaksRemainingTie(t *testing.T) {
	p := DefaultPolicy()
	due := at(10, 12, 0)
	cands := []Candidate{
		NewCandidate(domain.WorkItem{ID: "b", Deadline: due, Strict: true, RequiredHours: 4}, p),
		NewCandidate(domain.WorkItem{ID: "a", Deadline: due, Strict: true, RequiredHours: 4}, p),
		NewCandidate(domain.WorkItem{ID: "c", Deadline: due, Strict: true, RequiredHours: 4}, p),
	}
	CanonicalSort(cands)
	assert.Equal(t, []string{"a", "b", "c"}, ids(cands))
}

func TestNewCandidate_RemainingRoundedToSecond(t *testing.T) {
	c := NewCandidate(domain.WorkItem{ID: "w", Deadline: at(10, 0, 0), RequiredHours: 2.5, CompletedHours: 0.25}, DefaultPolicy())
	assert.Equal(t, "2h15m0s", c.Remaining.String())
}
