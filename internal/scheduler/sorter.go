package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// Candidate is a work item prepared for allocation.
type Candidate struct {
	Item      domain.WorkItem
	Deadline  time.Time     // effective deadline
	Remaining time.Duration // required - completed
}

// NewCandidate derives the effective deadline and remaining work of item.
func NewCandidate(item domain.WorkItem, p Policy) Candidate {
	return Candidate{
		Item:      item,
		Deadline:  item.EffectiveDeadline(p.Grace),
		Remaining: hoursToDuration(item.RemainingHours()),
	}
}

// CanonicalSort orders candidates by the deterministic priority rules:
// 1. Effective deadline: earliest first
// 2. Remaining work: larger first
// 3. Work item ID: lexical ascending
func CanonicalSort(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]

		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
		if a.Remaining != b.Remaining {
			return a.Remaining > b.Remaining
		}
		return a.Item.ID < b.Item.ID
	})
}

// hoursToDuration converts fractional hours to a Duration rounded to the second.
func hoursToDuration(h float64) time.Duration {
	return time.Duration(math.Round(h*3600)) * time.Second
}
