package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// Allocation is what the allocator produced for one work item.
type Allocation struct {
	Candidate Candidate
	Sessions  []domain.Session
	Missing   time.Duration
	Reason    Reason // empty when every hour was placed
	Overflow  bool   // at least one session pushed its day over the cap
}

// Allocate walks candidates in the order given and carves sessions out of
// avail, mutating it. Candidates should already be CanonicalSort-ed.
func Allocate(candidates []Candidate, avail *Availability, now time.Time, p Policy) []Allocation {
	out := make([]Allocation, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, allocateOne(c, avail, now, p))
	}
	return out
}

func allocateOne(c Candidate, avail *Availability, now time.Time, p Policy) Allocation {
	alloc := Allocation{Candidate: c, Missing: c.Remaining}
	if c.Remaining <= 0 {
		return alloc
	}
	if !c.Deadline.After(now) {
		alloc.Reason = ReasonDeadlinePassed
		return alloc
	}
	if c.Remaining < p.MinSession {
		alloc.Reason = ReasonBelowMinimumSession
		return alloc
	}

	pl := &placement{c: c, avail: avail, p: p, remaining: c.Remaining}
	pl.carve(true)
	pl.extend(true)
	// Caps give way only for the hours the capped passes left unplaced.
	if pl.remaining > 0 && p.allowsOverflow(c.Item.Strict) {
		pl.carve(false)
		pl.extend(false)
	}

	sort.Slice(pl.sessions, func(i, j int) bool { return pl.sessions[i].Start.Before(pl.sessions[j].Start) })
	alloc.Sessions = pl.sessions
	alloc.Missing = pl.remaining
	alloc.Overflow = pl.overflowed
	if pl.remaining > 0 {
		alloc.Reason = ReasonInsufficientCapacity
	}
	return alloc
}

// placement tracks one item's sessions while they are carved out of avail.
// Two sessions of the same item never touch: back to back they would form
// a single session, which extend bounds by MaxSession.
type placement struct {
	c          Candidate
	avail      *Availability
	p          Policy
	sessions   []domain.Session
	remaining  time.Duration
	overflowed bool
}

// carve places new sessions until the remainder is below MinSession or no day
// before the deadline can take another chunk. Every placement restarts the
// scan from the first day, so a day split by events can host several sessions.
func (pl *placement) carve(capped bool) {
	for pl.remaining >= pl.p.MinSession {
		if !pl.carveOnce(capped) {
			return
		}
	}
}

func (pl *placement) carveOnce(capped bool) bool {
	for _, day := range pl.avail.Days {
		if !day.Window.Start.Before(pl.c.Deadline) {
			return false
		}
		if capped && day.Headroom() <= 0 {
			continue
		}

		w, ok := day.longestOpen(pl.c.Deadline, pl.touchesOwn)
		if !ok {
			continue
		}
		headroom := w.Len()
		if capped {
			headroom = day.Headroom()
		}
		length, ok := chunkLength(pl.remaining, w.Len(), headroom, pl.p)
		if !ok {
			continue
		}

		placed := Window{Start: w.Start, End: w.Start.Add(length)}
		pl.commit(day, placed)
		pl.sessions = append(pl.sessions, domain.Session{
			WorkItemID: pl.c.Item.ID,
			Start:      placed.Start,
			End:        placed.End,
		})
		return true
	}
	return false
}

// extend lengthens existing sessions, earliest first, into the open time that
// directly follows them, up to MaxSession. When capped, only the day's
// headroom is used.
func (pl *placement) extend(capped bool) {
	sort.Slice(pl.sessions, func(i, j int) bool { return pl.sessions[i].Start.Before(pl.sessions[j].Start) })

	for i := range pl.sessions {
		if pl.remaining <= 0 {
			return
		}
		s := &pl.sessions[i]
		day := pl.avail.dayOf(s.Start, pl.p)
		if day == nil {
			continue
		}
		w, ok := day.openAt(s.End)
		if !ok {
			continue
		}
		w = w.ClipEnd(pl.c.Deadline)

		grow := min(w.Len(), pl.p.MaxSession-s.Duration(), pl.remaining)
		if capped {
			grow = min(grow, day.Headroom())
		}
		if grow <= 0 || (grow == w.Len() && pl.startsAt(w.End)) {
			continue
		}

		pl.commit(day, Window{Start: s.End, End: s.End.Add(grow)})
		s.End = s.End.Add(grow)
	}
}

func (pl *placement) commit(day *Day, w Window) {
	if day.Committed+w.Len() > day.Cap {
		pl.overflowed = true
	}
	day.reserve(w)
	pl.remaining -= w.Len()
}

func (pl *placement) touchesOwn(w Window) bool {
	for _, s := range pl.sessions {
		if s.End.Equal(w.Start) || s.Start.Equal(w.End) {
			return true
		}
	}
	return false
}

func (pl *placement) startsAt(t time.Time) bool {
	for _, s := range pl.sessions {
		if s.Start.Equal(t) {
			return true
		}
	}
	return false
}

// chunkLength picks the session length for one placement:
// min(MaxSession, remaining, free, headroom). A chunk shorter than
// MinSession is rejected, and the chunk never leaves a remainder in
// (0, MinSession), which could not be carved later.
func chunkLength(remaining, free, headroom time.Duration, p Policy) (time.Duration, bool) {
	length := min(p.MaxSession, remaining, free, headroom)
	if length < p.MinSession {
		return 0, false
	}

	if left := remaining - length; left > 0 && left < p.MinSession {
		length = remaining - p.MinSession
		if length < p.MinSession {
			return 0, false
		}
	}
	return length, true
}

func (a Allocation) describe() string {
	switch a.Reason {
	case ReasonDeadlinePassed:
		return fmt.Sprintf("effective deadline %s has already passed",
			a.Candidate.Deadline.Format(time.RFC3339))
	case ReasonBelowMinimumSession:
		return fmt.Sprintf("%s remaining is shorter than the minimum session",
			formatHours(a.Candidate.Remaining))
	case ReasonInsufficientCapacity:
		return fmt.Sprintf("%s of %s could not be placed before %s",
			formatHours(a.Missing), formatHours(a.Candidate.Remaining),
			a.Candidate.Deadline.Format(time.RFC3339))
	}
	return ""
}

func formatHours(d time.Duration) string {
	return fmt.Sprintf("%.2fh", d.Hours())
}
