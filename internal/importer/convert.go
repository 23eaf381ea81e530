package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/google/uuid"
)

// Converted holds the domain values produced from a snapshot.
type Converted struct {
	WorkItems []*domain.WorkItem
	Events    []*domain.Event
}

// Convert transforms a validated Snapshot into domain objects ready for persistence.
// Call ValidateSnapshot first; Convert assumes the snapshot is valid.
// Entries without an id receive a fresh UUID.
func Convert(s *Snapshot, now time.Time) (*Converted, error) {
	out := &Converted{
		WorkItems: make([]*domain.WorkItem, 0, len(s.WorkItems)),
		Events:    make([]*domain.Event, 0, len(s.Events)),
	}

	for _, w := range s.WorkItems {
		deadline, err := time.Parse(time.RFC3339, w.Deadline)
		if err != nil {
			return nil, fmt.Errorf("parsing deadline of %q: %w", w.Title, err)
		}
		strict, _ := domain.ParseStrictness(strings.ToLower(w.Strictness))
		out.WorkItems = append(out.WorkItems, &domain.WorkItem{
			ID:             idOrNew(w.ID),
			Title:          strings.TrimSpace(w.Title),
			Deadline:       deadline,
			Strict:         strict,
			RequiredHours:  w.RequiredHours,
			CompletedHours: w.CompletedHours,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}

	for _, e := range s.Events {
		start, err := time.Parse(time.RFC3339, e.Start)
		if err != nil {
			return nil, fmt.Errorf("parsing start of event %q: %w", e.Title, err)
		}
		end, err := time.Parse(time.RFC3339, e.End)
		if err != nil {
			return nil, fmt.Errorf("parsing end of event %q: %w", e.Title, err)
		}
		out.Events = append(out.Events, &domain.Event{
			ID:        idOrNew(e.ID),
			Title:     e.Title,
			Start:     start,
			End:       end,
			CreatedAt: now,
		})
	}
	return out, nil
}

func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
