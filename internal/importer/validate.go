package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// ValidateSnapshot checks the snapshot for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateSnapshot(s *Snapshot) []error {
	var errs []error
	errs = append(errs, validateWorkItems(s.WorkItems)...)
	errs = append(errs, validateEvents(s.Events)...)
	return errs
}

func validateWorkItems(items []WorkItemImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, w := range items {
		prefix := fmt.Sprintf("work_items[%d]", i)

		if w.ID != "" {
			if seen[w.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, w.ID))
			}
			seen[w.ID] = true
		}
		if strings.TrimSpace(w.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if w.Deadline == "" {
			errs = append(errs, fmt.Errorf("%s.deadline is required", prefix))
		} else if _, err := time.Parse(time.RFC3339, w.Deadline); err != nil {
			errs = append(errs, fmt.Errorf("%s.deadline: invalid timestamp %q (expected RFC3339)", prefix, w.Deadline))
		}
		if w.Strictness != "" {
			if _, ok := domain.ParseStrictness(strings.ToLower(w.Strictness)); !ok {
				errs = append(errs, fmt.Errorf("%s.strictness: invalid value %q", prefix, w.Strictness))
			}
		}
		if w.RequiredHours <= 0 {
			errs = append(errs, fmt.Errorf("%s.required_hours must be > 0", prefix))
		}
		if w.CompletedHours < 0 {
			errs = append(errs, fmt.Errorf("%s.completed_hours must be >= 0", prefix))
		} else if w.RequiredHours > 0 && w.CompletedHours > w.RequiredHours {
			errs = append(errs, fmt.Errorf("%s.completed_hours (%g) exceeds required_hours (%g)", prefix, w.CompletedHours, w.RequiredHours))
		}
	}
	return errs
}

func validateEvents(events []EventImport) []error {
	var errs []error
	seen := make(map[string]bool)

	for i, e := range events {
		prefix := fmt.Sprintf("events[%d]", i)

		if e.ID != "" {
			if seen[e.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, e.ID))
			}
			seen[e.ID] = true
		}

		start, startErr := time.Parse(time.RFC3339, e.Start)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.start: invalid timestamp %q (expected RFC3339)", prefix, e.Start))
		}
		end, endErr := time.Parse(time.RFC3339, e.End)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.end: invalid timestamp %q (expected RFC3339)", prefix, e.End))
		}
		if startErr == nil && endErr == nil && !end.After(start) {
			errs = append(errs, fmt.Errorf("%s: end %q must be after start %q", prefix, e.End, e.Start))
		}
	}
	return errs
}
