package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

// FormatWorkItemList renders work items as a table ordered as given.
// scheduled maps item IDs to hours currently planned.
func FormatWorkItemList(items []*domain.WorkItem, scheduled map[string]float64, now time.Time, loc *time.Location) string {
	if len(items) == 0 {
		return Dim("No work items.") + "\n"
	}
	if loc == nil {
		loc = time.Local
	}

	rows := make([][]string, 0, len(items))
	for _, w := range items {
		rows = append(rows, []string{
			TruncID(w.ID),
			w.Title,
			w.Deadline.In(loc).Format("2006-01-02 15:04"),
			DeadlineStyled(w.Deadline, now),
			StrictnessBadge(w.Strict),
			RenderHoursProgress(w.CompletedHours, w.RequiredHours, 10),
			FormatHours(scheduled[w.ID]),
		})
	}
	return RenderTable(
		[]string{"ID", "TITLE", "DEADLINE", "DUE", "STRICTNESS", "PROGRESS", "PLANNED"},
		rows,
	)
}

// FormatWorkItemDetail renders one item with its planned sessions and
// progress history.
func FormatWorkItemDetail(w *domain.WorkItem, sessions []*domain.Session, logs []*domain.ProgressLog, now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(w.Title), StrictnessBadge(w.Strict))
	fmt.Fprintf(&b, "%s %s\n", Dim("id:      "), w.ID)
	fmt.Fprintf(&b, "%s %s (%s)\n", Dim("deadline:"),
		w.Deadline.In(loc).Format("2006-01-02 15:04"), DeadlineStyled(w.Deadline, now))
	fmt.Fprintf(&b, "%s %s\n", Dim("progress:"), RenderHoursProgress(w.CompletedHours, w.RequiredHours, 20))
	fmt.Fprintf(&b, "%s %s\n", Dim("remaining:"), FormatHours(w.RemainingHours()))

	b.WriteString("\n")
	b.WriteString(Header("Sessions"))
	b.WriteString("\n")
	if len(sessions) == 0 {
		b.WriteString(Dim("  none planned") + "\n")
	}
	for _, s := range sessions {
		start := s.Start.In(loc)
		fmt.Fprintf(&b, "  %s  %s  %s\n", DayLabel(start),
			StyleBlue.Render(ClockRange(start, s.End.In(loc))), FormatDuration(s.Duration()))
	}

	if len(logs) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Progress"))
		b.WriteString("\n")
		for _, l := range logs {
			line := fmt.Sprintf("  %s  %s", DateTime(l.LoggedAt.In(loc)), FormatHours(l.Hours))
			if l.Note != "" {
				line += "  " + Dim(l.Note)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
