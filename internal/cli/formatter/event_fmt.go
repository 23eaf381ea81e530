package formatter

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
)

func FormatEventList(events []*domain.Event, loc *time.Location) string {
	if len(events) == 0 {
		return Dim("No events.") + "\n"
	}
	if loc == nil {
		loc = time.Local
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			TruncID(e.ID),
			e.Title,
			DateTime(e.Start.In(loc)),
			DateTime(e.End.In(loc)),
			FormatDuration(e.End.Sub(e.Start)),
		})
	}
	return RenderTable([]string{"ID", "TITLE", "START", "END", "LENGTH"}, rows)
}
