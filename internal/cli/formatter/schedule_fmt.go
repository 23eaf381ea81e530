package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/app"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/scheduler"
)

// FormatSchedule renders a reschedule result: sessions grouped by local day
// with that day's load against its cap, followed by any infeasible items.
func FormatSchedule(resp *app.ScheduleResponse, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder

	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("generated %s  trigger %s",
		resp.GeneratedAt.In(loc).Format("2006-01-02 15:04"), resp.Trigger)))
	b.WriteString("\n\n")

	if len(resp.Sessions) == 0 {
		b.WriteString(Dim("  Nothing to schedule."))
		b.WriteString("\n")
	} else {
		loads := make(map[string]scheduler.DayLoad, len(resp.Days))
		for _, d := range resp.Days {
			loads[dayKey(d.Date.In(loc))] = d
		}
		sessions := make([]*domain.Session, len(resp.Sessions))
		for i := range resp.Sessions {
			sessions[i] = &resp.Sessions[i]
		}
		writeDays(&b, sessions, resp.Titles, loc, loads)
	}

	if len(resp.Infeasible) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatInfeasible(resp.Infeasible, resp.Titles))
	}

	total := 0.0
	for _, s := range resp.Sessions {
		total += s.Hours()
	}
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d sessions, %s planned, %d infeasible",
		len(resp.Sessions), FormatHours(total), len(resp.Infeasible))))
	b.WriteString("\n")
	return b.String()
}

// FormatInfeasible lists work items the scheduler could not fully place.
func FormatInfeasible(items []scheduler.Infeasibility, titles map[string]string) string {
	var b strings.Builder
	b.WriteString(Header("Infeasible"))
	b.WriteString("\n")
	for _, inf := range items {
		title := titles[inf.WorkItemID]
		if title == "" {
			title = inf.WorkItemID
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n",
			ReasonStyle(inf.Reason).Render("✖ "+string(inf.Reason)),
			Bold(title),
			TruncID(inf.WorkItemID)))
		if inf.Message != "" {
			b.WriteString("    " + Dim(inf.Message) + "\n")
		}
		if inf.MissingHours > 0 {
			b.WriteString("    " + StyleYellow.Render(FormatHours(inf.MissingHours)+" unplaced") + "\n")
		}
	}
	return b.String()
}

// FormatPlan renders persisted sessions for the days in [from, to). Days
// without sessions are listed as free so gaps are visible.
func FormatPlan(sessions []*domain.Session, titles map[string]string, from, to time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	var b strings.Builder
	b.WriteString(Header("Plan"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s to %s", DayLabel(from.In(loc)), DayLabel(to.In(loc).Add(-time.Nanosecond)))))
	b.WriteString("\n\n")

	byDay := groupByDay(sessions, loc)
	for day := from.In(loc); day.Before(to); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		daySessions := byDay[key]
		if len(daySessions) == 0 {
			b.WriteString(fmt.Sprintf("%s  %s\n", Bold(DayLabel(day)), Dim("free")))
			continue
		}
		writeDays(&b, daySessions, titles, loc, nil)
	}
	return b.String()
}

func writeDays(b *strings.Builder, sessions []*domain.Session, titles map[string]string, loc *time.Location, loads map[string]scheduler.DayLoad) {
	byDay := groupByDay(sessions, loc)
	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		day := byDay[key]
		start := day[0].Start.In(loc)

		var worked time.Duration
		for _, s := range day {
			worked += s.Duration()
		}
		line := fmt.Sprintf("%s  %s", Bold(DayLabel(start)), Dim(FormatDuration(worked)))
		if load, ok := loads[key]; ok {
			line = fmt.Sprintf("%s  %s", Bold(DayLabel(start)), dayLoadText(load))
		}
		b.WriteString(line + "\n")

		for _, s := range day {
			title := titles[s.WorkItemID]
			if title == "" {
				title = s.WorkItemID
			}
			b.WriteString(fmt.Sprintf("  %s  %-7s %s\n",
				StyleBlue.Render(ClockRange(s.Start.In(loc), s.End.In(loc))),
				FormatDuration(s.Duration()),
				title))
		}
	}
}

func dayLoadText(d scheduler.DayLoad) string {
	text := fmt.Sprintf("%s / %s", FormatDuration(d.Worked), FormatDuration(d.Cap))
	if d.OverCap {
		return StyleRed.Render(text + " over cap")
	}
	return Dim(text)
}

func groupByDay(sessions []*domain.Session, loc *time.Location) map[string][]*domain.Session {
	out := make(map[string][]*domain.Session)
	for _, s := range sessions {
		k := dayKey(s.Start.In(loc))
		out[k] = append(out[k], s)
	}
	for _, day := range out {
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].Start.Before(day[j].Start)
		})
	}
	return out
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
