package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineStyled returns RelativeDateFrom colored by urgency: red inside two
// days or overdue, yellow inside a week.
func DeadlineStyled(deadline, now time.Time) string {
	text := RelativeDateFrom(deadline, now)
	left := deadline.Sub(now)
	switch {
	case left < 48*time.Hour:
		return StyleRed.Render(text)
	case left < 7*24*time.Hour:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// DayLabel formats a calendar day like "Mon Mar 3".
func DayLabel(t time.Time) string {
	return t.Format("Mon Jan 2")
}

// DateTime formats an instant like "Mar 3 14:00".
func DateTime(t time.Time) string {
	return t.Format("Jan 2 15:04")
}

// ClockRange formats a same-day span like "12:00–15:00".
func ClockRange(start, end time.Time) string {
	return start.Format("15:04") + "–" + end.Format("15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(mins int) string {
	if mins <= 0 {
		return "0m"
	}
	h := mins / 60
	m := mins % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHours renders fractional hours via FormatMinutes, rounding to the minute.
func FormatHours(h float64) string {
	return FormatMinutes(int(math.Round(h * 60)))
}

// FormatDuration renders a duration via FormatMinutes.
func FormatDuration(d time.Duration) string {
	return FormatMinutes(int(d.Round(time.Minute) / time.Minute))
}
