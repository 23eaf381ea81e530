package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyplan/internal/cli/formatter"
	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func studyplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// workItemInput holds the raw answers of the add form. Empty fields are
// asked for; fields already given as flags are prefilled.
type workItemInput struct {
	Title      string
	Deadline   string
	Hours      string
	Strictness string
}

func newWorkItemForm(in *workItemInput, loc *time.Location) *huh.Form {
	if in.Strictness == "" {
		in.Strictness = domain.StrictnessFlexible
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(validateRequired),
			huh.NewInput().
				Title("Deadline").
				Description("YYYY-MM-DD (end of day) or YYYY-MM-DD HH:MM").
				Value(&in.Deadline).
				Validate(validateDeadline(loc)),
			huh.NewInput().
				Title("Required hours").
				Placeholder("e.g. 6 or 90m").
				Value(&in.Hours).
				Validate(validateHours),
			huh.NewSelect[string]().
				Title("Strictness").
				Options(
					huh.NewOption("Flexible (may slip 5 days)", domain.StrictnessFlexible),
					huh.NewOption("Strict", domain.StrictnessStrict),
				).
				Value(&in.Strictness),
		),
	).WithTheme(studyplanHuhTheme()).WithShowHelp(false)
}

// toWorkItem converts validated form answers into a work item.
func (in *workItemInput) toWorkItem(loc *time.Location) (*domain.WorkItem, error) {
	deadline, err := parseTimeIn(in.Deadline, loc, true)
	if err != nil {
		return nil, err
	}
	hours, err := parseHours(in.Hours)
	if err != nil {
		return nil, err
	}
	strict, ok := domain.ParseStrictness(in.Strictness)
	if !ok {
		return nil, fmt.Errorf("strictness must be %q or %q", domain.StrictnessStrict, domain.StrictnessFlexible)
	}
	return &domain.WorkItem{
		Title:         strings.TrimSpace(in.Title),
		Deadline:      deadline,
		Strict:        strict,
		RequiredHours: hours,
	}, nil
}

func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func validateDeadline(loc *time.Location) func(string) error {
	return func(s string) error {
		if _, err := parseTimeIn(s, loc, true); err != nil {
			return fmt.Errorf("use YYYY-MM-DD or YYYY-MM-DD HH:MM")
		}
		return nil
	}
}

func validateHours(s string) error {
	if _, err := parseHours(s); err != nil {
		return fmt.Errorf("enter a positive number of hours")
	}
	return nil
}
