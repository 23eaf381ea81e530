package app

import (
	"time"

	"github.com/alexanderramin/studyplan/internal/domain"
	"github.com/alexanderramin/studyplan/internal/scheduler"
)

type ScheduleRequest struct {
	Trigger domain.RescheduleTrigger
	Now     *time.Time
}

func NewScheduleRequest(trigger domain.RescheduleTrigger) ScheduleRequest {
	return ScheduleRequest{Trigger: trigger}
}

type ScheduleResponse struct {
	GeneratedAt time.Time
	Trigger     domain.RescheduleTrigger
	Sessions    []domain.Session
	Infeasible  []scheduler.Infeasibility
	Days        []scheduler.DayLoad
	// Titles maps work item IDs to titles for display.
	Titles map[string]string
}

// ScheduledHours sums the session durations per work item.
func (r *ScheduleResponse) ScheduledHours() map[string]float64 {
	out := make(map[string]float64)
	for _, s := range r.Sessions {
		out[s.WorkItemID] += s.Hours()
	}
	return out
}

type ScheduleErrorCode string

const (
	ScheduleErrInvalidInput ScheduleErrorCode = "INVALID_INPUT"
	ScheduleErrInternal     ScheduleErrorCode = "INTERNAL_ERROR"
)

type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

func (e *ScheduleError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}
