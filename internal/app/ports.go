package app

import (
	"context"

	"github.com/alexanderramin/studyplan/internal/domain"
)

type ScheduleUseCase interface {
	Reschedule(ctx context.Context, req ScheduleRequest) (*ScheduleResponse, error)
}

type LogProgressUseCase interface {
	LogProgress(ctx context.Context, log *domain.ProgressLog) (*ScheduleResponse, error)
}

// ImportResult holds the outcome of a snapshot import.
type ImportResult struct {
	WorkItemCount int
	EventCount    int
	Schedule      *ScheduleResponse
}

type ImportSnapshotUseCase interface {
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
}
