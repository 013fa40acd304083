package service

import (
	"context"

	"stepping_debug/internal/models"
	"stepping_debug/internal/repository"
	"stepping_debug/internal/timeline"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password, scope string) (Grant, error)
	ParseToken(accessToken string) (Principal, error)
}

// Stepping records events reported by chunk servers.
type Stepping interface {
	Record(ctx context.Context, e models.SteppingEvent) (models.SteppingEvent, error)
	RecordBatch(ctx context.Context, events []models.SteppingEvent) ([]models.SteppingEvent, error)
}

// Timeline serves the stepping timeline: full snapshots and range-filtered rows.
type Timeline interface {
	Snapshot(ctx context.Context) (Snapshot, error)
	Rows(ctx context.Context, f RangeFilter) (TimelineResult, error)
}

// RowSource executes the stepping query. Implemented by the SQLite repository and the warehouse client.
type RowSource interface {
	SteppingRows(ctx context.Context) ([]timeline.ResultRow, error)
}

// Service aggregates the use cases consumed by the HTTP layer.
type Service struct {
	Authorization
	Stepping
	Timeline
}

// NewService wires repositories and the query backend into concrete services.
// A nil source makes the timeline read from the local stepping table.
func NewService(repos *repository.Repository, source RowSource, auth AuthConfig) *Service {
	if source == nil {
		source = repos.Stepping
	}
	return &Service{
		Authorization: NewAuthService(repos.Auth, auth),
		Stepping:      NewSteppingService(repos.Stepping),
		Timeline:      NewTimelineService(source),
	}
}
