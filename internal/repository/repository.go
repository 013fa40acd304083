package repository

import (
	"context"
	"database/sql"

	"stepping_debug/internal/models"
	"stepping_debug/internal/timeline"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// SteppingRepo stores stepping events and serves them grouped per location.
type SteppingRepo interface {
	Append(ctx context.Context, e models.SteppingEvent) (models.SteppingEvent, error)
	SteppingRows(ctx context.Context) ([]timeline.ResultRow, error)
}

type Repository struct {
	Stepping SteppingRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Stepping: NewSteppingSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
