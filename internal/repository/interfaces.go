package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/nonflow/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no run matches the requested ID
var ErrNotFound = errors.New("run not found")

// RunRepository defines the interface for recorded trajectory runs
type RunRepository interface {
	Create(ctx context.Context, run *models.ProcessRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProcessRun, error)
	ListRecent(ctx context.Context, limit int) ([]*models.ProcessRun, error)
}
