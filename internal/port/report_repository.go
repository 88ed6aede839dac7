package port

import (
	"context"

	"github.com/google/uuid"

	"cadtools/internal/domain"
)

// ReportRepository persists sheet size count snapshots.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.SheetSizeReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SheetSizeReport, error)
	List(ctx context.Context, offset, limit int) ([]domain.SheetSizeReport, int, error)
}
