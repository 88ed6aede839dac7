package port

import (
	"context"

	"cadtools/internal/domain"
)

// DocumentProvider enumerates the documents a CAD binding currently knows about.
// Drawings are returned as *domain.Record values carrying their sheets.
type DocumentProvider interface {
	Documents(ctx context.Context) ([]*domain.Record, error)
}
