package port

import (
	"context"

	"cadtools/internal/datatable"
)

// TableStore loads and saves named data tables.
type TableStore interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*datatable.Table, error)
	Save(ctx context.Context, t *datatable.Table) error
	Delete(ctx context.Context, name string) error
}
