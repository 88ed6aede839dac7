package service

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cadtools/internal/config"
	"cadtools/internal/datatable"
	"cadtools/internal/domain"
	"cadtools/internal/metrics"
	"cadtools/internal/port"
)

// TableOp names a row edit applied to a stored table.
type TableOp string

const (
	OpMoveRows        TableOp = "move"
	OpMoveRowsToBegin TableOp = "move_to_begin"
	OpMoveRowsToEnd   TableOp = "move_to_end"
	OpSortRows        TableOp = "sort"
	OpReverseRows     TableOp = "reverse"
	OpAddRows         TableOp = "add_rows"
	OpDeleteRows      TableOp = "delete_rows"
)

// TableEdit is one row edit. Rows are taken as absolute values.
type TableEdit struct {
	Op          TableOp `json:"op"`
	Rows        []int   `json:"rows,omitempty"`
	Offset      int     `json:"offset,omitempty"`
	Column      string  `json:"column,omitempty"`
	ColumnIndex *int    `json:"column_index,omitempty"`
	Count       int     `json:"count,omitempty"`
}

// EditResult is the table after an edit. Changed is false when the edit was a no-op.
type EditResult struct {
	Table   *datatable.Table `json:"table"`
	Changed bool             `json:"changed"`
}

// TableService edits data tables persisted through a port.TableStore.
type TableService interface {
	List(ctx context.Context) ([]string, error)
	Get(ctx context.Context, name string) (*datatable.Table, error)
	Save(ctx context.Context, t *datatable.Table) (*datatable.Table, error)
	Edit(ctx context.Context, name string, edit TableEdit) (*EditResult, error)
	ColumnValues(ctx context.Context, name, column string, removeEmpty bool) ([]string, error)
	Delete(ctx context.Context, name string) error
	Export(ctx context.Context, name string, format ExportFormat) (*ExportFile, error)
}

type tableService struct {
	mu         sync.Mutex
	store      port.TableStore
	maxAddRows int
	log        *zap.Logger
}

// NewTableService creates a TableService. Edits are serialized so that each
// load-edit-save cycle sees the previous one. An add_rows edit may add at most
// cfg.MaxAddRows rows.
func NewTableService(store port.TableStore, cfg config.TablesConfig, log *zap.Logger) TableService {
	if log == nil {
		log = zap.NewNop()
	}
	return &tableService{store: store, maxAddRows: cfg.MaxAddRows, log: log.Named("tables")}
}

func (s *tableService) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

func (s *tableService) Get(ctx context.Context, name string) (*datatable.Table, error) {
	return s.store.Load(ctx, name)
}

// Save replaces a table. Rows are normalized to the column count, with extra
// cells and blank column names turned into auto-named columns. Column names
// that differ only in case are rejected.
func (s *tableService) Save(ctx context.Context, t *datatable.Table) (*datatable.Table, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: table is required", domain.ErrInvalidTableEdit)
	}
	columns := t.Columns
	if columns == nil {
		columns = []string{}
	}
	rows := t.Rows
	if rows == nil {
		rows = [][]string{}
	}
	normalized := datatable.FromRowValues(rows, columns, t.Name)
	normalized.NameBlankColumns()
	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, normalized); err != nil {
		s.log.Error("saving table failed", zap.String("table", t.Name), zap.Error(err))
		return nil, err
	}
	return normalized, nil
}

func (s *tableService) Edit(ctx context.Context, name string, edit TableEdit) (*EditResult, error) {
	if err := s.checkEdit(edit); err != nil {
		metrics.RecordTableEdit(string(edit.Op), err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Load(ctx, name)
	if err != nil {
		metrics.RecordTableEdit(string(edit.Op), err)
		return nil, err
	}

	changed, err := apply(datatable.NewEditor(t), edit)
	if err == nil && changed {
		err = s.store.Save(ctx, t)
	}
	metrics.RecordTableEdit(string(edit.Op), err)
	if err != nil {
		return nil, err
	}

	s.log.Debug("table edited",
		zap.String("table", name),
		zap.String("op", string(edit.Op)),
		zap.Bool("changed", changed),
	)
	return &EditResult{Table: t, Changed: changed}, nil
}

func (s *tableService) checkEdit(edit TableEdit) error {
	if edit.Op != OpAddRows {
		return nil
	}
	if edit.Count < -s.maxAddRows || edit.Count > s.maxAddRows {
		return fmt.Errorf("%w: add_rows count %d exceeds %d", domain.ErrInvalidTableEdit, edit.Count, s.maxAddRows)
	}
	return nil
}

func apply(e *datatable.Editor, edit TableEdit) (bool, error) {
	switch edit.Op {
	case OpMoveRows:
		return e.MoveRows(edit.Offset, edit.Rows), nil
	case OpMoveRowsToBegin:
		return e.MoveRowsToBegin(edit.Rows), nil
	case OpMoveRowsToEnd:
		return e.MoveRowsToEnd(edit.Rows), nil
	case OpSortRows:
		if edit.ColumnIndex != nil {
			if len(e.Table().Columns) == 0 {
				return false, nil
			}
			e.SortRows(*edit.ColumnIndex)
			return true, nil
		}
		return e.SortRowsByName(edit.Column), nil
	case OpReverseRows:
		e.ReverseRows()
		return len(e.Table().Rows) > 1, nil
	case OpAddRows:
		before := len(e.Table().Rows)
		e.AddRows(edit.Count)
		return len(e.Table().Rows) != before, nil
	case OpDeleteRows:
		before := len(e.Table().Rows)
		e.DeleteRows(edit.Rows)
		return len(e.Table().Rows) != before, nil
	default:
		return false, fmt.Errorf("%w: unknown operation %q", domain.ErrInvalidTableEdit, edit.Op)
	}
}

func (s *tableService) ColumnValues(ctx context.Context, name, column string, removeEmpty bool) ([]string, error) {
	t, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return datatable.NewEditor(t).ColumnValuesByName(column, removeEmpty), nil
}

func (s *tableService) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Delete(ctx, name); err != nil {
		return err
	}
	s.log.Info("table deleted", zap.String("table", name))
	return nil
}

func (s *tableService) Export(ctx context.Context, name string, format ExportFormat) (*ExportFile, error) {
	t, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	file, err := RenderTable(t, format)
	metrics.RecordExport("table", string(format), err)
	return file, err
}
