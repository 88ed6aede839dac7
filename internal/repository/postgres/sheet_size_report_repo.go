package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cadtools/internal/domain"
	"cadtools/internal/port"
)

type sheetSizeReportRow struct {
	ID            uuid.UUID `db:"id"`
	DocumentCount int       `db:"document_count"`
	TotalSheets   int       `db:"total_sheets"`
	SummaryA4     int       `db:"summary_a4"`
	Entries       []byte    `db:"entries"`
	CreatedAt     time.Time `db:"created_at"`
}

func toReportRow(r *domain.SheetSizeReport) (*sheetSizeReportRow, error) {
	entries := r.Entries
	if entries == nil {
		entries = []domain.SheetSizeEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encoding entries: %w", err)
	}
	return &sheetSizeReportRow{
		ID:            r.ID,
		DocumentCount: r.DocumentCount,
		TotalSheets:   r.TotalSheets,
		SummaryA4:     r.SummaryA4,
		Entries:       raw,
		CreatedAt:     r.CreatedAt,
	}, nil
}

func (row *sheetSizeReportRow) toDomain() (*domain.SheetSizeReport, error) {
	r := &domain.SheetSizeReport{
		ID:            row.ID,
		DocumentCount: row.DocumentCount,
		TotalSheets:   row.TotalSheets,
		SummaryA4:     row.SummaryA4,
		Entries:       []domain.SheetSizeEntry{},
		CreatedAt:     row.CreatedAt,
	}
	if len(row.Entries) > 0 {
		if err := json.Unmarshal(row.Entries, &r.Entries); err != nil {
			return nil, fmt.Errorf("decoding entries of report %s: %w", row.ID, err)
		}
	}
	return r, nil
}

type sheetSizeReportRepo struct {
	db *sqlx.DB
}

// NewSheetSizeReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewSheetSizeReportRepo(db *sqlx.DB) port.ReportRepository {
	return &sheetSizeReportRepo{db: db}
}

func (r *sheetSizeReportRepo) Create(ctx context.Context, report *domain.SheetSizeReport) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	row, err := toReportRow(report)
	if err != nil {
		return fmt.Errorf("sheetSizeReportRepo.Create: %w", err)
	}

	query := `INSERT INTO sheet_size_reports (id, document_count, total_sheets, summary_a4, entries, created_at)
		VALUES (:id, :document_count, :total_sheets, :summary_a4, :entries, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("sheetSizeReportRepo.Create: %w", err)
	}
	return nil
}

func (r *sheetSizeReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.SheetSizeReport, error) {
	var row sheetSizeReportRow
	err := r.db.GetContext(ctx, &row,
		"SELECT id, document_count, total_sheets, summary_a4, entries, created_at FROM sheet_size_reports WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("sheetSizeReportRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *sheetSizeReportRepo) List(ctx context.Context, offset, limit int) ([]domain.SheetSizeReport, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM sheet_size_reports"); err != nil {
		return nil, 0, fmt.Errorf("sheetSizeReportRepo.List count: %w", err)
	}

	var rows []sheetSizeReportRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT id, document_count, total_sheets, summary_a4, entries, created_at
		 FROM sheet_size_reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("sheetSizeReportRepo.List: %w", err)
	}

	reports := make([]domain.SheetSizeReport, 0, len(rows))
	for i := range rows {
		report, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("sheetSizeReportRepo.List: %w", err)
		}
		reports = append(reports, *report)
	}
	return reports, total, nil
}
