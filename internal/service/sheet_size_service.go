package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"cadtools/internal/domain"
	"cadtools/internal/metrics"
	"cadtools/internal/port"
	"cadtools/internal/sheetsize"
)

// SheetFormat describes one entry of the reference format table.
type SheetFormat struct {
	Size         domain.SheetSize `json:"size"`
	Height       int              `json:"height"`
	Width        int              `json:"width"`
	A4Equivalent int              `json:"a4_equivalent"`
}

// PublishedExport points at an export uploaded to object storage.
type PublishedExport struct {
	Key      string `json:"key"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// SheetSizeService classifies and counts drawing sheets and keeps a history of count reports.
type SheetSizeService interface {
	Classify(height, width float64) (*domain.Sheet, error)
	Sizes() []SheetFormat
	Count(ctx context.Context, drawings []domain.DrawingDocument) (*domain.SheetSizeReport, error)
	GetReport(ctx context.Context, id uuid.UUID) (*domain.SheetSizeReport, error)
	ListReports(ctx context.Context, offset, limit int) ([]domain.SheetSizeReport, int, error)
	Export(ctx context.Context, id uuid.UUID, format ExportFormat) (*ExportFile, error)
	Publish(ctx context.Context, id uuid.UUID, format ExportFormat) (*PublishedExport, error)
}

type sheetSizeService struct {
	reportRepo port.ReportRepository
	storage    port.ExportStorage
	counter    *sheetsize.Counter
	log        *zap.Logger
}

// NewSheetSizeService creates a SheetSizeService. storage may be nil, in which
// case Publish fails with domain.ErrStorageFailed.
func NewSheetSizeService(reportRepo port.ReportRepository, storage port.ExportStorage, log *zap.Logger) SheetSizeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &sheetSizeService{
		reportRepo: reportRepo,
		storage:    storage,
		counter:    sheetsize.NewCounter(),
		log:        log.Named("sheet_sizes"),
	}
}

func (s *sheetSizeService) Classify(height, width float64) (*domain.Sheet, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", domain.ErrInvalidDimensions, height, width)
	}
	return sheetsize.NewSheet(height, width), nil
}

func (s *sheetSizeService) Sizes() []SheetFormat {
	sizes := sheetsize.Sizes()
	out := make([]SheetFormat, len(sizes))
	for i, size := range sizes {
		out[i] = SheetFormat{
			Size:         size,
			Height:       sheetsize.Height(size),
			Width:        sheetsize.Width(size),
			A4Equivalent: sheetsize.A4Equivalent(size),
		}
	}
	return out
}

func (s *sheetSizeService) Count(ctx context.Context, drawings []domain.DrawingDocument) (*domain.SheetSizeReport, error) {
	start := time.Now()
	tally := s.counter.Count(drawings)
	report := tally.Report(uuid.New(), time.Now().UTC())
	metrics.RecordCount(report.Entries, report.SummaryA4, time.Since(start))

	if err := s.reportRepo.Create(ctx, report); err != nil {
		s.log.Error("saving report failed", zap.Stringer("report_id", report.ID), zap.Error(err))
		return nil, fmt.Errorf("saving sheet size report: %w", err)
	}

	s.log.Info("sheets counted",
		zap.Stringer("report_id", report.ID),
		zap.Int("documents", report.DocumentCount),
		zap.Int("sheets", report.TotalSheets),
		zap.Int("summary_a4", report.SummaryA4),
	)
	return report, nil
}

func (s *sheetSizeService) GetReport(ctx context.Context, id uuid.UUID) (*domain.SheetSizeReport, error) {
	return s.reportRepo.GetByID(ctx, id)
}

func (s *sheetSizeService) ListReports(ctx context.Context, offset, limit int) ([]domain.SheetSizeReport, int, error) {
	return s.reportRepo.List(ctx, offset, limit)
}

func (s *sheetSizeService) Export(ctx context.Context, id uuid.UUID, format ExportFormat) (*ExportFile, error) {
	report, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	file, err := RenderReport(report, format)
	metrics.RecordExport("report", string(format), err)
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (s *sheetSizeService) Publish(ctx context.Context, id uuid.UUID, format ExportFormat) (*PublishedExport, error) {
	if s.storage == nil {
		return nil, fmt.Errorf("%w: no object storage configured", domain.ErrStorageFailed)
	}
	file, err := s.Export(ctx, id, format)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s.%s", id, format)
	obj, err := s.storage.Put(ctx, key, file.ContentType, file.Body)
	if err != nil {
		s.log.Error("upload failed", zap.String("key", key), zap.Error(err))
		return nil, errors.Join(domain.ErrStorageFailed, err)
	}
	url, err := s.storage.PresignedURL(ctx, obj.Key)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageFailed, err)
	}

	s.log.Info("report published", zap.Stringer("report_id", id), zap.String("key", obj.Key))
	return &PublishedExport{Key: obj.Key, URL: url, Filename: file.Filename}, nil
}
