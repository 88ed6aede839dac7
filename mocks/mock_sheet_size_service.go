package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cadtools/internal/domain"
	"cadtools/internal/service"
)

// MockSheetSizeService is a mock implementation of service.SheetSizeService.
type MockSheetSizeService struct {
	mock.Mock
}

func (m *MockSheetSizeService) Classify(height, width float64) (*domain.Sheet, error) {
	args := m.Called(height, width)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sheet), args.Error(1)
}

func (m *MockSheetSizeService) Sizes() []service.SheetFormat {
	args := m.Called()
	return args.Get(0).([]service.SheetFormat)
}

func (m *MockSheetSizeService) Count(ctx context.Context, drawings []domain.DrawingDocument) (*domain.SheetSizeReport, error) {
	args := m.Called(ctx, drawings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SheetSizeReport), args.Error(1)
}

func (m *MockSheetSizeService) GetReport(ctx context.Context, id uuid.UUID) (*domain.SheetSizeReport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SheetSizeReport), args.Error(1)
}

func (m *MockSheetSizeService) ListReports(ctx context.Context, offset, limit int) ([]domain.SheetSizeReport, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SheetSizeReport), args.Int(1), args.Error(2)
}

func (m *MockSheetSizeService) Export(ctx context.Context, id uuid.UUID, format service.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockSheetSizeService) Publish(ctx context.Context, id uuid.UUID, format service.ExportFormat) (*service.PublishedExport, error) {
	args := m.Called(ctx, id, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PublishedExport), args.Error(1)
}
