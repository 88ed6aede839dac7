package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cadtools/internal/datatable"
	"cadtools/internal/service"
)

// MockTableService is a mock implementation of service.TableService.
type MockTableService struct {
	mock.Mock
}

func (m *MockTableService) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTableService) Get(ctx context.Context, name string) (*datatable.Table, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*datatable.Table), args.Error(1)
}

func (m *MockTableService) Save(ctx context.Context, t *datatable.Table) (*datatable.Table, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*datatable.Table), args.Error(1)
}

func (m *MockTableService) Edit(ctx context.Context, name string, edit service.TableEdit) (*service.EditResult, error) {
	args := m.Called(ctx, name, edit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EditResult), args.Error(1)
}

func (m *MockTableService) ColumnValues(ctx context.Context, name, column string, removeEmpty bool) ([]string, error) {
	args := m.Called(ctx, name, column, removeEmpty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTableService) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockTableService) Export(ctx context.Context, name string, format service.ExportFormat) (*service.ExportFile, error) {
	args := m.Called(ctx, name, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}
