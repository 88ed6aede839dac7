package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cadtools/internal/domain"
	"cadtools/internal/service"
)

// MockWorkspaceService is a mock implementation of service.WorkspaceService.
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Add(doc *domain.Record) (bool, error) {
	args := m.Called(doc)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceService) Load(ctx context.Context, replace bool) (*service.LoadResult, error) {
	args := m.Called(ctx, replace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoadResult), args.Error(1)
}

func (m *MockWorkspaceService) List(types []domain.DocumentType, query string) []*domain.Record {
	args := m.Called(types, query)
	return args.Get(0).([]*domain.Record)
}

func (m *MockWorkspaceService) Get(path string) (*domain.Record, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockWorkspaceService) At(index int) (*domain.Record, error) {
	args := m.Called(index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockWorkspaceService) Find(text string) (*domain.Record, error) {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Record), args.Error(1)
}

func (m *MockWorkspaceService) FileNames(search string) []string {
	args := m.Called(search)
	return args.Get(0).([]string)
}

func (m *MockWorkspaceService) Remove(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockWorkspaceService) RemoveAt(index int) error {
	args := m.Called(index)
	return args.Error(0)
}

func (m *MockWorkspaceService) Clear() {
	m.Called()
}

func (m *MockWorkspaceService) Len() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockWorkspaceService) CountSheets(ctx context.Context) (*domain.SheetSizeReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SheetSizeReport), args.Error(1)
}
