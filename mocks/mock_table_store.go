package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cadtools/internal/datatable"
)

// MockTableStore is a mock implementation of port.TableStore.
type MockTableStore struct {
	mock.Mock
}

func (m *MockTableStore) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTableStore) Load(ctx context.Context, name string) (*datatable.Table, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*datatable.Table), args.Error(1)
}

func (m *MockTableStore) Save(ctx context.Context, t *datatable.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTableStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
