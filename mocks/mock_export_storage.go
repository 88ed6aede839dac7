package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cadtools/internal/port"
)

// MockExportStorage is a mock implementation of port.ExportStorage.
type MockExportStorage struct {
	mock.Mock
}

func (m *MockExportStorage) Put(ctx context.Context, key, contentType string, body []byte) (*port.StoredObject, error) {
	args := m.Called(ctx, key, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredObject), args.Error(1)
}

func (m *MockExportStorage) PresignedURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}
