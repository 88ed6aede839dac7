package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cadtools/internal/domain"
)

// MockDocumentProvider is a mock implementation of port.DocumentProvider.
type MockDocumentProvider struct {
	mock.Mock
}

func (m *MockDocumentProvider) Documents(ctx context.Context) ([]*domain.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Record), args.Error(1)
}
