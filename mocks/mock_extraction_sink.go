package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealdesk/internal/domain"
)

// MockExtractionSink is a mock implementation of port.ExtractionSink.
type MockExtractionSink struct {
	mock.Mock
}

func (m *MockExtractionSink) OnDataExtracted(ctx context.Context, data *domain.ExtractedDealData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
