package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealdesk/internal/domain"
)

// MockAnalysisEngine is a mock implementation of port.AnalysisEngine.
type MockAnalysisEngine struct {
	mock.Mock
}

func (m *MockAnalysisEngine) Submit(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisEngine) Fetch(ctx context.Context, analysisID string) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisEngine) Feedback(ctx context.Context, analysisID string, payload *domain.FeedbackPayload) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, analysisID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisEngine) ListTemplates(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
