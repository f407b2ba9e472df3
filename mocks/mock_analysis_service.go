package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dealdesk/internal/domain"
	"dealdesk/internal/service"
)

// MockAnalysisService is a mock implementation of service.AnalysisService.
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) ProcessFiles(ctx context.Context, input *service.ProcessFilesInput) (*domain.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAnalysisService) GetResult(ctx context.Context, analysisID string) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, analysisID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) SubmitFeedback(ctx context.Context, analysisID string, payload *domain.FeedbackPayload) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, analysisID, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalysisService) Override(ctx context.Context, analysisID, reviewer string) (*domain.AnalysisRecord, error) {
	args := m.Called(ctx, analysisID, reviewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisService) Templates(ctx context.Context) (map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockAnalysisService) RawPayloadURL(ctx context.Context, analysisID string) (string, error) {
	args := m.Called(ctx, analysisID)
	return args.String(0), args.Error(1)
}

func (m *MockAnalysisService) ListRecords(ctx context.Context, offset, limit int) ([]domain.AnalysisRecord, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.AnalysisRecord), args.Int(1), args.Error(2)
}
