package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dealdesk/internal/domain"
)

// MockSessionStore is a mock implementation of port.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create() *domain.Session {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Session)
}

func (m *MockSessionStore) Get(sessionID uuid.UUID) (*domain.Session, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) AddFiles(sessionID uuid.UUID, files []domain.FileDescriptor) (*domain.Session, error) {
	args := m.Called(sessionID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) SetStatus(sessionID uuid.UUID, fileID string, status domain.AnalysisStatus) error {
	args := m.Called(sessionID, fileID, status)
	return args.Error(0)
}

func (m *MockSessionStore) RecordResult(sessionID uuid.UUID, fileID string, result *domain.AnalysisResult) error {
	args := m.Called(sessionID, fileID, result)
	return args.Error(0)
}

func (m *MockSessionStore) RecordFailure(sessionID uuid.UUID, fileID string, cause error) error {
	args := m.Called(sessionID, fileID, cause)
	return args.Error(0)
}

func (m *MockSessionStore) ReplaceResult(sessionID uuid.UUID, analysisID string, result *domain.AnalysisResult) error {
	args := m.Called(sessionID, analysisID, result)
	return args.Error(0)
}

func (m *MockSessionStore) FindByAnalysisID(analysisID string) (uuid.UUID, *domain.AnalysisResult, error) {
	args := m.Called(analysisID)
	var id uuid.UUID
	if args.Get(0) != nil {
		id = args.Get(0).(uuid.UUID)
	}
	if args.Get(1) == nil {
		return id, nil, args.Error(2)
	}
	return id, args.Get(1).(*domain.AnalysisResult), args.Error(2)
}

func (m *MockSessionStore) FinishProcessing(sessionID uuid.UUID) error {
	args := m.Called(sessionID)
	return args.Error(0)
}

func (m *MockSessionStore) Stats(sessionID uuid.UUID) (*domain.SessionStats, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionStats), args.Error(1)
}
