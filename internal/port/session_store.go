package port

import (
	"github.com/google/uuid"

	"dealdesk/internal/domain"
)

// SessionStore owns the live working sessions. Implementations serialize all
// mutations (single-writer discipline) and hand out snapshots, never live
// references, so concurrent submitters cannot race on the file collection.
type SessionStore interface {
	Create() *domain.Session
	Get(sessionID uuid.UUID) (*domain.Session, error)
	AddFiles(sessionID uuid.UUID, files []domain.FileDescriptor) (*domain.Session, error)
	SetStatus(sessionID uuid.UUID, fileID string, status domain.AnalysisStatus) error
	RecordResult(sessionID uuid.UUID, fileID string, result *domain.AnalysisResult) error
	RecordFailure(sessionID uuid.UUID, fileID string, cause error) error
	ReplaceResult(sessionID uuid.UUID, analysisID string, result *domain.AnalysisResult) error
	FindByAnalysisID(analysisID string) (uuid.UUID, *domain.AnalysisResult, error)
	FinishProcessing(sessionID uuid.UUID) error
	Stats(sessionID uuid.UUID) (*domain.SessionStats, error)
}
