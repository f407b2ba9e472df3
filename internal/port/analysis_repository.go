package port

import (
	"context"

	"dealdesk/internal/domain"
)

// AnalysisRepository persists terminal analysis results for audit.
type AnalysisRepository interface {
	Create(ctx context.Context, rec *domain.AnalysisRecord) error
	GetByAnalysisID(ctx context.Context, analysisID string) (*domain.AnalysisRecord, error)
	List(ctx context.Context, offset, limit int) ([]domain.AnalysisRecord, int, error)
	UpdateReview(ctx context.Context, rec *domain.AnalysisRecord) error
	ReplaceResult(ctx context.Context, rec *domain.AnalysisRecord) error
}
