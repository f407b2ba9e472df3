package port

import (
	"context"

	"dealdesk/internal/domain"
)

// AnalysisEngine abstracts the external document-analysis engine. All
// implementations validate requests locally before dispatch and wrap
// transport failures; callers never see raw HTTP errors.
type AnalysisEngine interface {
	Submit(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error)
	Fetch(ctx context.Context, analysisID string) (*domain.AnalysisResult, error)
	Feedback(ctx context.Context, analysisID string, payload *domain.FeedbackPayload) (*domain.AnalysisResult, error)
	ListTemplates(ctx context.Context) (map[string]any, error)
}
