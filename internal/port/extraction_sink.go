package port

import (
	"context"

	"dealdesk/internal/domain"
)

// ExtractionSink is the downstream form-population collaborator. It is only
// invoked for results the review gate cleared, or after an explicit human
// override.
type ExtractionSink interface {
	OnDataExtracted(ctx context.Context, data *domain.ExtractedDealData) error
}
