package noop

import (
	"context"
	"log"

	"dealdesk/internal/domain"
	"dealdesk/internal/port"
)

type noopSink struct{}

// NewNoopSink creates a no-op ExtractionSink that logs released extractions.
// The real form-population collaborator lives outside this service.
func NewNoopSink() port.ExtractionSink {
	return &noopSink{}
}

func (s *noopSink) OnDataExtracted(_ context.Context, data *domain.ExtractedDealData) error {
	log.Printf("[NOOP SINK] extraction released downstream (deal_type=%q currency=%q)", data.DealType, data.Currency)
	return nil
}
