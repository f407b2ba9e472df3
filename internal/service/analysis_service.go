package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"dealdesk/internal/cache"
	"dealdesk/internal/domain"
	"dealdesk/internal/port"
	"dealdesk/internal/scoring"
)

// ProcessFilesInput is the DTO for submitting a batch of files for analysis.
type ProcessFilesInput struct {
	SessionID uuid.UUID
	Files     []domain.FileDescriptor
	Category  domain.AnalysisCategory
	Priority  domain.PriorityLevel
	ClientID  string
	DealID    string
}

// AnalysisServiceConfig holds tunables for the analysis service.
type AnalysisServiceConfig struct {
	Concurrency   int
	RawBucket     string
	TemplateTTL   time.Duration
	PresignExpiry int64
}

// AnalysisService orchestrates the submit → normalize → score → gate cycle
// for batches of files, and relays feedback to the engine.
type AnalysisService interface {
	ProcessFiles(ctx context.Context, input *ProcessFilesInput) (*domain.Session, error)
	GetResult(ctx context.Context, analysisID string) (*domain.AnalysisResult, error)
	SubmitFeedback(ctx context.Context, analysisID string, payload *domain.FeedbackPayload) (*domain.AnalysisResult, error)
	Override(ctx context.Context, analysisID, reviewer string) (*domain.AnalysisRecord, error)
	Templates(ctx context.Context) (map[string]any, error)
	ListRecords(ctx context.Context, offset, limit int) ([]domain.AnalysisRecord, int, error)
	RawPayloadURL(ctx context.Context, analysisID string) (string, error)
}

type analysisService struct {
	engine  port.AnalysisEngine
	store   port.SessionStore
	repo    port.AnalysisRepository
	storage port.ObjectStorage
	cache   port.Cache
	sink    port.ExtractionSink
	cfg     AnalysisServiceConfig
}

// NewAnalysisService creates a new AnalysisService implementation. repo,
// storage, cache, and sink may be nil; the corresponding side effects are
// skipped.
func NewAnalysisService(
	eng port.AnalysisEngine,
	store port.SessionStore,
	repo port.AnalysisRepository,
	storage port.ObjectStorage,
	c port.Cache,
	sink port.ExtractionSink,
	cfg AnalysisServiceConfig,
) AnalysisService {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.TemplateTTL <= 0 {
		cfg.TemplateTTL = 10 * time.Minute
	}
	if cfg.PresignExpiry <= 0 {
		cfg.PresignExpiry = 3600
	}
	return &analysisService{
		engine:  eng,
		store:   store,
		repo:    repo,
		storage: storage,
		cache:   c,
		sink:    sink,
		cfg:     cfg,
	}
}

// ProcessFiles appends the files to the session and runs the batch through a
// bounded worker pool. Each file settles in a terminal state of its own; one
// file's failure never cancels or blocks its siblings, so the batch as a
// whole always completes.
func (s *analysisService) ProcessFiles(ctx context.Context, input *ProcessFilesInput) (*domain.Session, error) {
	if _, err := s.store.AddFiles(input.SessionID, input.Files); err != nil {
		return nil, err
	}

	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup

	for i := range input.Files {
		file := input.Files[i]

		sem <- struct{}{} // acquire
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }() // release

			s.processOne(ctx, input, file)
		}()
	}
	wg.Wait()

	if err := s.store.FinishProcessing(input.SessionID); err != nil {
		return nil, err
	}
	return s.store.Get(input.SessionID)
}

// processOne runs one file through its full cycle. All failures are captured
// against this file only.
func (s *analysisService) processOne(ctx context.Context, input *ProcessFilesInput, file domain.FileDescriptor) {
	if err := s.store.SetStatus(input.SessionID, file.ID, domain.StatusProcessing); err != nil {
		log.Printf("analysisService.processOne: marking %s processing: %v", file.ID, err)
	}

	req := &domain.AnalysisRequest{
		FileID:   file.ID,
		FileName: file.Name,
		FileType: file.Type,
		FileSize: file.Size,
		Category: input.Category,
		Priority: input.Priority,
		ClientID: input.ClientID,
		DealID:   input.DealID,
	}

	result, err := s.engine.Submit(ctx, req)
	if err != nil {
		log.Printf("analysisService.processOne: analysis of %s failed: %v", file.ID, err)
		if rerr := s.store.RecordFailure(input.SessionID, file.ID, err); rerr != nil {
			log.Printf("analysisService.processOne: recording failure for %s: %v", file.ID, rerr)
		}
		return
	}

	rawKey := s.archiveRawPayload(ctx, input.SessionID, result)

	if err := s.store.RecordResult(input.SessionID, file.ID, result); err != nil {
		log.Printf("analysisService.processOne: recording result for %s: %v", file.ID, err)
		return
	}

	s.persistRecord(ctx, input, file, result, rawKey)

	// Gate re-evaluated here on fresh data; the sink only ever sees
	// extractions a human does not need to approve first.
	if !scoring.RequiresReview(result) {
		s.notifySink(ctx, result)
	}
}

// archiveRawPayload stores the engine's raw payload for audit. Archival is
// best-effort: a storage failure is logged and the file continues.
func (s *analysisService) archiveRawPayload(ctx context.Context, sessionID uuid.UUID, result *domain.AnalysisResult) string {
	if s.storage == nil || len(result.RawPayload) == 0 {
		return ""
	}
	key := fmt.Sprintf("raw/%s/%s.json", sessionID, result.AnalysisID)
	err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.RawBucket,
		Key:         key,
		Body:        bytes.NewReader(result.RawPayload),
		ContentType: "application/json",
	})
	if err != nil {
		log.Printf("analysisService.archiveRawPayload: archiving %s: %v", result.AnalysisID, err)
		return ""
	}
	return key
}

// persistRecord writes the terminal audit row. Failures are logged but never
// block the batch.
func (s *analysisService) persistRecord(ctx context.Context, input *ProcessFilesInput, file domain.FileDescriptor, result *domain.AnalysisResult, rawKey string) {
	if s.repo == nil {
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("analysisService.persistRecord: marshaling result %s: %v", result.AnalysisID, err)
		return
	}
	rec := &domain.AnalysisRecord{
		ID:             uuid.New(),
		AnalysisID:     result.AnalysisID,
		SessionID:      input.SessionID,
		FileID:         file.ID,
		FileName:       file.Name,
		Category:       input.Category,
		Status:         result.Status,
		Confidence:     scoring.OverallConfidence(result),
		QualityScore:   result.QualityScore,
		RequiresReview: scoring.RequiresReview(result),
		Result:         resultJSON,
		RawKey:         rawKey,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		log.Printf("analysisService.persistRecord: persisting %s: %v", result.AnalysisID, err)
	}
}

func (s *analysisService) notifySink(ctx context.Context, result *domain.AnalysisResult) {
	if s.sink == nil || result.Extracted == nil {
		return
	}
	if err := s.sink.OnDataExtracted(ctx, result.Extracted); err != nil {
		log.Printf("analysisService.notifySink: form population for %s: %v", result.AnalysisID, err)
	}
}

// GetResult is an idempotent read against the engine. It does not touch the
// local session cache; only feedback replaces cached results.
func (s *analysisService) GetResult(ctx context.Context, analysisID string) (*domain.AnalysisResult, error) {
	return s.engine.Fetch(ctx, analysisID)
}

// SubmitFeedback forwards a non-empty payload to the engine and replaces the
// locally cached result with whatever the engine returns. Post-feedback the
// engine is the source of truth; there is no local merge, so stale fields
// cannot be silently reintroduced. An empty payload is a local no-op and
// performs no network call.
func (s *analysisService) SubmitFeedback(ctx context.Context, analysisID string, payload *domain.FeedbackPayload) (*domain.AnalysisResult, error) {
	if payload.IsEmpty() {
		_, cached, err := s.store.FindByAnalysisID(analysisID)
		if err != nil {
			return nil, err
		}
		return cached, nil
	}

	result, err := s.engine.Feedback(ctx, analysisID, payload)
	if err != nil {
		log.Printf("analysisService.SubmitFeedback: feedback for %s failed: %v", analysisID, err)
		return nil, err
	}

	sessionID, _, err := s.store.FindByAnalysisID(analysisID)
	if err != nil {
		// The session may have been abandoned; the engine still accepted
		// the feedback, so surface the fresh result anyway.
		log.Printf("analysisService.SubmitFeedback: no cached result for %s: %v", analysisID, err)
	} else if err := s.store.ReplaceResult(sessionID, analysisID, result); err != nil {
		log.Printf("analysisService.SubmitFeedback: replacing cached result for %s: %v", analysisID, err)
	}

	s.replaceRecord(ctx, result)
	return result, nil
}

// replaceRecord mirrors the post-feedback result into the audit row.
func (s *analysisService) replaceRecord(ctx context.Context, result *domain.AnalysisResult) {
	if s.repo == nil {
		return
	}
	rec, err := s.repo.GetByAnalysisID(ctx, result.AnalysisID)
	if err != nil {
		log.Printf("analysisService.replaceRecord: loading record %s: %v", result.AnalysisID, err)
		return
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		log.Printf("analysisService.replaceRecord: marshaling result %s: %v", result.AnalysisID, err)
		return
	}
	rec.Status = result.Status
	rec.Confidence = scoring.OverallConfidence(result)
	rec.QualityScore = result.QualityScore
	rec.RequiresReview = scoring.RequiresReview(result)
	rec.Result = resultJSON
	if result.ReviewedBy != "" {
		rec.ReviewedBy = &result.ReviewedBy
		rec.ReviewedAt = result.ReviewedAt
	}
	if err := s.repo.ReplaceResult(ctx, rec); err != nil {
		log.Printf("analysisService.replaceRecord: updating record %s: %v", result.AnalysisID, err)
	}
}

// Override marks a gated analysis as approved by a human reviewer and then
// releases the extraction downstream. This is the explicit override path for
// results the gate held back.
func (s *analysisService) Override(ctx context.Context, analysisID, reviewer string) (*domain.AnalysisRecord, error) {
	if s.repo == nil {
		return nil, domain.ErrAnalysisNotFound
	}
	rec, err := s.repo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if !rec.RequiresReview {
		return nil, domain.ErrNotReviewable
	}

	now := time.Now().UTC()
	rec.RequiresReview = false
	rec.ReviewedBy = &reviewer
	rec.ReviewedAt = &now
	if err := s.repo.UpdateReview(ctx, rec); err != nil {
		return nil, err
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(rec.Result, &result); err != nil {
		log.Printf("analysisService.Override: unmarshaling stored result %s: %v", analysisID, err)
		return rec, nil
	}
	s.notifySink(ctx, &result)
	return rec, nil
}

// Templates returns the engine's extraction hint templates, served from
// cache when fresh. Cache errors degrade to a direct engine fetch.
func (s *analysisService) Templates(ctx context.Context) (map[string]any, error) {
	if s.cache != nil {
		if b, ok, err := s.cache.Get(ctx, cache.TemplateKey); err != nil {
			log.Printf("analysisService.Templates: cache get: %v", err)
		} else if ok {
			var templates map[string]any
			if err := json.Unmarshal(b, &templates); err == nil {
				return templates, nil
			}
			log.Printf("analysisService.Templates: corrupt cache entry, refetching")
		}
	}

	templates, err := s.engine.ListTemplates(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if b, err := json.Marshal(templates); err == nil {
			if err := s.cache.Set(ctx, cache.TemplateKey, b, s.cfg.TemplateTTL); err != nil {
				log.Printf("analysisService.Templates: cache set: %v", err)
			}
		}
	}
	return templates, nil
}

// RawPayloadURL returns a presigned link to the archived raw engine payload
// for reviewers. Records written before archiving succeeded have no raw key
// and surface as not found.
func (s *analysisService) RawPayloadURL(ctx context.Context, analysisID string) (string, error) {
	if s.repo == nil || s.storage == nil {
		return "", domain.ErrNotFound
	}
	rec, err := s.repo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return "", err
	}
	if rec.RawKey == "" {
		return "", fmt.Errorf("%w: no raw payload archived for %s", domain.ErrNotFound, analysisID)
	}
	return s.storage.GetPresignedURL(ctx, s.cfg.RawBucket, rec.RawKey, s.cfg.PresignExpiry)
}

func (s *analysisService) ListRecords(ctx context.Context, offset, limit int) ([]domain.AnalysisRecord, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}
