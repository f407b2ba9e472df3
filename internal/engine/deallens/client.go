// Package deallens implements port.AnalysisEngine against the DealLens
// document-analysis API.
package deallens

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dealdesk/internal/config"
	"dealdesk/internal/domain"
	"dealdesk/internal/engine"
	"dealdesk/internal/normalizer"
	"dealdesk/internal/scoring"
)

const defaultBaseURL = "https://api.deallens.io"

// Client talks to the DealLens API. All calls share a fixed timeout and no
// automatic retry; a timeout surfaces to the caller as a failed state for
// that single file.
type Client struct {
	apiKey        string
	clientID      string
	clientVersion string
	baseURL       string
	client        *http.Client
}

// NewClient creates a DealLens-backed analysis engine from an engine config.
func NewClient(cfg *config.EngineConfig) *Client {
	return newClient(cfg, cfg.BaseURL)
}

// NewClientWithBaseURL creates a client pointing at a custom API endpoint (for testing).
func NewClientWithBaseURL(cfg *config.EngineConfig, baseURL string) *Client {
	return newClient(cfg, baseURL)
}

func newClient(cfg *config.EngineConfig, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		apiKey:        cfg.APIKey,
		clientID:      cfg.ClientID,
		clientVersion: cfg.ClientVersion,
		baseURL:       baseURL,
		client:        &http.Client{Timeout: timeout},
	}
}

// Submit validates the request locally, then posts it for analysis. A request
// that fails validation never reaches the network.
func (c *Client) Submit(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, engine.NewAnalysisError("submit", 0, fmt.Errorf("marshaling request: %w", err))
	}

	return c.do(ctx, "submit", http.MethodPost, "/v1/analyze", bytes.NewReader(body))
}

// Fetch is an idempotent read of an existing analysis.
func (c *Client) Fetch(ctx context.Context, analysisID string) (*domain.AnalysisResult, error) {
	return c.do(ctx, "fetch", http.MethodGet, "/v1/analysis/"+analysisID, nil)
}

// Feedback patches user corrections onto an analysis. An empty payload is a
// client-side no-op: nothing is sent and the caller gets ErrEmptyFeedback.
func (c *Client) Feedback(ctx context.Context, analysisID string, payload *domain.FeedbackPayload) (*domain.AnalysisResult, error) {
	if payload.IsEmpty() {
		return nil, domain.ErrEmptyFeedback
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, engine.NewAnalysisError("feedback", 0, fmt.Errorf("marshaling feedback: %w", err))
	}

	return c.do(ctx, "feedback", http.MethodPatch, "/v1/analysis/"+analysisID+"/feedback", bytes.NewReader(body))
}

// ListTemplates fetches the per-document-type extraction hints. The map is
// opaque to this client.
func (c *Client) ListTemplates(ctx context.Context) (map[string]any, error) {
	respBody, err := c.call(ctx, "templates", http.MethodGet, "/v1/templates", nil)
	if err != nil {
		return nil, err
	}

	var templates map[string]any
	if err := json.Unmarshal(respBody, &templates); err != nil {
		return nil, engine.NewAnalysisError("templates", 0, fmt.Errorf("unmarshaling response: %w", err))
	}
	return templates, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader) (*domain.AnalysisResult, error) {
	respBody, err := c.call(ctx, op, method, path, body)
	if err != nil {
		return nil, err
	}
	return parseResult(op, respBody)
}

func (c *Client) call(ctx context.Context, op, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, engine.NewAnalysisError(op, 0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Client-ID", c.clientID)
	req.Header.Set("X-Client-Version", c.clientVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, engine.NewAnalysisError(op, 0, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, engine.NewAnalysisError(op, 0, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, engine.NewAnalysisError(op, resp.StatusCode,
			fmt.Errorf("engine error: %s", truncate(string(respBody), 500)))
	}

	return respBody, nil
}

// apiResult models the DealLens analysis response. extracted_data stays
// untyped on the wire; normalization happens below.
type apiResult struct {
	AnalysisID   string                    `json:"analysis_id"`
	FileID       string                    `json:"file_id"`
	Status       domain.AnalysisStatus     `json:"status"`
	Confidence   float64                   `json:"confidence"`
	ProcessingMS int64                     `json:"processing_ms"`
	Extracted    map[string]any            `json:"extracted_data"`
	Validations  []domain.ValidationResult `json:"validations"`
	Mappings     []domain.FieldMapping     `json:"mappings"`
	QualityScore float64                   `json:"quality_score"`
	Flags        []domain.AnalysisFlag     `json:"flags"`
	CreatedAt    time.Time                 `json:"created_at"`
	CompletedAt  *time.Time                `json:"completed_at"`
	ReviewedBy   string                    `json:"reviewed_by"`
	ReviewedAt   *time.Time                `json:"reviewed_at"`
}

func parseResult(op string, body []byte) (*domain.AnalysisResult, error) {
	var resp apiResult
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, engine.NewAnalysisError(op, 0, fmt.Errorf("unmarshaling response: %w", err))
	}

	if resp.AnalysisID == "" {
		return nil, engine.NewAnalysisError(op, 0, fmt.Errorf("engine response missing analysis id"))
	}

	return &domain.AnalysisResult{
		AnalysisID:   resp.AnalysisID,
		FileID:       resp.FileID,
		Status:       resp.Status,
		Confidence:   scoring.Clamp(resp.Confidence),
		ProcessingMS: resp.ProcessingMS,
		Extracted:    normalizer.Normalize(resp.Extracted),
		RawPayload:   json.RawMessage(body),
		Validations:  resp.Validations,
		Mappings:     resp.Mappings,
		QualityScore: scoring.Clamp(resp.QualityScore),
		Flags:        resp.Flags,
		CreatedAt:    resp.CreatedAt,
		CompletedAt:  resp.CompletedAt,
		ReviewedBy:   resp.ReviewedBy,
		ReviewedAt:   resp.ReviewedAt,
	}, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
