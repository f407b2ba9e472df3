package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/domain"
	"dealdesk/internal/engine"
	"dealdesk/internal/handler"
	"dealdesk/mocks"
)

func newAnalysisHandler() (*handler.AnalysisHandler, *mocks.MockAnalysisService) {
	anaSvc := new(mocks.MockAnalysisService)
	h := handler.NewAnalysisHandler(anaSvc)
	return h, anaSvc
}

func TestAnalysisHandler_GetByID_GateDerivedPerRead(t *testing.T) {
	h, anaSvc := newAnalysisHandler()

	// Engine says completed, but confidence is below the bar: the response
	// must carry the derived review verdict and the disagreement marker.
	result := &domain.AnalysisResult{
		AnalysisID: "an-1",
		Status:     domain.StatusCompleted,
		Confidence: 55,
	}
	anaSvc.On("GetResult", mock.Anything, "an-1").Return(result, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/an-1", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 55.0, resp.Data["overall_confidence"])
	assert.Equal(t, true, resp.Data["requires_review"])
	assert.Equal(t, true, resp.Data["signal_disagreement"])

	triggers, ok := resp.Data["review_triggers"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, triggers["low_confidence"])
	assert.Equal(t, false, triggers["engine_status"])
}

func TestAnalysisHandler_GetByID_EngineFailure(t *testing.T) {
	h, anaSvc := newAnalysisHandler()
	anaSvc.On("GetResult", mock.Anything, "an-1").
		Return(nil, engine.NewAnalysisError("fetch", http.StatusServiceUnavailable, errors.New("engine down")))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/an-1", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ENGINE_ERROR", resp.Error.Code)
}

func TestAnalysisHandler_List(t *testing.T) {
	h, anaSvc := newAnalysisHandler()
	recs := []domain.AnalysisRecord{{ID: uuid.New(), AnalysisID: "an-1"}}
	anaSvc.On("ListRecords", mock.Anything, 0, 20).Return(recs, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses", http.NoBody)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	anaSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Feedback_Success(t *testing.T) {
	h, anaSvc := newAnalysisHandler()

	updated := &domain.AnalysisResult{AnalysisID: "an-1", Status: domain.StatusCompleted, Confidence: 97}
	anaSvc.On("SubmitFeedback", mock.Anything, "an-1", mock.MatchedBy(func(p *domain.FeedbackPayload) bool {
		return p.Corrections["deal_value"] == "5000000"
	})).Return(updated, nil)

	body, _ := json.Marshal(map[string]any{
		"corrections": map[string]any{"deal_value": "5000000"},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/an-1/feedback", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.Feedback(c)

	assert.Equal(t, http.StatusOK, w.Code)
	anaSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Feedback_MalformedBody(t *testing.T) {
	h, anaSvc := newAnalysisHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/an-1/feedback", bytes.NewReader([]byte(`{`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.Feedback(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	anaSvc.AssertNotCalled(t, "SubmitFeedback", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisHandler_Override_Success(t *testing.T) {
	h, anaSvc := newAnalysisHandler()

	rec := &domain.AnalysisRecord{ID: uuid.New(), AnalysisID: "an-1", RequiresReview: false}
	anaSvc.On("Override", mock.Anything, "an-1", "analyst@firm.com").Return(rec, nil)

	body, _ := json.Marshal(map[string]any{"reviewer": "analyst@firm.com"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/an-1/override", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.Override(c)

	assert.Equal(t, http.StatusOK, w.Code)
	anaSvc.AssertExpectations(t)
}

func TestAnalysisHandler_Override_NotReviewable(t *testing.T) {
	h, anaSvc := newAnalysisHandler()
	anaSvc.On("Override", mock.Anything, "an-1", "analyst@firm.com").Return(nil, domain.ErrNotReviewable)

	body, _ := json.Marshal(map[string]any{"reviewer": "analyst@firm.com"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/an-1/override", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.Override(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAnalysisHandler_Override_MissingReviewer(t *testing.T) {
	h, anaSvc := newAnalysisHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analyses/an-1/override", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.Override(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	anaSvc.AssertNotCalled(t, "Override", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisHandler_RawURL(t *testing.T) {
	h, anaSvc := newAnalysisHandler()
	anaSvc.On("RawPayloadURL", mock.Anything, "an-1").
		Return("https://signed.example/raw/s1/an-1.json", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/an-1/raw", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.RawURL(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://signed.example/raw/s1/an-1.json", resp.Data["url"])
}

func TestAnalysisHandler_RawURL_NotArchived(t *testing.T) {
	h, anaSvc := newAnalysisHandler()
	anaSvc.On("RawPayloadURL", mock.Anything, "an-1").Return("", domain.ErrNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analyses/an-1/raw", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: "an-1"}}

	h.RawURL(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalysisHandler_Templates(t *testing.T) {
	h, anaSvc := newAnalysisHandler()
	anaSvc.On("Templates", mock.Anything).Return(map[string]any{"deal_intake": map[string]any{}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/templates", http.NoBody)

	h.Templates(c)

	assert.Equal(t, http.StatusOK, w.Code)
	anaSvc.AssertExpectations(t)
}
