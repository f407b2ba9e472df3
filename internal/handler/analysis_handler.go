package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dealdesk/internal/domain"
	"dealdesk/internal/scoring"
	"dealdesk/internal/service"
)

// AnalysisHandler handles analysis result, feedback, and template endpoints.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// analysisView decorates a result with the derived review decision. The gate
// is re-evaluated per read, never served from a cached verdict.
type analysisView struct {
	*domain.AnalysisResult
	OverallConfidence float64                `json:"overall_confidence"`
	RequiresReview    bool                   `json:"requires_review"`
	ReviewTriggers    scoring.ReviewTriggers `json:"review_triggers"`
	SignalDisagrees   bool                   `json:"signal_disagreement"`
}

func newAnalysisView(result *domain.AnalysisResult) analysisView {
	triggers := scoring.Evaluate(result)
	return analysisView{
		AnalysisResult:    result,
		OverallConfidence: scoring.OverallConfidence(result),
		RequiresReview:    triggers.Any(),
		ReviewTriggers:    triggers,
		SignalDisagrees:   triggers.Disagreement(),
	}
}

// GetByID handles GET /api/v1/analyses/:id
func (h *AnalysisHandler) GetByID(c *gin.Context) {
	result, err := h.analysisService.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, newAnalysisView(result))
}

// List handles GET /api/v1/analyses
func (h *AnalysisHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	recs, total, err := h.analysisService.ListRecords(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Feedback handles POST /api/v1/analyses/:id/feedback
func (h *AnalysisHandler) Feedback(c *gin.Context) {
	var payload domain.FeedbackPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "malformed feedback payload")
		return
	}

	result, err := h.analysisService.SubmitFeedback(c.Request.Context(), c.Param("id"), &payload)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, newAnalysisView(result))
}

// Override handles POST /api/v1/analyses/:id/override
func (h *AnalysisHandler) Override(c *gin.Context) {
	var req struct {
		Reviewer string `json:"reviewer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "reviewer is required")
		return
	}

	rec, err := h.analysisService.Override(c.Request.Context(), c.Param("id"), req.Reviewer)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rec)
}

// RawURL handles GET /api/v1/analyses/:id/raw. It returns a presigned link
// to the archived raw engine payload rather than streaming the object.
func (h *AnalysisHandler) RawURL(c *gin.Context) {
	url, err := h.analysisService.RawPayloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

// Templates handles GET /api/v1/templates
func (h *AnalysisHandler) Templates(c *gin.Context) {
	templates, err := h.analysisService.Templates(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, templates)
}
