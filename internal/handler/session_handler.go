package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"dealdesk/internal/domain"
	"dealdesk/internal/export"
	"dealdesk/internal/service"
)

// SessionHandler handles working session endpoints.
type SessionHandler struct {
	sessionService  service.SessionService
	analysisService service.AnalysisService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService, analysisService service.AnalysisService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, analysisService: analysisService}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.sessionService.Create(c.Request.Context())
	RespondCreated(c, sess)
}

// GetByID handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetByID(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	sess, err := h.sessionService.Get(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Stats handles GET /api/v1/sessions/:id/stats
func (h *SessionHandler) Stats(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	stats, err := h.sessionService.Stats(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}

// AddFiles handles POST /api/v1/sessions/:id/files. The batch is processed
// before the response is written; every file ends in a terminal state and
// the settled session is returned.
func (h *SessionHandler) AddFiles(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	var req struct {
		Files    []domain.FileDescriptor `json:"files" binding:"required,min=1"`
		Category domain.AnalysisCategory `json:"category" binding:"required"`
		Priority domain.PriorityLevel    `json:"priority"`
		ClientID string                  `json:"client_id"`
		DealID   string                  `json:"deal_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "files and category are required")
		return
	}
	if !domain.ValidCategories[req.Category] {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Sprintf("unknown analysis category %q", req.Category))
		return
	}
	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}

	sess, err := h.analysisService.ProcessFiles(c.Request.Context(), &service.ProcessFilesInput{
		SessionID: sessionID,
		Files:     req.Files,
		Category:  req.Category,
		Priority:  req.Priority,
		ClientID:  req.ClientID,
		DealID:    req.DealID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, sess)
}

// Export handles GET /api/v1/sessions/:id/export
func (h *SessionHandler) Export(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid session ID")
		return
	}

	sess, err := h.sessionService.Get(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="session-%s.xlsx"`, sessionID))
	if err := export.WriteSession(c.Writer, sess); err != nil {
		HandleError(c, err)
	}
}
