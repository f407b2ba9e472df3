package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealdesk/internal/port"
)

// DBPinger is the slice of *sqlx.DB the readiness probe needs.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db    DBPinger
	cache port.Cache
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when the
// template cache is disabled.
func NewHealthHandler(db DBPinger, cache port.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The database is required; the template
// cache is optional, so a failed cache ping reports degraded but still ready.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheStatus})
}
