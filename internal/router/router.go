package router

import (
	"github.com/gin-gonic/gin"

	"dealdesk/internal/handler"
	"dealdesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	sessionH *handler.SessionHandler,
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Working sessions
	sessions := v1.Group("/sessions")
	sessions.POST("", sessionH.Create)
	sessions.GET("/:id", sessionH.GetByID)
	sessions.GET("/:id/stats", sessionH.Stats)
	sessions.GET("/:id/export", sessionH.Export)
	sessions.POST("/:id/files", sessionH.AddFiles)

	// Analyses
	analyses := v1.Group("/analyses")
	analyses.GET("", analysisH.List)
	analyses.GET("/:id", analysisH.GetByID)
	analyses.GET("/:id/raw", analysisH.RawURL)
	analyses.POST("/:id/feedback", analysisH.Feedback)
	analyses.POST("/:id/override", analysisH.Override)

	// Extraction hint templates
	v1.GET("/templates", analysisH.Templates)

	return r
}
