package main

import (
	"fmt"
	"log"

	"dealdesk/internal/cache"
	"dealdesk/internal/config"
	"dealdesk/internal/engine"
	"dealdesk/internal/engine/deallens"
	"dealdesk/internal/handler"
	"dealdesk/internal/port"
	"dealdesk/internal/repository/memory"
	"dealdesk/internal/repository/postgres"
	"dealdesk/internal/router"
	"dealdesk/internal/service"
	"dealdesk/internal/sink/noop"
	s3storage "dealdesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize the analysis engine client
	engine.RegisterProvider("deallens", func(c *config.EngineConfig) (port.AnalysisEngine, error) {
		return deallens.NewClient(c), nil
	})
	eng, err := engine.New(&cfg.Engine)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis engine: %w", err)
	}

	// Initialize storage and caches
	store := memory.NewSessionStore()
	analysisRepo := postgres.NewAnalysisRepo(db)

	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	var templateCache port.Cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		// Templates degrade to direct engine fetches without the cache.
		log.Printf("redis unavailable, template cache disabled: %v", err)
	} else {
		templateCache = redisCache
	}

	// Initialize services
	sessionSvc := service.NewSessionService(store)
	analysisSvc := service.NewAnalysisService(
		eng, store, analysisRepo, s3Client, templateCache, noop.NewNoopSink(),
		service.AnalysisServiceConfig{
			Concurrency:   cfg.Pool.Concurrency,
			RawBucket:     cfg.S3.Bucket,
			TemplateTTL:   cfg.Redis.TemplateTTL,
			PresignExpiry: cfg.S3.PresignExpiry,
		},
	)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc, analysisSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc)
	healthH := handler.NewHealthHandler(db, templateCache)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, sessionH, analysisH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
