package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"aidetect/internal/analysis"
	"aidetect/internal/cache"
	"aidetect/internal/database"
	apperrors "aidetect/internal/errors"
	"aidetect/internal/monitoring"
	"aidetect/internal/scanner"
	"aidetect/internal/security"
)

// Config holds service configuration, built from environment and flags by
// the command layer.
type Config struct {
	Port       string
	DataDir    string
	CacheTTL   time.Duration
	ScanConfig scanner.Config
	Security   security.SecurityConfig
}

// DefaultConfig returns the service defaults.
func DefaultConfig() Config {
	return Config{
		Port:       "8080",
		DataDir:    "./data",
		CacheTTL:   15 * time.Minute,
		ScanConfig: scanner.DefaultConfig(),
		Security:   security.DefaultSecurityConfig(),
	}
}

// Server is the HTTP API: sample analysis, repository scans and scan history.
type Server struct {
	cfg      Config
	router   *gin.Engine
	analyzer *analysis.Analyzer
	scanner  *scanner.Scanner
	db       *database.DB
	repo     *database.Repository
	cache    *cache.Cache
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	security *security.SecurityMiddleware
}

// New assembles the server and its route table. The caller owns the returned
// server and must Close it.
func New(cfg Config) (*Server, error) {
	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		return nil, apperrors.NewConfigurationError("failed to initialize database", err)
	}

	metrics := monitoring.NewMetrics()
	logger := monitoring.NewLogger()
	analyzer := analysis.NewAnalyzer()

	s := &Server{
		cfg:      cfg,
		analyzer: analyzer,
		scanner:  scanner.New(cfg.ScanConfig, analyzer, logger),
		db:       db,
		repo:     database.NewRepository(db),
		cache:    cache.NewCache(cfg.CacheTTL),
		metrics:  metrics,
		logger:   logger,
		security: security.NewSecurityMiddleware(cfg.Security, metrics),
	}
	s.router = s.buildRouter()

	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()

	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))
	r.Use(apperrors.ErrorHandler())
	r.Use(apperrors.RecoveryHandler())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.Security.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", monitoring.RequestIDHeader},
		ExposeHeaders:    []string{monitoring.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(s.security.SecurityHeaders)
	r.Use(s.security.RequestTimeout)
	r.Use(s.security.ValidateContentType)
	r.Use(s.security.RateLimitByIP)

	// Analysis is deterministic, so identical bodies can share a response.
	r.Use(s.cache.Middleware(s.metrics, "/api/v1/analyze"))

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", s.handleMetrics)

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/scan", s.handleScan)
		api.GET("/scans", s.handleListScans)
		api.GET("/scans/:id", s.handleGetScan)
	}

	return r
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.SystemLogger("server_start", "listening on :"+s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return apperrors.NewInternalError("server failed", err)
	case <-ctx.Done():
	}

	s.logger.SystemLogger("server_stop", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return apperrors.NewTimeoutError("server shutdown timed out", err)
	}
	return nil
}

// Close releases server resources.
func (s *Server) Close() error {
	return s.db.Close()
}
