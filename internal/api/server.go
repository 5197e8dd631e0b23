package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/delivery-fee-report/internal/api/handlers"
	"github.com/eshaffer321/delivery-fee-report/internal/api/middleware"
	"github.com/eshaffer321/delivery-fee-report/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	OutputDir      string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	runner     handlers.ReportRunner
}

// NewServer creates a new API server.
// If runner is nil, POST /api/reports is not registered.
func NewServer(cfg Config, repo storage.Repository, runner handlers.ReportRunner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: gin.New(),
		logger: logger,
		repo:   repo,
		runner: runner,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(middleware.CORS(cfg.AllowedOrigins))
	s.router.Use(middleware.Logging(logger))
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", handlers.Health)

	api := s.router.Group("/api")
	api.GET("/health", handlers.Health)

	runs := handlers.NewRunsHandler(s.repo)
	api.GET("/runs", runs.List)
	api.GET("/runs/:id", runs.Get)

	if s.runner != nil {
		reports := handlers.NewReportsHandler(s.runner, s.config.OutputDir, s.logger)
		api.POST("/reports", reports.Create)
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		// report generation pages through the whole platform history
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
