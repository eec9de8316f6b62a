// Package http exposes the search and sync operations over a JSON API.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DevWael/semantiq-search/internal/core/ports/driven"
	"github.com/DevWael/semantiq-search/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	searchService    driving.SearchService
	syncOrchestrator driving.SyncOrchestrator

	// Infrastructure
	authenticator driven.TokenAuthenticator
	settingsStore driven.SettingsStore
	embedder      driven.EmbeddingProvider
	vectorStore   driven.VectorStore
	taskQueue     driven.TaskQueue
	db            Pinger // PostgreSQL health check
	redisClient   Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	searchService driving.SearchService,
	syncOrchestrator driving.SyncOrchestrator,
	authenticator driven.TokenAuthenticator,
	settingsStore driven.SettingsStore,
	embedder driven.EmbeddingProvider,
	vectorStore driven.VectorStore,
	taskQueue driven.TaskQueue,
	db Pinger,
	redisClient Pinger, // can be nil
) *Server {
	s := &Server{
		router:           http.NewServeMux(),
		version:          cfg.Version,
		logger:           slog.Default().With("component", "http"),
		searchService:    searchService,
		syncOrchestrator: syncOrchestrator,
		authenticator:    authenticator,
		settingsStore:    settingsStore,
		embedder:         embedder,
		vectorStore:      vectorStore,
		taskQueue:        taskQueue,
		db:               db,
		redisClient:      redisClient,
	}

	s.setupRoutes()

	handler := NewRequestIDMiddleware().Handler(
		NewLoggingMiddleware(s.logger).Handler(
			NewRecoveryMiddleware(s.logger).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	authMiddleware := NewAuthMiddleware(s.authenticator)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Search endpoint (public)
	s.router.HandleFunc("POST /api/v1/search", s.handleSearch)

	// Bulk sync lifecycle (admin-only)
	s.router.Handle("POST /api/v1/sync/start",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSyncStart)))
	s.router.Handle("POST /api/v1/sync/batch",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSyncBatch)))
	s.router.Handle("GET /api/v1/sync/status",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSyncStatus)))
	s.router.Handle("POST /api/v1/sync/cancel",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleSyncCancel)))

	// Single item sync (admin-only)
	s.router.Handle("POST /api/v1/posts/{id}/sync",
		authMiddleware.Authenticate(http.HandlerFunc(s.handlePostSync)))
	s.router.Handle("POST /api/v1/posts/{id}/queue",
		authMiddleware.Authenticate(http.HandlerFunc(s.handlePostQueue)))

	// Settings endpoints (admin-only)
	s.router.Handle("GET /api/v1/settings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleGetSettings)))
	s.router.Handle("PUT /api/v1/settings",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateSettings)))

	// Admin diagnostics (admin-only)
	s.router.Handle("POST /api/v1/admin/embedding/test",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleTestEmbedding)))
	s.router.Handle("GET /api/v1/admin/collections",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListCollections)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
