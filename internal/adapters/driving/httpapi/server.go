// Package httpapi exposes the document and chat pipelines over a JSON
// REST API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docuchat-labs/docuchat/internal/core/domain"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driven"
	"github.com/docuchat-labs/docuchat/internal/core/ports/driving"
	"github.com/docuchat-labs/docuchat/internal/logger"
)

// Default configuration values.
const (
	DefaultAddr            = ":8000"
	DefaultRateLimit       = 10 // requests per second per client
	DefaultRateBurst       = 20
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds HTTP server settings.
type Config struct {
	// Addr is the listen address (default: :8000).
	Addr string

	// RateLimit is the per-client request rate per second. Zero uses
	// the default; negative disables limiting.
	RateLimit float64

	// RateBurst is the per-client burst size (default: 20).
	RateBurst int
}

// Server wires the driving services into HTTP routes.
type Server struct {
	ingest    driving.IngestService
	chat      driving.ChatService
	documents driving.DocumentService
	extractor driven.TextExtractor
	cfg       Config
	httpSrv   *http.Server
}

// NewServer creates an HTTP server over the given services.
func NewServer(
	ingest driving.IngestService,
	chat driving.ChatService,
	documents driving.DocumentService,
	extractor driven.TextExtractor,
	cfg Config,
) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = DefaultRateBurst
	}

	return &Server{
		ingest:    ingest,
		chat:      chat,
		documents: documents,
		extractor: extractor,
		cfg:       cfg,
	}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware())
	router.Use(corsMiddleware())
	if s.cfg.RateLimit > 0 {
		router.Use(rateLimitMiddleware(s.cfg.RateLimit, s.cfg.RateBurst))
	}

	router.GET("/", s.handleRoot)
	router.GET("/pdfs", s.handleListDocuments)
	router.GET("/pdf/:id", s.handleGetDocument)
	router.DELETE("/pdf/:id", s.handleDeleteDocument)
	router.POST("/upload_pdf", s.handleUploadPDF)
	router.POST("/chat", s.handleChat)

	return router
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening on %s", s.cfg.Addr)
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	return s.httpSrv.Shutdown(shutdownCtx)
}

// writeError maps domain errors onto HTTP status codes.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyDocument), errors.Is(err, domain.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNoRelevantContext):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": err.Error()})
	default:
		logger.Error("request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}
