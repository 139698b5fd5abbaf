// Package gin provides the web UI for carving pages interactively.
// It serves a single form page: submitting a URL fetches the page,
// carves it into blocks, and renders the blocks alongside the full
// escaped source.
package gin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mabho/pagecarve/carve"
)

// Config holds HTTP server settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Debug enables gin's debug mode and verbose routing output.
	Debug bool
}

// SetDefaults fills unset fields with working defaults. The write
// timeout leaves room for a slow fetch plus title resolution.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 90 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
}

// Server serves the carving form and renders extraction results.
type Server struct {
	router *gin.Engine
	server *http.Server
	carver *carve.Carver
	logger *slog.Logger
}

// NewServer creates a configured server. The carver performs the actual
// fetching and extraction; a nil logger disables request logging.
func NewServer(cfg Config, carver *carve.Carver, logger *slog.Logger) *Server {
	cfg.SetDefaults()

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))
	router.SetHTMLTemplate(pageTemplate)

	s := &Server{
		router: router,
		carver: carver,
		logger: logger,
	}

	router.GET("/", s.handleIndex)
	router.POST("/", s.handleCarve)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start runs the server until Shutdown is called or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.server.Shutdown(ctx)
}

// Run starts the server and shuts it down gracefully when ctx is
// canceled. It returns the startup error, if any, otherwise the
// shutdown result.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
