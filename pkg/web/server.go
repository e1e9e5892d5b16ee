package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/halls510/project-list-pokemons/pkg/logger"
	"github.com/halls510/project-list-pokemons/pkg/web/middleware"
)

// Server hosts the HTTP API.
type Server struct {
	engine *gin.Engine
	config *Config
	logger logger.Logger
	server *http.Server
}

// NewServer creates a Server with the base middleware mounted.
func NewServer(cfg *Config, l logger.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if l == nil {
		l = logger.Default()
	}

	gin.SetMode(cfg.Mode)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Logger(l))
	engine.Use(middleware.Recovery(l))
	if cfg.EnableCORS {
		engine.Use(middleware.CORS())
	}

	return &Server{
		engine: engine,
		config: cfg,
		logger: l.Named("web.server"),
	}
}

// Router returns the gin engine for route registration.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

// Run starts the listener and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.engine,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", "addr", addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server startup failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("context cancelled, shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("server exited")
	return nil
}
