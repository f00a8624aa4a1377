package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jeonnam-stay/jeonnam-stay/internal/app/generator"
	"github.com/jeonnam-stay/jeonnam-stay/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	gen    *generator.Gemini
	router http.Handler
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	gen, err := s.setupGenerator(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to setup itinerary generator: %w", err)
	}
	s.gen = gen

	return s, nil
}

// setupGenerator initializes the Gemini-backed itinerary generator
func (s *Server) setupGenerator(ctx context.Context) (*generator.Gemini, error) {
	s.logger.Info("Setting up itinerary generator",
		zap.String("model", s.cfg.Gemini.Model))

	gen, err := generator.New(ctx, s.cfg.Gemini, s.logger)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// Generator returns the itinerary generator
func (s *Server) Generator() *generator.Gemini {
	return s.gen
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}
