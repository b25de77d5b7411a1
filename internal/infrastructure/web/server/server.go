package server

import (
	"context"
	"errors"
	"fmt"
	"mandi-service/internal/infrastructure/config"
	"mandi-service/internal/infrastructure/logging"
	"net/http"
	"time"
)

// Server encapsulates HTTP server configuration
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a new server instance
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       60 * time.Second,
		},
		port: cfg.Port,
	}
}

// Start blocks serving HTTP. It returns nil once Stop has been called.
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
	})

	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("GET  http://localhost:%d/", s.port),
			fmt.Sprintf("GET  http://localhost:%d/health", s.port),
			fmt.Sprintf("GET  http://localhost:%d/ready", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/mandi/latest", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/mandi/refresh", s.port),
			fmt.Sprintf("GET  http://localhost:%d/api/mandi/status", s.port),
			fmt.Sprintf("GET  http://localhost:%d/swagger/index.html", s.port),
		},
	})

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the HTTP server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})

	return s.httpServer.Shutdown(ctx)
}

// GetPort returns the configured port
func (s *Server) GetPort() int {
	return s.port
}
