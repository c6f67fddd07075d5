package main

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/waypoint/internal/config"
	"github.com/JaimeStill/waypoint/internal/infrastructure"
)

// Server wires configuration, infrastructure, route discovery and the
// HTTP listener.
type Server struct {
	cfg    *config.Config
	infra  *infrastructure.Infrastructure
	routes *Routes
	http   *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	rt := NewRoutes(&cfg.Routes, infra)
	router := buildRouter(infra, rt)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		cfg:    cfg,
		infra:  infra,
		routes: rt,
		http:   newHTTPServer(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start runs route discovery as a startup hook and begins listening once it
// succeeds. A discovery failure is returned and nothing is served.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	s.infra.Lifecycle.OnStartup(func() error {
		return s.routes.Discover(s.infra.Lifecycle.Context())
	})

	if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	s.infra.Logger.Info("all subsystems ready")
	return nil
}

// Reload rebuilds the route table from every source. The previous table
// stays active when the rebuild fails.
func (s *Server) Reload() error {
	if !s.cfg.Routes.ReloadEnabled() {
		return fmt.Errorf("route reload disabled")
	}

	ctx, cancel := context.WithTimeout(s.infra.Lifecycle.Context(), s.cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := s.routes.Discover(ctx); err != nil {
		return fmt.Errorf("route reload failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
