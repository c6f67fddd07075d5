// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies (lifecycle, logging, metrics) the route
// dispatcher and server require.
package infrastructure

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/JaimeStill/waypoint/internal/config"
	"github.com/JaimeStill/waypoint/pkg/dispatch"
	"github.com/JaimeStill/waypoint/pkg/lifecycle"
	"github.com/JaimeStill/waypoint/pkg/logging"
)

// Infrastructure holds the core systems shared by the server modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Registry  *prometheus.Registry
	Metrics   *dispatch.Metrics
}

// New creates an Infrastructure logging to stderr.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter creates an Infrastructure whose logger writes to w.
func NewWithWriter(cfg *config.Config, w io.Writer) (*Infrastructure, error) {
	logger := logging.NewWithWriter(&cfg.Logging, w)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	metrics, err := dispatch.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logger,
		Registry:  reg,
		Metrics:   metrics,
	}, nil
}
