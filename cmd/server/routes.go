package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/dimfeld/httppath"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JaimeStill/waypoint/internal/actions"
	"github.com/JaimeStill/waypoint/internal/config"
	"github.com/JaimeStill/waypoint/internal/infrastructure"
	"github.com/JaimeStill/waypoint/pkg/dispatch"
	"github.com/JaimeStill/waypoint/pkg/manifest"
	"github.com/JaimeStill/waypoint/pkg/middleware"
	"github.com/JaimeStill/waypoint/pkg/pattern"
	"github.com/JaimeStill/waypoint/pkg/routes"
)

// reservedPaths are served by the native mux ahead of the dispatcher.
var reservedPaths = []string{"/healthz", "/readyz", "/metrics", "/routes"}

// Routes owns route discovery and the dispatcher serving the result.
type Routes struct {
	cfg        *config.RoutesConfig
	store      *actions.Store
	matcher    pattern.Matcher
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// NewRoutes creates a dispatcher over an empty table. Discover fills it.
func NewRoutes(cfg *config.RoutesConfig, infra *infrastructure.Infrastructure) *Routes {
	matcher := pattern.NewSegments()
	empty := routes.NewRegistry(matcher).Table()

	return &Routes{
		cfg: cfg,
		store: actions.NewStore(
			actions.Article{ID: "1", Title: "Declaring routes"},
			actions.Article{ID: "2", Title: "Ordering with first and last"},
		),
		matcher:    matcher,
		dispatcher: dispatch.New(empty, infra.Logger, dispatch.WithMetrics(infra.Metrics)),
		logger:     infra.Logger.With("system", "routes"),
	}
}

func (rt *Routes) sources() ([]routes.Source, error) {
	api, err := actions.API(rt.store)
	if err != nil {
		return nil, err
	}

	return []routes.Source{
		routes.Actions(actions.All(rt.store)...),
		routes.Groups(api),
		manifest.Source(rt.cfg.Manifest, actions.Catalog(rt.store)),
	}, nil
}

// Discover builds a complete table from every source and publishes it.
// On failure the active table is left in place.
func (rt *Routes) Discover(ctx context.Context) error {
	sources, err := rt.sources()
	if err != nil {
		return err
	}

	table, err := routes.Discover(ctx, rt.matcher, rt.logger, sources...)
	if err != nil {
		return err
	}

	for _, route := range table.Routes() {
		if err := rt.reachable(route); err != nil {
			return err
		}
	}

	rt.dispatcher.Swap(table)
	return nil
}

// reachable rejects declarations the server could never dispatch to: paths
// shadowed by a native endpoint, and trailing-slash patterns while
// Normalize trims the slash from every request.
func (rt *Routes) reachable(route routes.Route) error {
	cleaned := httppath.Clean(route.Pattern)

	reason := ""
	switch {
	case slices.Contains(reservedPaths, cleaned):
		reason = "path is reserved by the server"
	case rt.cfg.TrimSlashEnabled() && len(cleaned) > 1 && strings.HasSuffix(cleaned, "/"):
		reason = "trailing slash is unreachable while trim_slash is enabled"
	default:
		return nil
	}

	return &routes.DeclarationError{
		Method:  route.Method,
		Pattern: route.Pattern,
		Name:    route.Name,
		Reason:  reason,
	}
}

// Handler returns the dispatcher wrapped with path normalization.
func (rt *Routes) Handler() http.Handler {
	return middleware.Normalize(rt.cfg.TrimSlashEnabled())(rt.dispatcher)
}

type routeListing struct {
	Table  string        `json:"table"`
	Routes []routeRecord `json:"routes"`
}

type routeRecord struct {
	Method  string `json:"method"`
	Pattern string `json:"pattern"`
	Name    string `json:"name,omitempty"`
	First   bool   `json:"first,omitempty"`
	Last    bool   `json:"last,omitempty"`
}

func (rt *Routes) listing(w http.ResponseWriter, r *http.Request) {
	table := rt.dispatcher.Table()

	declared := table.Routes()
	records := make([]routeRecord, len(declared))
	for i, route := range declared {
		records[i] = routeRecord{
			Method:  route.Method,
			Pattern: route.Pattern,
			Name:    route.Name,
			First:   route.First,
			Last:    route.Last,
		}
	}

	writeJSON(w, http.StatusOK, routeListing{
		Table:  table.ID().String(),
		Routes: records,
	})
}

func buildRouter(infra *infrastructure.Infrastructure, rt *Routes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	mux.Handle("GET /metrics", promhttp.HandlerFor(infra.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /routes", rt.listing)
	mux.Handle("/", rt.Handler())

	mw := middleware.New()
	mw.Use(middleware.Logger(infra.Logger))
	return mw.Apply(mux)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
