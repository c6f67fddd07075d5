// Package dispatch serves HTTP requests from a route table.
//
// The Dispatcher resolves the request path against the active table and
// invokes the head of the resolved sequence. The table is held behind an
// atomic pointer: Swap publishes a complete replacement, and every request
// observes either the old table or the new one in full.
package dispatch

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/JaimeStill/waypoint/pkg/routes"
)

const allowHeader = "GET, HEAD"

// Dispatcher is an http.Handler backed by a routes.Table.
type Dispatcher struct {
	table    atomic.Pointer[routes.Table]
	notFound http.Handler
	metrics  *Metrics
	logger   *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithNotFound sets the handler used when no route matches.
func WithNotFound(h http.Handler) Option {
	return func(d *Dispatcher) { d.notFound = h }
}

// WithMetrics records dispatch outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// New creates a Dispatcher serving table.
func New(table *routes.Table, logger *slog.Logger, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		notFound: http.NotFoundHandler(),
		logger:   logger.With("system", "dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.table.Store(table)
	d.metrics.table(table.Len(), false)
	return d
}

// Table returns the active route table.
func (d *Dispatcher) Table() *routes.Table {
	return d.table.Load()
}

// Swap replaces the active table and returns the previous one.
func (d *Dispatcher) Swap(table *routes.Table) *routes.Table {
	prev := d.table.Swap(table)
	d.metrics.table(table.Len(), true)
	d.logger.Info(
		"route table swapped",
		"previous", prev.ID(),
		"current", table.ID(),
		"routes", table.Len(),
	)
	return prev
}

// ServeHTTP dispatches to the first declaration matching the request path.
// Requests whose path matches but whose method is neither GET nor HEAD
// receive 405.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	matches := d.table.Load().Resolve(r.URL.Path)

	if len(matches) == 0 {
		d.metrics.observe(outcomeNotFound)
		d.notFound.ServeHTTP(w, r)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		d.metrics.observe(outcomeMethodNotAllowed)
		w.Header().Set("Allow", allowHeader)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	match := matches[0]
	for _, p := range match.Params {
		r.SetPathValue(p.Name, p.Value)
	}

	d.metrics.observe(outcomeMatched)
	if match.Handler == nil {
		d.logger.Error("route has no handler", "name", match.Name, "pattern", match.Pattern)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	match.Handler(w, r)
}
