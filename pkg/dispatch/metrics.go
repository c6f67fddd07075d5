package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	promNamespace = "waypoint"

	outcomeMatched          = "matched"
	outcomeNotFound         = "not_found"
	outcomeMethodNotAllowed = "method_not_allowed"
)

// Metrics records dispatcher outcomes and route table changes.
type Metrics struct {
	requests *prometheus.CounterVec
	routes   prometheus.Gauge
	swaps    prometheus.Counter
}

// NewMetrics creates the dispatcher metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: promNamespace,
			Subsystem: "dispatch",
			Name:      "requests_total",
			Help:      "Total number of dispatched requests by outcome.",
		}, []string{"outcome"}),
		routes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: promNamespace,
			Name:      "routes_registered",
			Help:      "Number of route declarations in the active table.",
		}),
		swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: promNamespace,
			Name:      "route_table_swaps_total",
			Help:      "Total number of route table replacements.",
		}),
	}

	for _, c := range []prometheus.Collector{m.requests, m.routes, m.swaps} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) table(routes int, swapped bool) {
	if m == nil {
		return
	}
	m.routes.Set(float64(routes))
	if swapped {
		m.swaps.Inc()
	}
}
