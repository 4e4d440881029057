// Package metrics provides Prometheus instrumentation for seqflow sequences
// and sources.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for seqflow components.
type Registry struct {
	// Sequence Metrics
	Traversals        *prometheus.CounterVec
	Elements          *prometheus.CounterVec
	Errors            *prometheus.CounterVec
	ActiveCursors     *prometheus.GaugeVec
	TraversalDuration *prometheus.HistogramVec

	// Source Metrics
	SourceFetches       *prometheus.CounterVec
	SourceFetchErrors   *prometheus.CounterVec
	SourceFetchDuration *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with the given Prometheus
// registerer and namespace. Registering two registries with the same
// namespace on one registerer panics; use For to share them.
func NewRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Registry{
		Traversals: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "traversals_total",
				Help:      "Total number of cursors opened over a sequence",
			},
			[]string{"sequence"},
		),

		Elements: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "elements_total",
				Help:      "Total number of elements yielded by a sequence",
			},
			[]string{"sequence"},
		),

		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "errors_total",
				Help:      "Total number of traversals that ended with an error",
			},
			[]string{"sequence"},
		),

		ActiveCursors: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "active_cursors",
				Help:      "Number of open cursors over a sequence",
			},
			[]string{"sequence"},
		),

		TraversalDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sequence",
				Name:      "traversal_duration_seconds",
				Help:      "Time between opening and closing a cursor",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"sequence"},
		),

		SourceFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetches_total",
				Help:      "Total number of pages fetched from an external source",
			},
			[]string{"source"},
		),

		SourceFetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetch_errors_total",
				Help:      "Total number of failed page fetches",
			},
			[]string{"source"},
		),

		SourceFetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "source",
				Name:      "fetch_duration_seconds",
				Help:      "Time spent fetching a page from an external source",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"source"},
		),
	}
}

type registryKey struct {
	reg       prometheus.Registerer
	namespace string
}

var (
	registriesMu sync.Mutex
	registries   = map[registryKey]*Registry{}
)

// For returns the Registry for config, creating and registering it on first
// use. Later calls with the same registerer and namespace share it.
func For(config Config) *Registry {
	key := registryKey{reg: config.registerer(), namespace: config.namespace()}

	registriesMu.Lock()
	defer registriesMu.Unlock()

	if r, ok := registries[key]; ok {
		return r
	}
	r := NewRegistry(key.reg, key.namespace)
	registries[key] = r
	return r
}
