// Package metrics counts inventory operations and their comparison and swap
// work with Prometheus collectors, and writes them to a textfile for the
// node exporter's textfile collector when a session ends.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "satchel"

// Recorder owns a private registry so tests and sessions never collide with
// the global default registry.
type Recorder struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	comparisons *prometheus.CounterVec
	swaps       *prometheus.CounterVec
	items       *prometheus.GaugeVec
}

// NewRecorder creates and registers the collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Inventory operations by kind, backend and outcome.",
		}, []string{"operation", "backend", "outcome"}),
		comparisons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Key comparisons performed by searches and sorts.",
		}, []string{"operation", "backend", "algorithm"}),
		swaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_total",
			Help:      "Swaps or moves performed by sorts.",
		}, []string{"backend", "algorithm"}),
		items: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_items",
			Help:      "Items currently held by the inventory.",
		}, []string{"backend"}),
	}
	r.registry.MustRegister(r.operations, r.comparisons, r.swaps, r.items)
	return r
}

// Observe counts one operation. Zero counters are still added so the series
// exist for every operation that ran.
func (r *Recorder) Observe(operation, backend, algorithm, outcome string, comparisons, swaps int) {
	r.operations.WithLabelValues(operation, backend, outcome).Inc()
	if comparisons > 0 || algorithm != "" {
		r.comparisons.WithLabelValues(operation, backend, algorithm).Add(float64(comparisons))
	}
	if algorithm != "" {
		r.swaps.WithLabelValues(backend, algorithm).Add(float64(swaps))
	}
}

// SetItems records the current inventory size.
func (r *Recorder) SetItems(backend string, n int) {
	r.items.WithLabelValues(backend).Set(float64(n))
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer { return r.registry }

// WriteTextfile writes the current values in the Prometheus text format.
// The write goes through a temp file and rename.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
