package metrics

import (
	"maps"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager before its collectors are registered.
type Option func(*Manager)

// WithNamespace overrides the "pie" metric name prefix. Empty is ignored.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem overrides the "analytics" name segment. Empty is ignored.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithLatencyBuckets sets the millisecond buckets shared by every latency
// histogram. Buckets must be strictly increasing; anything else is ignored.
func WithLatencyBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) == 0 || !slices.IsSorted(buckets) || len(slices.Compact(slices.Clone(buckets))) != len(buckets) {
			return
		}
		m.latencyBuckets = slices.Clone(buckets)
	}
}

// WithConstLabels attaches labels to every collector, e.g. the dataset seed.
// Labels with an empty name are dropped.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if len(labels) == 0 {
			return
		}
		if m.constLabels == nil {
			m.constLabels = make(prometheus.Labels, len(labels))
		}
		maps.Copy(m.constLabels, labels)
		delete(m.constLabels, "")
	}
}

// WithRegistry registers collectors on r instead of the default registerer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}
