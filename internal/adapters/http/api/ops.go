package api

import (
	"maps"
	"net/http"
	"time"

	"github.com/okian/pie/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsProvider reports operational statistics for GET /stats.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// ops serves the operational endpoints. They are never rate limited.
type ops struct {
	metrics http.Handler
	stats   StatsProvider
	started time.Time
}

func newOps(stats StatsProvider) *ops {
	return &ops{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
		stats:   stats,
		started: time.Now(),
	}
}

// handleHealth serves GET /healthz as the Prometheus exposition of the service registry.
func (o *ops) handleHealth(w http.ResponseWriter, r *http.Request) {
	o.metrics.ServeHTTP(w, r)
}

// handleStats serves GET /stats: the provider's stats plus process uptime.
func (o *ops) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats := make(map[string]interface{})
	if o.stats != nil {
		stats = maps.Clone(o.stats.GetStats())
		if stats == nil {
			stats = make(map[string]interface{})
		}
	}
	stats["uptime_seconds"] = int64(time.Since(o.started).Seconds())

	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, stats)
}
