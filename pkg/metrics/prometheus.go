// Package metrics provides Prometheus metrics for the pricing intelligence service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Dataset Metrics - one-time generation
	datasetGenerationDuration prometheus.Histogram
	datasetCompanies          prometheus.Gauge
	datasetUsageEvents        prometheus.Gauge
	datasetCompetitors        prometheus.Gauge
	datasetGeneratedUnix      prometheus.Gauge

	// Business Metrics - headline dashboard numbers
	revenueLeakTotal  prometheus.Gauge
	highRiskCustomers prometheus.Gauge

	// Analytics Metrics - per-view derivation cost
	analyticsLatency *prometheus.HistogramVec
	simulations      *prometheus.CounterVec
	exports          *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         *prometheus.CounterVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// DefaultLatencyBuckets spans sub-millisecond view derivation up to slow exports, in milliseconds.
var DefaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000} //nolint:gochecknoglobals // shared bucket layout

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "pie",
		subsystem:      "analytics",
		latencyBuckets: DefaultLatencyBuckets,
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
		Buckets:     buckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.datasetGenerationDuration = auto.NewHistogram(m.histogramOpts(
		"dataset_generation_duration_milliseconds",
		"Time spent generating the synthetic dataset",
		[]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
	))
	m.datasetCompanies = auto.NewGauge(m.gaugeOpts("dataset_companies", "Number of generated companies"))
	m.datasetUsageEvents = auto.NewGauge(m.gaugeOpts("dataset_usage_events", "Number of generated daily usage events"))
	m.datasetCompetitors = auto.NewGauge(m.gaugeOpts("dataset_competitors", "Number of competitor pricing records"))
	m.datasetGeneratedUnix = auto.NewGauge(m.gaugeOpts("dataset_generated_unix_seconds", "Anchor time of the generated dataset"))

	m.revenueLeakTotal = auto.NewGauge(m.gaugeOpts("revenue_leak_total_dollars", "Monthly revenue leak across all companies"))
	m.highRiskCustomers = auto.NewGauge(m.gaugeOpts("high_risk_customers", "Companies in the high churn bucket"))

	m.analyticsLatency = auto.NewHistogramVec(
		m.histogramOpts("view_latency_milliseconds", "Time spent deriving an analytics view", m.latencyBuckets),
		[]string{"view"},
	)
	m.simulations = auto.NewCounterVec(
		m.counterOpts("simulations_total", "Pricing simulations by outcome"),
		[]string{"outcome"},
	)
	m.exports = auto.NewCounterVec(
		m.counterOpts("exports_total", "Leak report exports by format"),
		[]string{"format"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.rateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error", m.latencyBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// Dataset Metrics Functions.

// RecordDatasetGeneration records how long generation took.
func RecordDatasetGeneration(durationMs float64) {
	globalManager.datasetGenerationDuration.Observe(durationMs)
}

// UpdateDatasetSize sets the entity counts of the generated dataset.
func UpdateDatasetSize(companies, usageEvents, competitors int) {
	globalManager.datasetCompanies.Set(float64(companies))
	globalManager.datasetUsageEvents.Set(float64(usageEvents))
	globalManager.datasetCompetitors.Set(float64(competitors))
}

// UpdateDatasetGeneratedAt sets the dataset anchor time.
func UpdateDatasetGeneratedAt(unixSeconds int64) {
	globalManager.datasetGeneratedUnix.Set(float64(unixSeconds))
}

// Business Metrics Functions.

// UpdateRevenueLeakTotal sets the population-wide monthly revenue leak.
func UpdateRevenueLeakTotal(amount float64) {
	globalManager.revenueLeakTotal.Set(amount)
}

// UpdateHighRiskCustomers sets the number of high churn risk companies.
func UpdateHighRiskCustomers(count int) {
	globalManager.highRiskCustomers.Set(float64(count))
}

// Analytics Metrics Functions.

// RecordViewLatency records the time spent deriving one analytics view.
func RecordViewLatency(view string, latencyMs float64) {
	globalManager.analyticsLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordSimulation counts a pricing simulation by outcome (ok, not_found).
func RecordSimulation(outcome string) {
	globalManager.simulations.WithLabelValues(outcome).Inc()
}

// RecordExport counts a leak report export by format.
func RecordExport(format string) {
	globalManager.exports.WithLabelValues(format).Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.rateLimited.WithLabelValues(endpoint).Inc()
}

// Error Metrics Functions.

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
