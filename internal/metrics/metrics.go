package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	fetchesTotal   *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	datasetPoints  *prometheus.GaugeVec
	snapshotsUsed  *prometheus.CounterVec
	refreshCycles  prometheus.Counter
	exportsTotal   *prometheus.CounterVec
	exportDuration prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	r.fetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitdash_fetches_total",
			Help: "Total number of dataset fetches",
		},
		[]string{"dataset", "status"},
	)
	r.fetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recruitdash_fetch_duration_seconds",
			Help:    "Dataset fetch duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"dataset"},
	)
	r.datasetPoints = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recruitdash_dataset_points",
			Help: "Number of points in the last successful fetch",
		},
		[]string{"dataset"},
	)
	r.snapshotsUsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitdash_snapshot_fallbacks_total",
			Help: "Times a panel fell back to its last-good snapshot",
		},
		[]string{"dataset"},
	)
	r.refreshCycles = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recruitdash_refresh_cycles_total",
			Help: "Total number of background refresh cycles",
		},
	)
	r.exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recruitdash_exports_total",
			Help: "Total number of chart exports",
		},
		[]string{"format", "status"},
	)
	r.exportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recruitdash_export_duration_seconds",
			Help:    "Export render duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	reg.MustRegister(r.fetchesTotal)
	reg.MustRegister(r.fetchDuration)
	reg.MustRegister(r.datasetPoints)
	reg.MustRegister(r.snapshotsUsed)
	reg.MustRegister(r.refreshCycles)
	reg.MustRegister(r.exportsTotal)
	reg.MustRegister(r.exportDuration)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordFetch records one dataset fetch. points is only used on success.
func (r *Registry) RecordFetch(dataset string, ok bool, points int, duration float64) {
	status := "error"
	if ok {
		status = "ok"
		r.datasetPoints.WithLabelValues(dataset).Set(float64(points))
	}
	r.fetchesTotal.WithLabelValues(dataset, status).Inc()
	r.fetchDuration.WithLabelValues(dataset).Observe(duration)
}

// RecordSnapshotFallback records a panel served from its snapshot.
func (r *Registry) RecordSnapshotFallback(dataset string) {
	r.snapshotsUsed.WithLabelValues(dataset).Inc()
}

// RecordRefreshCycle records a background refresh completion.
func (r *Registry) RecordRefreshCycle() {
	r.refreshCycles.Inc()
}

// RecordExport records an export render.
func (r *Registry) RecordExport(format string, ok bool, duration float64) {
	status := "error"
	if ok {
		status = "ok"
	}
	r.exportsTotal.WithLabelValues(format, status).Inc()
	r.exportDuration.Observe(duration)
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
