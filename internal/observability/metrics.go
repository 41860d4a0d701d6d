package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "resume_studio"

// Metrics holds the application's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	requestsInFlight prometheus.Gauge

	suggestionCalls    *prometheus.CounterVec
	suggestionDuration prometheus.Histogram
	resolutions        *prometheus.CounterVec
	renders            *prometheus.CounterVec
	overflowChecks     *prometheus.CounterVec
	contentPages       prometheus.Histogram
	activeSessions     prometheus.Gauge
}

// NewMetrics creates and registers all collectors, plus the Go and process collectors
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served.",
		}, []string{"method", "route", "status"}),
		requestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "HTTP requests currently being served.",
		}),
		suggestionCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggestions",
			Name:      "calls_total",
			Help:      "Suggestion service calls by result.",
		}, []string{"result"}),
		suggestionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "suggestions",
			Name:      "call_duration_seconds",
			Help:      "Suggestion service latency in seconds.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 45, 90},
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "suggestions",
			Name:      "resolved_total",
			Help:      "Accepted and rejected suggestions, and whether an accept changed the document.",
		}, []string{"action", "applied"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "total",
			Help:      "Layouts produced per template.",
		}, []string{"template", "fell_back"}),
		overflowChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "overflow",
			Name:      "checks_total",
			Help:      "Overflow checks by measurement source and outcome.",
		}, []string{"source", "overflow"}),
		contentPages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "overflow",
			Name:      "content_pages",
			Help:      "Measured content height in page units.",
			Buckets:   []float64{0.5, 0.75, 0.9, 1, 1.1, 1.25, 1.5, 2, 3},
		}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Editing sessions held in memory.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestDuration, m.requestTotal, m.requestsInFlight,
		m.suggestionCalls, m.suggestionDuration, m.resolutions,
		m.renders, m.overflowChecks, m.contentPages, m.activeSessions,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSuggestion records one suggestion service call
func (m *Metrics) ObserveSuggestion(err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.suggestionCalls.WithLabelValues(result).Inc()
	m.suggestionDuration.Observe(elapsed.Seconds())
}

// ObserveResolution records an accepted or rejected suggestion
func (m *Metrics) ObserveResolution(action string, applied bool) {
	m.resolutions.WithLabelValues(action, strconv.FormatBool(applied)).Inc()
}

// ObserveRender records a produced layout
func (m *Metrics) ObserveRender(template string, fellBack bool) {
	m.renders.WithLabelValues(template, strconv.FormatBool(fellBack)).Inc()
}

// ObserveOverflow records an overflow check
func (m *Metrics) ObserveOverflow(source string, overflow bool, pages float64) {
	if source == "" {
		source = "unknown"
	}
	m.overflowChecks.WithLabelValues(source, strconv.FormatBool(overflow)).Inc()
	m.contentPages.Observe(pages)
}

// SetActiveSessions reports the current session count
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// Middleware records latency and counts per matched route pattern
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		m.requestsInFlight.Inc()
		defer m.requestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		// the mux fills in Pattern; unmatched paths share one label
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(rec.status),
		}
		m.requestDuration.With(labels).Observe(time.Since(start).Seconds())
		m.requestTotal.With(labels).Inc()
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Flush keeps server-sent events working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
