// Package metrics exposes Prometheus collectors for the credit ledger and the
// generation saga.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/ideascore-backend/internal/domain"
)

const namespace = "ideascore"

// Metrics owns the application's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	sagaRuns          *prometheus.CounterVec
	refunds           *prometheus.CounterVec
	ledgerFailures    *prometheus.CounterVec
	generatorDuration *prometheus.HistogramVec
	balanceCache      *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go and process
// collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"method", "route"}),

		sagaRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "runs_total",
			Help:      "Generation saga runs by operation and outcome.",
		}, []string{"operation", "outcome"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "refunds_total",
			Help:      "Compensating refunds issued after a failed generation.",
		}, []string{"operation"}),
		ledgerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "ledger_write_failures_total",
			Help:      "Ledger writes that failed; each one needs operator attention.",
		}, []string{"phase"}),
		generatorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "provider_duration_seconds",
			Help:      "Latency of external generator calls.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"provider", "success"}),
		balanceCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "credits",
			Name:      "balance_cache_lookups_total",
			Help:      "Balance cache lookups by result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.sagaRuns,
		m.refunds,
		m.ledgerFailures,
		m.generatorDuration,
		m.balanceCache,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// SagaFinished counts one saga run.
func (m *Metrics) SagaFinished(op domain.OperationKind, outcome string) {
	m.sagaRuns.WithLabelValues(op.String(), outcome).Inc()
}

// RefundIssued counts one compensating refund.
func (m *Metrics) RefundIssued(op domain.OperationKind) {
	m.refunds.WithLabelValues(op.String()).Inc()
}

// LedgerWriteFailed counts one failed ledger write.
func (m *Metrics) LedgerWriteFailed(phase domain.LedgerPhase) {
	m.ledgerFailures.WithLabelValues(string(phase)).Inc()
}

// GeneratorCalled records the latency of one generator call.
func (m *Metrics) GeneratorCalled(provider string, d time.Duration, success bool) {
	m.generatorDuration.WithLabelValues(provider, strconv.FormatBool(success)).Observe(d.Seconds())
}

// BalanceCacheLookup counts a balance cache hit or miss.
func (m *Metrics) BalanceCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.balanceCache.WithLabelValues(result).Inc()
}

// InstrumentHandler wraps next with request count, latency and in-flight
// metrics. Routes are labelled by their chi pattern to bound cardinality.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r)

		route := routePattern(r)
		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	})
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
