package metrics

import (
	"net/http"
	"strconv"
	"time"

	"cattle-records/internal/domain/layout"
	"cattle-records/internal/domain/records"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors de la API.
// Implementa records.Observer y layout.Observer.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Búsqueda
	SearchTotal    *prometheus.CounterVec
	SearchDuration *prometheus.HistogramVec
	SearchMatched  *prometheus.HistogramVec

	// Layout
	LayoutLoadsTotal   *prometheus.CounterVec
	LayoutPersistTotal *prometheus.CounterVec
}

var (
	_ records.Observer = (*Metrics)(nil)
	_ layout.Observer  = (*Metrics)(nil)
)

// New crea y registra los collectors en registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cattle_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cattle_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		SearchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cattle_records_search_total",
				Help: "Total number of record searches by query mode",
			},
			[]string{"mode"},
		),
		SearchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cattle_records_search_duration_seconds",
				Help:    "Search pipeline duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"mode"},
		),
		SearchMatched: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cattle_records_search_matched",
				Help:    "Records left after search and filters",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"mode"},
		),

		LayoutLoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cattle_layout_loads_total",
				Help: "Column layout loads by outcome",
			},
			[]string{"outcome"},
		),
		LayoutPersistTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cattle_layout_persist_total",
				Help: "Column layout writes by status",
			},
			[]string{"status"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SearchTotal,
		m.SearchDuration,
		m.SearchMatched,
		m.LayoutLoadsTotal,
		m.LayoutPersistTotal,
	)
	return m
}

func (m *Metrics) ObserveSearch(mode records.QueryMode, total, matched int, elapsed time.Duration) {
	label := string(mode)
	m.SearchTotal.WithLabelValues(label).Inc()
	m.SearchDuration.WithLabelValues(label).Observe(elapsed.Seconds())
	m.SearchMatched.WithLabelValues(label).Observe(float64(matched))
}

func (m *Metrics) ObserveLayoutLoad(outcome layout.LoadOutcome) {
	m.LayoutLoadsTotal.WithLabelValues(string(outcome)).Inc()
}

func (m *Metrics) ObserveLayoutPersist(ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	m.LayoutPersistTotal.WithLabelValues(status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware instrumenta requests. Usa el patrón de ruta de chi como label
// (/layout/columns/{key}/toggle), no el path crudo.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler expone /metrics.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
