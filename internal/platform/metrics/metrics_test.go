package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cattle-records/internal/domain/layout"
	"cattle-records/internal/domain/records"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservers(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSearch(records.QueryTerms, 10, 3, 2*time.Millisecond)
	m.ObserveSearch(records.QueryTerms, 10, 0, time.Millisecond)
	m.ObserveLayoutLoad(layout.LoadVersionMismatch)
	m.ObserveLayoutPersist(false)
	m.ObserveLayoutPersist(true)

	if got := testutil.ToFloat64(m.SearchTotal.WithLabelValues("terms")); got != 2 {
		t.Errorf("search total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.LayoutLoadsTotal.WithLabelValues("version_mismatch")); got != 1 {
		t.Errorf("layout loads = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.LayoutPersistTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("persist errors = %v, want 1", got)
	}
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Post("/layout/columns/{key}/toggle", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", Handler(registry))

	for _, key := range []string{"a", "b"} {
		req := httptest.NewRequest(http.MethodPost, "/layout/columns/"+key+"/toggle", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodPost, "/layout/columns/{key}/toggle", "404"))
	if got != 2 {
		t.Fatalf("requests = %v, want 2", got)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "cattle_http_requests_total") {
		t.Fatalf("metrics endpoint missing counter:\n%s", body)
	}
}
