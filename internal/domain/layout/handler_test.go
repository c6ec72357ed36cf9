package layout

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cattle-records/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func doLayoutReq(t *testing.T, h http.Handler, method, path, userID string, body any) (int, layoutResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-Debug-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out layoutResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode: %v body=%s", err, rec.Body.String())
		}
	}
	return rec.Code, out
}

func TestHTTP_LayoutFlow(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middleware.AuthContext(nil))
	RegisterRoutes(r, NewService(newFakeStore()))

	if st, _ := doLayoutReq(t, r, http.MethodGet, "/layout", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without user, got %d", st)
	}

	st, resp := doLayoutReq(t, r, http.MethodGet, "/layout", "u1", nil)
	if st != http.StatusOK || len(resp.Columns) != 14 || resp.Version != SchemaVersion {
		t.Fatalf("unexpected layout: %d %+v", st, resp)
	}

	st, resp = doLayoutReq(t, r, http.MethodPost, "/layout/columns/color/toggle", "u1", nil)
	if st != http.StatusOK || !resp.Columns[6].Visible {
		t.Fatalf("expected color visible, got %d %+v", st, resp.Columns[6])
	}

	if st, _ := doLayoutReq(t, r, http.MethodPost, "/layout/columns/ghost/toggle", "u1", nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown column, got %d", st)
	}

	st, _ = doLayoutReq(t, r, http.MethodPost, "/layout/reorder", "u1", reorderRequest{SourceKey: "isActive", TargetKey: "uniqueId"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 reorder, got %d", st)
	}

	st, resp = doLayoutReq(t, r, http.MethodGet, "/layout/visible", "u1", nil)
	if st != http.StatusOK || resp.Columns[0].Key != "isActive" || len(resp.Columns) != 12 {
		t.Fatalf("unexpected visible columns: %d %+v", st, resp.Columns)
	}

	st, resp = doLayoutReq(t, r, http.MethodPost, "/layout/reset", "u1", nil)
	if st != http.StatusOK || resp.Columns[0].Key != "uniqueId" || resp.Columns[6].Visible {
		t.Fatalf("expected default after reset, got %d %+v", st, resp.Columns)
	}

	req := httptest.NewRequest(http.MethodPost, "/layout/reorder", bytes.NewBufferString("{"))
	req.Header.Set("X-Debug-User-ID", "u1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid json, got %d", rec.Code)
	}
}
