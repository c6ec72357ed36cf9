package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cattle-records/internal/platform/logger"
	"cattle-records/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubVerifier struct {
	claims auth.Claims
	err    error
}

func (s stubVerifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return s.claims, s.err
}

func claimsProbe(got *auth.Claims, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = GetClaims(r.Context())
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	var (
		got auth.Claims
		ok  bool
	)
	h := AuthContext(nil)(claimsProbe(&got, &ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", " rancher-1 ")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "rancher-1", got.UserID)

	ok = false
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	var (
		got auth.Claims
		ok  bool
	)
	h := AuthContext(stubVerifier{claims: auth.Claims{UserID: "u-1"}})(claimsProbe(&got, &ok))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, ok)
	assert.Equal(t, "u-1", got.UserID)

	// con verifier el header de debug no cuenta
	ok = false
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "u-2")
	req.Header.Set("Authorization", "Bearer nope")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}

func TestRecover_LogsAndReturns500(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := chimw.RequestID(Recover(logger.NewWithCore(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	entries := logs.FilterMessage("panic in handler").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "boom", fields["panic"])
		assert.Equal(t, "/records", fields["path"])
		assert.NotEmpty(t, fields["request_id"])
	}
}

func TestAccessLog_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := logger.NewWithCore(core)

	ok := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	failing := AccessLog(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	failing.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/records", nil))

	assert.Equal(t, 1, logs.FilterMessage("request").Len())
	failed := logs.FilterMessage("request failed").All()
	if assert.Len(t, failed, 1) {
		assert.Equal(t, int64(http.StatusServiceUnavailable), failed[0].ContextMap()["status"])
	}
}

func TestProfileID(t *testing.T) {
	cases := []struct {
		name   string
		claims *auth.Claims
		want   string
		ok     bool
	}{
		{name: "no claims"},
		{name: "blank user", claims: &auth.Claims{UserID: "  ", TenantID: "t"}},
		{name: "user only", claims: &auth.Claims{UserID: " rancher-1 "}, want: "rancher-1", ok: true},
		{name: "tenant scoped", claims: &auth.Claims{UserID: "rancher-1", TenantID: "estancia"}, want: "estancia/rancher-1", ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			if tc.claims != nil {
				ctx = context.WithValue(ctx, claimsKey, *tc.claims)
			}
			got, ok := ProfileID(ctx)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.ok, ok)
		})
	}
}
