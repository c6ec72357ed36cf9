package iam

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIAM(t *testing.T, h http.HandlerFunc) *Verifier {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewClient(Config{BaseURL: ts.URL, APIKey: "secret"})
	require.NoError(t, err)
	return NewVerifier(c)
}

func TestVerify_OK(t *testing.T) {
	v := newIAM(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, verifyPath, r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Api-Key"))

		var in verifyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "tkn", in.Token)

		_ = json.NewEncoder(w).Encode(verifyResponse{UserID: " rancher-1 ", TenantID: "estancia"})
	})

	claims, err := v.Verify(context.Background(), " tkn ")
	require.NoError(t, err)
	assert.Equal(t, "rancher-1", claims.UserID)
	assert.Equal(t, "estancia", claims.TenantID)
}

func TestVerify_Unauthorized(t *testing.T) {
	v := newIAM(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := v.Verify(context.Background(), "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerify_UpstreamAndMissingUser(t *testing.T) {
	v := newIAM(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	_, err := v.Verify(context.Background(), "tkn")
	assert.ErrorIs(t, err, ErrUpstream)

	v = newIAM(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"email":"a@b.c"}`))
	})
	_, err = v.Verify(context.Background(), "tkn")
	assert.ErrorContains(t, err, "missing user_id")
}

func TestVerify_NotConfigured(t *testing.T) {
	c, err := NewClient(Config{})
	require.NoError(t, err)

	_, err = NewVerifier(c).Verify(context.Background(), "tkn")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(nil).Verify(context.Background(), "tkn")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
