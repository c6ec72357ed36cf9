package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSON_RelativePathAndHeaders(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/records", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", time.Second, WithHeader("Authorization", "Bearer tkn"))
	require.NoError(t, err)

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.GetJSON(context.Background(), "v1/records", &out))
	assert.True(t, out.OK)
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer ts.Close()

	c, err := New("", time.Second)
	require.NoError(t, err)

	err = c.GetJSON(context.Background(), ts.URL, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Equal(t, "nope", httpErr.Body)
}

func TestDoJSON_BodyLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3,4,5,6,7,8,9]`))
	}))
	defer ts.Close()

	c, err := New(ts.URL, time.Second, WithMaxBody(8))
	require.NoError(t, err)

	var out []int
	err = c.GetJSON(context.Background(), "/", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestNew_Validation(t *testing.T) {
	_, err := New("not a url", time.Second)
	assert.Error(t, err)

	c, err := New("", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)

	err = c.GetJSON(context.Background(), "/relative", nil)
	assert.ErrorContains(t, err, "requires BaseURL")
}
