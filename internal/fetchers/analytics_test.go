package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{Timeout: 5 * time.Second, RetryCount: 0}
}

func TestNewAnalyticsClient(t *testing.T) {
	c := NewAnalyticsClient("http://example.test/", testOptions())
	require.NotNil(t, c)
	assert.NotNil(t, c.client)
	assert.Equal(t, "http://example.test", c.BaseURL())
}

func TestFetchBuildsPathAndQuery(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"A":1,"B":2}`))
	}))
	defer srv.Close()

	c := NewAnalyticsClient(srv.URL, testOptions())
	q := url.Values{}
	q.Set("dataset_id", "abc")
	q.Add("column", "x")
	q.Add("column", "y")

	body, err := c.Fetch(context.Background(), "aggregation", "grouped-sum", q)
	require.NoError(t, err)
	assert.JSONEq(t, `{"A":1,"B":2}`, string(body))
	assert.Equal(t, "/analytics/aggregation/grouped-sum", gotPath)
	assert.Equal(t, "abc", gotQuery.Get("dataset_id"))
	assert.Equal(t, []string{"x", "y"}, gotQuery["column"])
}

func TestFetchUpstreamError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"service message", http.StatusBadRequest, `{"error":"Invalid group_by or column"}`, "Invalid group_by or column"},
		{"empty body", http.StatusInternalServerError, ``, "analysis request failed: internal server error"},
		{"non-json body", http.StatusNotFound, `not here`, "analysis request failed: not found"},
		{"error not a string", http.StatusBadRequest, `{"error":{"code":1}}`, "analysis request failed: bad request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewAnalyticsClient(srv.URL, testOptions())
			_, err := c.Fetch(context.Background(), "descriptives", "mean", nil)
			require.Error(t, err)

			upstream, ok := AsUpstream(err)
			require.True(t, ok, "expected UpstreamError, got %v", err)
			assert.Equal(t, tt.status, upstream.Status)
			assert.Equal(t, tt.message, upstream.Message)
		})
	}
}

func TestFetchRetriesGatewayErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"mean":2}`))
	}))
	defer srv.Close()

	c := NewAnalyticsClient(srv.URL, Options{Timeout: 5 * time.Second, RetryCount: 1, RetryWaitTime: time.Millisecond})
	body, err := c.Fetch(context.Background(), "descriptives", "mean", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"mean":2}`, string(body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewAnalyticsClient(srv.URL, Options{Timeout: 5 * time.Second, RetryCount: 3, RetryWaitTime: time.Millisecond})
	_, err := c.Fetch(context.Background(), "descriptives", "mean", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"mean":`))
	}))
	defer srv.Close()

	c := NewAnalyticsClient(srv.URL, testOptions())
	_, err := c.Fetch(context.Background(), "descriptives", "mean", nil)
	require.Error(t, err)
	_, isUpstream := AsUpstream(err)
	assert.False(t, isUpstream)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestFetchContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewAnalyticsClient(srv.URL, testOptions())
	_, err := c.Fetch(ctx, "descriptives", "mean", nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context canceled"), "got %v", err)
}
