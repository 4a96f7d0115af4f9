package fetchers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/Bgoodwin24/insightforge/internal/logger"
)

// UpstreamError is a non-2xx response from the analytics service
type UpstreamError struct {
	Status  int
	Message string
	Path    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analytics service returned status %d for %s: %s", e.Status, e.Path, e.Message)
}

// AsUpstream unwraps an UpstreamError from err
func AsUpstream(err error) (*UpstreamError, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}

// Options tunes the HTTP client
type Options struct {
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// DefaultOptions mirrors the service defaults
func DefaultOptions() Options {
	return Options{
		Timeout:       30 * time.Second,
		RetryCount:    2,
		RetryWaitTime: 500 * time.Millisecond,
	}
}

// AnalyticsClient issues GET requests against the analytics service
type AnalyticsClient struct {
	client  *resty.Client
	baseURL string
	log     *logger.Logger
}

// NewAnalyticsClient creates a client for the service at baseURL
func NewAnalyticsClient(baseURL string, opts Options) *AnalyticsClient {
	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(opts.RetryCount)
	client.SetRetryWaitTime(opts.RetryWaitTime)
	// Only transport failures and gateway errors are worth a second try;
	// a 4xx carries the service's verdict on the request itself.
	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		switch r.StatusCode() {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	})

	return &AnalyticsClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logger.WithComponent("analytics-client"),
	}
}

// BaseURL returns the service root the client talks to
func (c *AnalyticsClient) BaseURL() string {
	return c.baseURL
}

// Fetch runs GET {base}/analytics/{group}/{method}?query and returns the raw
// JSON body of a successful response
func (c *AnalyticsClient) Fetch(ctx context.Context, group, method string, query url.Values) ([]byte, error) {
	path := "/analytics/" + url.PathEscape(group) + "/" + url.PathEscape(method)
	start := time.Now()

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParamsFromValues(query).
		Get(c.baseURL + path)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}

	c.log.Debug("analytics response", map[string]interface{}{
		"path":        path,
		"status":      resp.StatusCode(),
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if !resp.IsSuccess() {
		return nil, &UpstreamError{
			Status:  resp.StatusCode(),
			Message: errorMessage(resp.Body(), resp.StatusCode()),
			Path:    path,
		}
	}

	body := resp.Body()
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("analytics service returned invalid JSON for %s", path)
	}
	return body, nil
}

// errorMessage extracts the service's {"error": "..."} text, falling back
// to a generic message
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error"); msg.Type == gjson.String && msg.Str != "" {
			return msg.Str
		}
	}
	if text := http.StatusText(status); text != "" {
		return "analysis request failed: " + strings.ToLower(text)
	}
	return "analysis request failed"
}
