// ABOUTME: Resty-backed HTTP client with retry, timeout and per-request headers
// ABOUTME: Retries transient failures (network errors, 5xx) with bounded backoff

package restyhttp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"microsite-api/core/interfaces"
)

const (
	maxRetries = 2 // three attempts in total
	userAgent  = "MicrositeAPI/1.0"
)

// Client implements the HTTPClient interface using resty
type Client struct {
	client *resty.Client
}

// NewClient creates a new HTTP client with the specified timeout.
// When logger is non-nil outgoing requests are logged at debug level.
func NewClient(timeout time.Duration, logger interfaces.Logger) *Client {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(maxRetries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(400 * time.Millisecond)

	client.AddRetryCondition(retryCondition)

	if logger != nil {
		client.SetTransport(&LoggingRoundTripper{
			Transport: http.DefaultTransport,
			Logger:    logger,
		})
	}

	return &Client{client: client}
}

// retryCondition retries network errors and server errors, never 4xx or cancellations
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= 500
}

// Get performs an HTTP GET request
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, err
	}
	return newResponse(resp), nil
}

// Post performs an HTTP POST request. The body defaults to JSON.
func (c *Client) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = io.ReadAll(body); err != nil {
			return nil, err
		}
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeaders(headers).
		SetBody(payload).
		Post(url)
	if err != nil {
		return nil, err
	}
	return newResponse(resp), nil
}

func newResponse(resp *resty.Response) *httpResponse {
	return &httpResponse{
		statusCode: resp.StatusCode(),
		body:       resp.Body(),
		headers:    resp.Header(),
	}
}

// httpResponse implements the Response interface over an already-read body
type httpResponse struct {
	statusCode int
	body       []byte
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.body))
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
