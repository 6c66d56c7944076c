// ABOUTME: Logging round tripper for outgoing CMS requests
// ABOUTME: Logs method, target and latency without query strings

package restyhttp

import (
	"net/http"
	"time"

	"microsite-api/core/interfaces"
)

// LoggingRoundTripper implements http.RoundTripper with logging
type LoggingRoundTripper struct {
	Transport http.RoundTripper
	Logger    interfaces.Logger
}

// RoundTrip logs outgoing HTTP requests. Query strings are omitted since they may carry credentials.
func (t *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	target := req.URL.Scheme + "://" + req.URL.Host + req.URL.Path

	t.Logger.Debug("Outgoing HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    target,
	})

	resp, err := t.Transport.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.Logger.Warn("Outgoing HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      target,
			"duration": duration.String(),
			"error":    err.Error(),
		})
		return nil, err
	}

	t.Logger.Debug("Outgoing HTTP response", map[string]interface{}{
		"method":   req.Method,
		"url":      target,
		"status":   resp.StatusCode,
		"duration": duration.String(),
	})

	return resp, nil
}
