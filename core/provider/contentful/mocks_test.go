package contentful

import (
	"context"
	"errors"
	"io"
	"strings"

	"microsite-api/core/interfaces"
)

// mockHTTPClient records the last POST and replies with postFunc
type mockHTTPClient struct {
	postFunc func(ctx context.Context, url string, body string, headers map[string]string) (*mockResponse, error)

	calls       int
	lastURL     string
	lastBody    string
	lastHeaders map[string]string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	return nil, errors.New("unexpected GET")
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	raw, _ := io.ReadAll(body)
	m.calls++
	m.lastURL = url
	m.lastBody = string(raw)
	m.lastHeaders = headers
	resp, err := m.postFunc(ctx, url, string(raw), headers)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func replyWith(status int, body string) func(context.Context, string, string, map[string]string) (*mockResponse, error) {
	return func(context.Context, string, string, map[string]string) (*mockResponse, error) {
		return &mockResponse{statusCode: status, body: body}, nil
	}
}

type mockResponse struct {
	statusCode int
	body       string
}

func (m *mockResponse) StatusCode() int {
	return m.statusCode
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return ""
}

type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
