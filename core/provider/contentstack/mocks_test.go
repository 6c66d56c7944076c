package contentstack

import (
	"context"
	"errors"
	"io"
	"strings"

	"microsite-api/core/interfaces"
)

// mockHTTPClient records GET requests and replies with getFunc
type mockHTTPClient struct {
	getFunc func(ctx context.Context, url string, headers map[string]string) (*mockResponse, error)

	urls        []string
	lastHeaders map[string]string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (interfaces.Response, error) {
	m.urls = append(m.urls, url)
	m.lastHeaders = headers
	resp, err := m.getFunc(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *mockHTTPClient) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (interfaces.Response, error) {
	return nil, errors.New("unexpected POST")
}

func replyWith(status int, body string) func(context.Context, string, map[string]string) (*mockResponse, error) {
	return func(context.Context, string, map[string]string) (*mockResponse, error) {
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
