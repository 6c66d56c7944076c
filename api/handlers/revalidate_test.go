package handlers

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microsite-api/api/dto/responses"
	"microsite-api/core/interfaces"
	"microsite-api/core/revalidate"
)

const testSecret = "s3cret"

func newRevalidateAPI(t *testing.T, tags *mockTagStore, recorder *mockRevalidationRecorder) humatest.TestAPI {
	t.Helper()
	gateway := revalidate.NewGateway(testSecret, interfaces.Dependencies{Tags: tags})
	_, api := humatest.New(t)
	NewRevalidateHandler(gateway, recorder).RegisterRoutes(api)
	return api
}

func TestRevalidateHandler_ValidSecret(t *testing.T) {
	tags := &mockTagStore{}
	recorder := &mockRevalidationRecorder{}
	api := newRevalidateAPI(t, tags, recorder)

	resp := api.Post("/api/revalidate",
		SecretHeader+": "+testSecret,
		strings.NewReader(`{"sys":{"contentType":{"sys":{"id":"microWebsiteContent"}}}}`))
	require.Equal(t, 200, resp.Code)

	var body responses.RevalidateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.True(t, body.Revalidated)
	assert.Equal(t, revalidate.MessageRevalidated, body.Message)
	assert.NotZero(t, body.Now)
	assert.Empty(t, body.Error)
	assert.Equal(t, revalidate.Tags(), tags.marked)
	assert.Equal(t, [][2]string{{"INVALIDATED", "200"}}, recorder.records)
}

func TestRevalidateHandler_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		args    []any
		message string
	}{
		{"missing secret", nil, revalidate.MessageNoSecret},
		{"wrong secret", []any{SecretHeader + ": nope"}, revalidate.MessageInvalidSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tags := &mockTagStore{}
			recorder := &mockRevalidationRecorder{}
			api := newRevalidateAPI(t, tags, recorder)

			resp := api.Post("/api/revalidate", tt.args...)
			require.Equal(t, 401, resp.Code)

			var body responses.RevalidateResponse
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			assert.False(t, body.Revalidated)
			assert.Equal(t, tt.message, body.Message)
			assert.Zero(t, body.Now)
			assert.Empty(t, tags.marked)
			assert.Equal(t, [][2]string{{"REJECTED", "401"}}, recorder.records)
		})
	}
}

func TestRevalidateHandler_MalformedBodyStillSucceeds(t *testing.T) {
	tags := &mockTagStore{}
	api := newRevalidateAPI(t, tags, nil)

	resp := api.Post("/api/revalidate", SecretHeader+": "+testSecret, strings.NewReader(`{not json`))
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, revalidate.Tags(), tags.marked)
}

func TestRevalidateHandler_TagStoreFailure(t *testing.T) {
	tags := &mockTagStore{err: errors.New("redis: connection refused")}
	recorder := &mockRevalidationRecorder{}
	api := newRevalidateAPI(t, tags, recorder)

	resp := api.Post("/api/revalidate", SecretHeader+": "+testSecret)
	require.Equal(t, 500, resp.Code)

	var body responses.RevalidateResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, revalidate.MessageFailed, body.Message)
	assert.Equal(t, "redis: connection refused", body.Error)
	assert.False(t, body.Revalidated)
	assert.Equal(t, [][2]string{{"INVALIDATED", "500"}}, recorder.records)
}

func TestRevalidateHandler_PassesSignalThrough(t *testing.T) {
	stub := &stubRevalidator{outcome: revalidate.Outcome{State: revalidate.StateRejected, StatusCode: 401, Message: revalidate.MessageInvalidSecret}}
	_, api := humatest.New(t)
	NewRevalidateHandler(stub, nil).RegisterRoutes(api)

	api.Post("/api/revalidate", SecretHeader+": abc", strings.NewReader(`{"a":1}`))

	require.Len(t, stub.signals, 1)
	assert.Equal(t, "abc", stub.signals[0].Secret)
	assert.JSONEq(t, `{"a":1}`, string(stub.signals[0].Body))
}

func TestRevalidateHandler_Status(t *testing.T) {
	stub := &stubRevalidator{live: revalidate.Liveness{
		Message:   revalidate.MessageActive,
		Timestamp: time.UnixMilli(1700000000123),
	}}
	_, api := humatest.New(t)
	NewRevalidateHandler(stub, nil).RegisterRoutes(api)

	resp := api.Get("/api/revalidate")
	require.Equal(t, 200, resp.Code)

	var body responses.RevalidateStatusResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, revalidate.MessageActive, body.Message)
	assert.Equal(t, int64(1700000000123), body.Timestamp)
	assert.Empty(t, stub.signals)
}
