// ABOUTME: Cache revalidation webhook handlers for the Huma API
// ABOUTME: Maps gateway outcomes to status codes and response bodies

package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"microsite-api/api/dto/responses"
	"microsite-api/core/revalidate"
)

// SecretHeader carries the webhook shared secret
const SecretHeader = "x-vercel-reval-key"

// Revalidator handles invalidation signals
type Revalidator interface {
	Handle(ctx context.Context, sig revalidate.Signal) revalidate.Outcome
	Liveness() revalidate.Liveness
}

// RevalidationRecorder counts webhook outcomes
type RevalidationRecorder interface {
	RecordRevalidation(state, status string)
}

// RevalidateHandler handles the publish webhook
type RevalidateHandler struct {
	gateway  Revalidator
	recorder RevalidationRecorder
}

// NewRevalidateHandler creates a new revalidation handler. recorder may be nil.
func NewRevalidateHandler(gateway Revalidator, recorder RevalidationRecorder) *RevalidateHandler {
	return &RevalidateHandler{
		gateway:  gateway,
		recorder: recorder,
	}
}

// RegisterRoutes registers the webhook routes
func (h *RevalidateHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "revalidate",
		Method:      http.MethodPost,
		Path:        "/api/revalidate",
		Summary:     "Invalidate cached content",
		Description: "CMS publish webhook. Marks every content tag and the root path stale.",
		Tags:        []string{"Revalidation"},
	}, h.Revalidate)

	huma.Register(api, huma.Operation{
		OperationID: "revalidateStatus",
		Method:      http.MethodGet,
		Path:        "/api/revalidate",
		Summary:     "Describe the revalidation endpoint",
		Tags:        []string{"Revalidation"},
	}, h.Status)
}

// RevalidateInput defines the webhook input. The body is optional and
// only read for logging, so it is taken raw.
type RevalidateInput struct {
	Secret  string `header:"x-vercel-reval-key" doc:"Shared webhook secret"`
	RawBody []byte
}

// RevalidateOutput defines the webhook output
type RevalidateOutput struct {
	Status int
	Body   responses.RevalidateResponse
}

// RevalidateStatusOutput defines the GET output
type RevalidateStatusOutput struct {
	Body responses.RevalidateStatusResponse
}

// Revalidate handles POST /api/revalidate
func (h *RevalidateHandler) Revalidate(ctx context.Context, input *RevalidateInput) (*RevalidateOutput, error) {
	outcome := h.gateway.Handle(ctx, revalidate.Signal{
		Secret: input.Secret,
		Body:   input.RawBody,
	})

	if h.recorder != nil {
		h.recorder.RecordRevalidation(string(outcome.State), strconv.Itoa(outcome.StatusCode))
	}

	body := responses.RevalidateResponse{Message: outcome.Message}
	switch {
	case outcome.Err != nil:
		body.Error = outcome.Err.Error()
	case outcome.State == revalidate.StateInvalidated:
		body.Revalidated = true
		body.Now = outcome.Now.UnixMilli()
	}

	return &RevalidateOutput{Status: outcome.StatusCode, Body: body}, nil
}

// Status handles GET /api/revalidate
func (h *RevalidateHandler) Status(ctx context.Context, input *struct{}) (*RevalidateStatusOutput, error) {
	live := h.gateway.Liveness()
	return &RevalidateStatusOutput{
		Body: responses.RevalidateStatusResponse{
			Message:   live.Message,
			Timestamp: live.Timestamp.UnixMilli(),
		},
	}, nil
}
