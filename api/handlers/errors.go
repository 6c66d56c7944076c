// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"context"
	stderrors "errors"

	"github.com/danielgtaylor/huma/v2"

	"microsite-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors.
// Content endpoints never call this; they render placeholders instead.
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsProvider(err) {
		return huma.Error502BadGateway("CMS rejected the request", err)
	}

	if errors.IsTransport(err) {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return huma.Error504GatewayTimeout("CMS request timed out", err)
		}
		return huma.Error503ServiceUnavailable("CMS is unreachable", err)
	}

	return huma.Error500InternalServerError("Internal server error", err)
}
