// ABOUTME: Custom error types for the core business logic
// ABOUTME: Separates provider-reported failures from transport failures for callers

package errors

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by TransportError
var (
	ErrUndecodableBody  = errors.New("response body is not valid JSON")
	ErrUnexpectedStatus = errors.New("unexpected status without error envelope")
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ProviderError is a failure reported by the CMS inside a decodable response,
// such as a REST error envelope or GraphQL errors without usable data.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("fetch failed from %s, reason: %s (code %s)", e.Provider, e.Message, e.Code)
	}
	return fmt.Sprintf("fetch failed from %s, reason: %s", e.Provider, e.Message)
}

// TransportError is a failure to obtain a decodable response: network errors,
// timeouts, non-2xx statuses without an error envelope, or undecodable bodies.
type TransportError struct {
	Provider   string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport failure from %s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport failure from %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsProvider checks if an error is a ProviderError
func IsProvider(err error) bool {
	var providerErr *ProviderError
	return errors.As(err, &providerErr)
}

// IsTransport checks if an error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
