// ABOUTME: Response DTOs for the cache revalidation webhook
// ABOUTME: One body shape covers success, rejection, and failure

package responses

// RevalidateResponse is the webhook reply. Only the fields relevant to
// the outcome are set.
type RevalidateResponse struct {
	Revalidated bool   `json:"revalidated,omitempty"`
	Now         int64  `json:"now,omitempty" doc:"Unix time in milliseconds"`
	Message     string `json:"message"`
	Error       string `json:"error,omitempty"`
}

// RevalidateStatusResponse describes the endpoint for GET probes
type RevalidateStatusResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp" doc:"Unix time in milliseconds"`
}
