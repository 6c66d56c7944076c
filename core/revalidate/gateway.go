// ABOUTME: Cache invalidation gateway for CMS publish webhooks
// ABOUTME: Authenticates the shared secret and marks every content tag stale

package revalidate

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/tidwall/gjson"

	"microsite-api/core/interfaces"
	"microsite-api/core/provider"
)

// State is the lifecycle position of one webhook signal.
// IDLE → VALIDATING → INVALIDATED or REJECTED; both outcomes are terminal.
type State string

const (
	StateIdle        State = "IDLE"
	StateValidating  State = "VALIDATING"
	StateInvalidated State = "INVALIDATED"
	StateRejected    State = "REJECTED"
)

// Response messages
const (
	MessageNoSecret      = "No secret provided"
	MessageInvalidSecret = "Invalid secret"
	MessageRevalidated   = "Cache revalidated successfully"
	MessageFailed        = "Error during revalidation"
	MessageActive        = "Revalidation endpoint is active. Use POST with x-vercel-reval-key header."
)

// RootPath is the rendered page path invalidated on every publish
const RootPath = "/"

// Signal is an inbound invalidation request. An empty Secret means none was sent.
type Signal struct {
	Secret string
	Body   []byte
}

// Outcome is the terminal result of handling a signal
type Outcome struct {
	State       State
	StatusCode  int
	Message     string
	Now         time.Time
	ContentType string
	Err         error
}

// Liveness describes the endpoint for health probes
type Liveness struct {
	Message   string
	Timestamp time.Time
}

// Gateway handles invalidation signals
type Gateway struct {
	secret string
	tags   interfaces.TagStore
	logger interfaces.Logger
	now    func() time.Time
}

// NewGateway creates a gateway. An empty secret rejects every signal.
func NewGateway(secret string, deps interfaces.Dependencies) *Gateway {
	return &Gateway{
		secret: secret,
		tags:   deps.Tags,
		logger: deps.Logger,
		now:    time.Now,
	}
}

// Tags returns every tag a successful signal marks stale, in order
func Tags() []string {
	return []string{
		provider.TagWebsite,
		provider.TagProducts,
		provider.TagVideos,
		interfaces.PathTag(RootPath),
	}
}

// Handle authenticates a signal and invalidates all content tags.
// Repeating a signal has the same effect as handling it once.
func (g *Gateway) Handle(ctx context.Context, sig Signal) Outcome {
	state := StateIdle
	g.debug("Revalidation signal received", map[string]interface{}{"state": state})

	state = StateValidating
	if sig.Secret == "" {
		return g.reject(state, MessageNoSecret)
	}
	if g.secret == "" || subtle.ConstantTimeCompare([]byte(sig.Secret), []byte(g.secret)) != 1 {
		return g.reject(state, MessageInvalidSecret)
	}

	contentType := contentTypeOf(sig.Body)
	g.info("Revalidation requested", map[string]interface{}{"content_type": contentType})

	if g.tags == nil {
		return g.fail(contentType, errTagStoreMissing)
	}
	for _, tag := range Tags() {
		if err := g.tags.MarkStale(ctx, tag); err != nil {
			return g.fail(contentType, err)
		}
	}

	g.info("Cache revalidated", map[string]interface{}{
		"from":         state,
		"state":        StateInvalidated,
		"content_type": contentType,
		"tags":         Tags(),
	})

	return Outcome{
		State:       StateInvalidated,
		StatusCode:  http.StatusOK,
		Message:     MessageRevalidated,
		Now:         g.now(),
		ContentType: contentType,
	}
}

// Liveness returns the endpoint description
func (g *Gateway) Liveness() Liveness {
	return Liveness{Message: MessageActive, Timestamp: g.now()}
}

func (g *Gateway) reject(from State, message string) Outcome {
	g.warn("Revalidation rejected", map[string]interface{}{
		"from":   from,
		"state":  StateRejected,
		"reason": message,
	})
	return Outcome{
		State:      StateRejected,
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

// fail reports a tag store failure. The secret was valid, so the state is
// INVALIDATED with an error and a server status; some tags may already be stale.
func (g *Gateway) fail(contentType string, err error) Outcome {
	g.logError("Revalidation failed", map[string]interface{}{
		"content_type": contentType,
		"error":        err.Error(),
	})
	return Outcome{
		State:       StateInvalidated,
		StatusCode:  http.StatusInternalServerError,
		Message:     MessageFailed,
		ContentType: contentType,
		Err:         err,
	}
}

// contentTypeOf reads sys.contentType.sys.id from a webhook body. Missing or
// malformed bodies yield an empty string.
func contentTypeOf(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	return gjson.GetBytes(body, "sys.contentType.sys.id").String()
}

func (g *Gateway) debug(msg string, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.Debug(msg, fields)
	}
}

func (g *Gateway) info(msg string, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.Info(msg, fields)
	}
}

func (g *Gateway) warn(msg string, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.Warn(msg, fields)
	}
}

func (g *Gateway) logError(msg string, fields map[string]interface{}) {
	if g.logger != nil {
		g.logger.Error(msg, fields)
	}
}
