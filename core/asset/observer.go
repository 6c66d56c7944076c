// ABOUTME: Diagnostic events emitted at each asset resolution decision point
// ABOUTME: Observers forward events to logging or metrics collaborators

package asset

import (
	"microsite-api/core/domain"
	"microsite-api/core/interfaces"
)

// EventType names a resolution decision point
type EventType string

const (
	// EventShapeMatched is emitted once per classified payload, including nested ones
	EventShapeMatched EventType = "shape_matched"

	// EventFieldChosen is emitted when a URL has been selected
	EventFieldChosen EventType = "field_chosen"

	// EventFallbackExhausted is emitted when a payload resolves to nothing
	EventFallbackExhausted EventType = "fallback_exhausted"
)

// Event describes one resolution decision
type Event struct {
	Type  EventType
	Shape Shape
	Kind  domain.AssetKind
	Field string // chosen field, empty unless Type is EventFieldChosen
	URL   string
	Depth int
}

// Observer receives resolution events. Implementations must be safe for concurrent use.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(Event)

// Observe calls f(e)
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

// Observers fans an event out to every non-nil observer
type Observers []Observer

// Observe forwards e to all observers
func (o Observers) Observe(e Event) {
	for _, obs := range o {
		if obs != nil {
			obs.Observe(e)
		}
	}
}

// LoggerObserver writes events at debug level, exhausted fallbacks at info
func LoggerObserver(logger interfaces.Logger) Observer {
	return ObserverFunc(func(e Event) {
		if logger == nil {
			return
		}
		fields := map[string]interface{}{
			"event": string(e.Type),
			"shape": e.Shape.String(),
			"kind":  string(e.Kind),
			"depth": e.Depth,
		}
		if e.Field != "" {
			fields["field"] = e.Field
		}
		if e.URL != "" {
			fields["url"] = e.URL
		}
		if e.Type == EventFallbackExhausted {
			logger.Info("Asset payload did not resolve", fields)
			return
		}
		logger.Debug("Asset resolution", fields)
	})
}
