// ABOUTME: Asset shape resolver turns any raw CMS asset payload into a canonical asset
// ABOUTME: Resolution is total: unknown or malformed payloads resolve to nil, never an error

package asset

import (
	"strings"

	"github.com/tidwall/gjson"

	"microsite-api/core/domain"
)

const (
	// DefaultEmbedType is the rich-text node type of the asset manager embed
	DefaultEmbedType = "Frontify"

	// maxDepth bounds recursion through nested lists, JSON strings and embeds
	maxDepth = 8
)

// Resolver resolves raw asset payloads. The zero value is not usable; call NewResolver.
type Resolver struct {
	embedTypes map[string]struct{}
	observer   Observer
}

// Option configures a Resolver
type Option func(*Resolver)

// WithEmbedTypes sets the rich-text node types recognized as asset embeds
func WithEmbedTypes(types ...string) Option {
	return func(r *Resolver) {
		r.embedTypes = make(map[string]struct{}, len(types))
		for _, t := range types {
			if t = strings.TrimSpace(t); t != "" {
				r.embedTypes[t] = struct{}{}
			}
		}
	}
}

// WithObserver sets the diagnostic observer
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observer = o
	}
}

// NewResolver creates a resolver recognizing DefaultEmbedType unless overridden
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		embedTypes: map[string]struct{}{DefaultEmbedType: {}},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Resolve resolves payload with the default resolver
func Resolve(payload gjson.Result, hint domain.AssetKind) *domain.CanonicalAsset {
	return defaultResolver.Resolve(payload, hint)
}

// Resolve returns the canonical asset for payload, or nil when nothing usable is present.
// An unknown hint is treated as an image.
func (r *Resolver) Resolve(payload gjson.Result, hint domain.AssetKind) *domain.CanonicalAsset {
	if !hint.IsValid() {
		hint = domain.AssetKindImage
	}
	return r.resolve(payload, hint, 0)
}

func (r *Resolver) resolve(payload gjson.Result, hint domain.AssetKind, depth int) *domain.CanonicalAsset {
	shape := r.Classify(payload)
	r.emit(Event{Type: EventShapeMatched, Shape: shape, Kind: hint, Depth: depth})

	if depth >= maxDepth {
		return r.exhausted(shape, hint, depth)
	}

	switch shape {
	case ShapeList:
		return r.resolve(payload.Array()[0], hint, depth+1)
	case ShapeJSONString:
		return r.resolve(gjson.Parse(strings.TrimSpace(payload.Str)), hint, depth+1)
	case ShapeURLString:
		url := strings.TrimSpace(payload.Str)
		r.emit(Event{Type: EventFieldChosen, Shape: shape, Kind: hint, Field: "value", URL: url, Depth: depth})
		return &domain.CanonicalAsset{URL: url, Kind: hint}
	case ShapeRichText:
		if attrs, ok := r.ExtractEmbed(payload); ok {
			return r.resolve(attrs, hint, depth+1)
		}
		// a tree without an embed may still carry its own URL fields
		return r.resolveObject(payload, shape, hint, depth)
	case ShapeDAM, ShapeObject:
		return r.resolveObject(payload, shape, hint, depth)
	}

	return r.exhausted(shape, hint, depth)
}

func (r *Resolver) resolveObject(obj gjson.Result, shape Shape, hint domain.AssetKind, depth int) *domain.CanonicalAsset {
	field, url, ok := firstPopulated(obj, FieldOrder(hint, IsVideoLike(obj)))
	if !ok {
		return r.exhausted(shape, hint, depth)
	}

	r.emit(Event{Type: EventFieldChosen, Shape: shape, Kind: hint, Field: field, URL: url, Depth: depth})
	return &domain.CanonicalAsset{
		URL:   url,
		Kind:  hint,
		Title: titleOf(obj),
	}
}

// ExtractEmbed finds the recognized embed in a rich-text tree using the default resolver
func ExtractEmbed(tree gjson.Result) (gjson.Result, bool) {
	return defaultResolver.ExtractEmbed(tree)
}

// ExtractEmbed returns the attrs of the first immediate child of tree whose type is a
// recognized embed type. A bare embed node yields its own attrs. JSON strings are decoded first.
func (r *Resolver) ExtractEmbed(tree gjson.Result) (gjson.Result, bool) {
	if tree.Type == gjson.String {
		s := strings.TrimSpace(tree.Str)
		if s == "" || !looksLikeJSON(s) {
			return gjson.Result{}, false
		}
		tree = gjson.Parse(s)
	}
	if !tree.IsObject() {
		return gjson.Result{}, false
	}

	if r.isEmbedNode(tree) {
		return tree.Get("attrs"), true
	}

	var attrs gjson.Result
	found := false
	tree.Get("children").ForEach(func(_, child gjson.Result) bool {
		if r.isEmbedNode(child) {
			attrs = child.Get("attrs")
			found = true
			return false
		}
		return true
	})
	return attrs, found
}

// isEmbedNode reports whether node is a recognized embed carrying attrs
func (r *Resolver) isEmbedNode(node gjson.Result) bool {
	if !node.IsObject() {
		return false
	}
	if _, ok := r.embedTypes[node.Get("type").String()]; !ok {
		return false
	}
	attrs := node.Get("attrs")
	return attrs.IsObject() || attrs.IsArray()
}

func (r *Resolver) exhausted(shape Shape, hint domain.AssetKind, depth int) *domain.CanonicalAsset {
	r.emit(Event{Type: EventFallbackExhausted, Shape: shape, Kind: hint, Depth: depth})
	return nil
}

func (r *Resolver) emit(e Event) {
	if r.observer != nil {
		r.observer.Observe(e)
	}
}
