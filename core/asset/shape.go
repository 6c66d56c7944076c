// ABOUTME: Shape classification for raw CMS asset payloads
// ABOUTME: Maps any JSON value onto the closed set of asset shapes the resolver understands

package asset

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape is the classification of a raw asset payload
type Shape int

const (
	// ShapeAbsent covers null, missing, blank and non-string scalar payloads
	ShapeAbsent Shape = iota

	// ShapeURLString is a plain string used directly as the URL
	ShapeURLString

	// ShapeJSONString is a string carrying a JSON-encoded object or array
	ShapeJSONString

	// ShapeList is a non-empty array; only the first element is considered
	ShapeList

	// ShapeRichText is a rich-text node tree, or a bare embed node, carrying attrs
	ShapeRichText

	// ShapeDAM is a digital-asset-manager object (previewUrl, downloadUrl, dynamicPreviewUrl)
	ShapeDAM

	// ShapeObject is a single asset object (src, url, preview_url, dynamic_url)
	ShapeObject
)

var shapeNames = map[Shape]string{
	ShapeAbsent:     "absent",
	ShapeURLString:  "url_string",
	ShapeJSONString: "json_string",
	ShapeList:       "list",
	ShapeRichText:   "rich_text",
	ShapeDAM:        "dam",
	ShapeObject:     "object",
}

// String returns the diagnostic name of the shape
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// damMarkers are the camelCase fields only the asset manager payload carries
var damMarkers = []string{"previewUrl", "downloadUrl", "dynamicPreviewUrl"}

// Classify determines the shape of a payload using the default embed types
func Classify(payload gjson.Result) Shape {
	return defaultResolver.Classify(payload)
}

// Classify determines the shape of a payload
func (r *Resolver) Classify(payload gjson.Result) Shape {
	if !payload.Exists() {
		return ShapeAbsent
	}

	switch payload.Type {
	case gjson.String:
		s := strings.TrimSpace(payload.Str)
		if s == "" {
			return ShapeAbsent
		}
		if looksLikeJSON(s) {
			return ShapeJSONString
		}
		return ShapeURLString
	case gjson.JSON:
		if payload.IsArray() {
			if len(payload.Array()) == 0 {
				return ShapeAbsent
			}
			return ShapeList
		}
		if payload.IsObject() {
			return r.classifyObject(payload)
		}
	}

	return ShapeAbsent
}

func (r *Resolver) classifyObject(obj gjson.Result) Shape {
	if obj.Get("children").IsArray() || r.isEmbedNode(obj) {
		return ShapeRichText
	}
	for _, field := range damMarkers {
		if obj.Get(field).Exists() {
			return ShapeDAM
		}
	}
	return ShapeObject
}

// looksLikeJSON reports whether s decodes to an object, an array or a
// quoted string literal
func looksLikeJSON(s string) bool {
	if s[0] != '{' && s[0] != '[' && s[0] != '"' {
		return false
	}
	if !gjson.Valid(s) {
		return false
	}
	parsed := gjson.Parse(s)
	return parsed.IsObject() || parsed.IsArray() || parsed.Type == gjson.String
}
