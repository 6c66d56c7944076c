// ABOUTME: Field precedence tables used to pick a URL out of an asset object
// ABOUTME: Precedence depends on asset kind because a video preview is only a thumbnail

package asset

import (
	"strings"

	"github.com/tidwall/gjson"

	"microsite-api/core/domain"
)

// imageFieldOrder prefers preview-style URLs, which are smaller and always displayable.
var imageFieldOrder = []string{
	"src",
	"preview_url",
	"dynamic_url",
	"previewUrl",
	"dynamicPreviewUrl",
	"downloadUrl",
	"url",
}

// videoFieldOrder prefers the downloadable media file over preview thumbnails.
var videoFieldOrder = []string{
	"downloadUrl",
	"src",
	"dynamicPreviewUrl",
	"dynamic_url",
	"previewUrl",
	"preview_url",
}

// titleFields are consulted in order for the asset title
var titleFields = []string{"title", "name"}

// FieldOrder returns the ordered URL fields for an object resolved with the given hint.
// videoLike reports whether the object itself declares playable video media.
func FieldOrder(hint domain.AssetKind, videoLike bool) []string {
	order := imageFieldOrder
	if hint == domain.AssetKindVideo && videoLike {
		order = videoFieldOrder
	}
	return append([]string(nil), order...)
}

// IsVideoLike reports whether an asset object declares itself as video media
func IsVideoLike(obj gjson.Result) bool {
	return obj.Get("type").String() == "Video" || obj.Get("extension").String() == "mp4"
}

// extractor pulls a populated string out of an object
type extractor func(obj gjson.Result) (string, bool)

func fieldExtractor(field string) extractor {
	return func(obj gjson.Result) (string, bool) {
		return stringField(obj, field)
	}
}

// stringField returns the trimmed value of field when it is a non-blank string
func stringField(obj gjson.Result, field string) (string, bool) {
	v := obj.Get(field)
	if v.Type != gjson.String {
		return "", false
	}
	s := strings.TrimSpace(v.Str)
	return s, s != ""
}

// firstPopulated walks fields in order and returns the first populated one
func firstPopulated(obj gjson.Result, fields []string) (field, value string, ok bool) {
	for _, f := range fields {
		if v, ok := fieldExtractor(f)(obj); ok {
			return f, v, true
		}
	}
	return "", "", false
}

func titleOf(obj gjson.Result) string {
	_, title, _ := firstPopulated(obj, titleFields)
	return title
}
