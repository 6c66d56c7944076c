// ABOUTME: CanonicalAsset domain model is the resolved form of a CMS image or video reference
// ABOUTME: Provides the asset kind enumeration shared by the resolver and the view model

package domain

// AssetKind identifies how an asset field is meant to be rendered
type AssetKind string

const (
	// AssetKindImage marks an asset rendered as an image
	AssetKindImage AssetKind = "image"

	// AssetKindVideo marks an asset rendered as playable media
	AssetKindVideo AssetKind = "video"
)

// IsValid reports whether the kind is one of the known asset kinds
func (k AssetKind) IsValid() bool {
	return k == AssetKindImage || k == AssetKindVideo
}

// CanonicalAsset is a resolved asset reference. A non-nil asset always carries a URL.
type CanonicalAsset struct {
	// URL is the media location chosen by the resolver
	URL string `json:"url"`

	// Kind is the field hint the asset was resolved with
	Kind AssetKind `json:"kind"`

	// Title is the asset title or name when the payload carried one
	Title string `json:"title,omitempty"`
}

// IsValid checks the non-empty URL invariant
func (a *CanonicalAsset) IsValid() bool {
	return a != nil && a.URL != "" && a.Kind.IsValid()
}
