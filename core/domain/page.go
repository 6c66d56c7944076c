// ABOUTME: PageContent domain model is the provider-agnostic view model of the marketing page
// ABOUTME: ProductCard holds one product snapshot identified only by its position

package domain

// PageContent is the canonical view model handed to rendering.
// Values are built by the normalizer and treated as immutable afterwards.
type PageContent struct {
	Heading     string          `json:"heading"`
	SubHeading  string          `json:"subHeading"`
	Description string          `json:"description"`
	Products    []ProductCard   `json:"products"`
	Video       *CanonicalAsset `json:"video,omitempty"`
}

// ProductCard is a read-only product snapshot
type ProductCard struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       *CanonicalAsset `json:"image,omitempty"`
}

// WithVideo returns a copy of the page carrying the given video
func (p *PageContent) WithVideo(video *CanonicalAsset) *PageContent {
	if p == nil {
		return nil
	}
	out := *p
	out.Products = append([]ProductCard(nil), p.Products...)
	if video != nil {
		v := *video
		out.Video = &v
	} else {
		out.Video = nil
	}
	return &out
}

// HasProducts reports whether any product card was resolved
func (p *PageContent) HasProducts() bool {
	return p != nil && len(p.Products) > 0
}
