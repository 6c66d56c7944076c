// ABOUTME: Response DTOs for page content endpoints
// ABOUTME: Content failures render as a neutral placeholder instead of an error

package responses

// Content status values
const (
	StatusOK          = "ok"
	StatusEmpty       = "empty"
	StatusUnavailable = "unavailable"
)

// AssetResponse is a resolved image or video
type AssetResponse struct {
	URL   string `json:"url" doc:"Media URL"`
	Kind  string `json:"kind" enum:"image,video" doc:"Asset kind"`
	Title string `json:"title,omitempty" doc:"Asset title when the CMS carried one"`
}

// ProductCardResponse is one product card
type ProductCardResponse struct {
	Title       string         `json:"title" doc:"Product title"`
	Description string         `json:"description" doc:"Product description"`
	Image       *AssetResponse `json:"image,omitempty" doc:"Product image, absent when unresolvable"`
}

// PageContentResponse is the rendered page content
type PageContentResponse struct {
	Heading     string                `json:"heading"`
	SubHeading  string                `json:"subHeading"`
	Description string                `json:"description"`
	Products    []ProductCardResponse `json:"products"`
	Video       *AssetResponse        `json:"video,omitempty"`
}

// Placeholder is shown instead of content when none can be rendered
type Placeholder struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// PageResponse wraps page content or its placeholder
type PageResponse struct {
	Status      string               `json:"status" enum:"ok,empty,unavailable" doc:"Content status"`
	Provider    string               `json:"provider" doc:"CMS provider serving this deployment"`
	Draft       bool                 `json:"draft"`
	Content     *PageContentResponse `json:"content,omitempty"`
	Placeholder *Placeholder         `json:"placeholder,omitempty"`
}

// ProductsResponse wraps the product collection or its placeholder
type ProductsResponse struct {
	Status      string                `json:"status" enum:"ok,empty,unavailable" doc:"Content status"`
	Provider    string                `json:"provider"`
	Draft       bool                  `json:"draft"`
	Products    []ProductCardResponse `json:"products"`
	Placeholder *Placeholder          `json:"placeholder,omitempty"`
}

// HealthResponse reports service liveness
type HealthResponse struct {
	Status    string `json:"status" example:"ok"`
	Provider  string `json:"provider"`
	Timestamp int64  `json:"timestamp" doc:"Unix time in milliseconds"`
}
