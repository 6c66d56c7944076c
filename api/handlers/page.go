// ABOUTME: Page content handlers for the Huma API
// ABOUTME: Serves normalized CMS content with a neutral placeholder on failure

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"microsite-api/api/dto/mappers"
	"microsite-api/api/dto/responses"
	"microsite-api/core/domain"
	"microsite-api/core/interfaces"
)

// PageService is the content source behind the page endpoints
type PageService interface {
	GetPage(ctx context.Context, draft bool) (*domain.PageContent, error)
	GetProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error)
	ProviderName() string
}

// PageHandler handles page content requests
type PageHandler struct {
	service PageService
	logger  interfaces.Logger
	now     func() time.Time
}

// NewPageHandler creates a new page handler
func NewPageHandler(service PageService, logger interfaces.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterRoutes registers page, product, and probe routes
func (h *PageHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "getPage",
		Method:      http.MethodGet,
		Path:        "/page",
		Summary:     "Get page content",
		Description: "Returns the heading, products, and video of the marketing page. Content failures yield a placeholder, never an error.",
		Tags:        []string{"Content"},
	}, h.GetPage)

	huma.Register(api, huma.Operation{
		OperationID: "getProducts",
		Method:      http.MethodGet,
		Path:        "/products",
		Summary:     "Get product cards",
		Description: "Returns the product collection with the same placeholder policy as the page",
		Tags:        []string{"Content"},
	}, h.GetProducts)

	huma.Register(api, huma.Operation{
		OperationID: "healthz",
		Method:      http.MethodGet,
		Path:        "/healthz",
		Summary:     "Liveness probe",
		Tags:        []string{"Health"},
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "readyz",
		Method:      http.MethodGet,
		Path:        "/readyz",
		Summary:     "Readiness probe",
		Description: "Fetches published page content and reports CMS failures as HTTP errors",
		Tags:        []string{"Health"},
	}, h.Ready)
}

// ContentInput defines the input for content reads
type ContentInput struct {
	Draft bool `query:"draft" default:"false" doc:"Serve draft (preview) content and bypass the page cache"`
}

// PageOutput defines the output for GetPage
type PageOutput struct {
	Body responses.PageResponse
}

// ProductsOutput defines the output for GetProducts
type ProductsOutput struct {
	Body responses.ProductsResponse
}

// HealthOutput defines the output for the probes
type HealthOutput struct {
	Body responses.HealthResponse
}

// GetPage handles GET /page
func (h *PageHandler) GetPage(ctx context.Context, input *ContentInput) (*PageOutput, error) {
	page, err := h.service.GetPage(ctx, input.Draft)
	if err != nil {
		h.warn("Page content unavailable", input.Draft, err)
	}
	return &PageOutput{
		Body: mappers.ToPageResponse(h.service.ProviderName(), input.Draft, page, err),
	}, nil
}

// GetProducts handles GET /products
func (h *PageHandler) GetProducts(ctx context.Context, input *ContentInput) (*ProductsOutput, error) {
	cards, err := h.service.GetProducts(ctx, input.Draft)
	if err != nil {
		h.warn("Product content unavailable", input.Draft, err)
	}
	return &ProductsOutput{
		Body: mappers.ToProductsResponse(h.service.ProviderName(), input.Draft, cards, err),
	}, nil
}

// Health handles GET /healthz
func (h *PageHandler) Health(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: h.health()}, nil
}

// Ready handles GET /readyz. An absent page is still ready.
func (h *PageHandler) Ready(ctx context.Context, input *struct{}) (*HealthOutput, error) {
	if _, err := h.service.GetPage(ctx, false); err != nil {
		return nil, toHumaError(err)
	}
	return &HealthOutput{Body: h.health()}, nil
}

func (h *PageHandler) health() responses.HealthResponse {
	return responses.HealthResponse{
		Status:    "ok",
		Provider:  h.service.ProviderName(),
		Timestamp: h.now().UnixMilli(),
	}
}

func (h *PageHandler) warn(msg string, draft bool, err error) {
	if h.logger == nil {
		return
	}
	h.logger.Warn(msg, map[string]interface{}{
		"provider": h.service.ProviderName(),
		"draft":    draft,
		"error":    err.Error(),
	})
}
