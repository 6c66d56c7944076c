// ABOUTME: Contentstack REST adapter for page, video and product content
// ABOUTME: Resolves the regional CDN host and maps error envelopes onto provider errors

package contentstack

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"microsite-api/core/domain"
	"microsite-api/core/errors"
	"microsite-api/core/interfaces"
	"microsite-api/core/normalize"
	"microsite-api/core/provider"
)

// Name is the provider identifier used in logs and cache keys
const Name = "contentstack"

// Content type UIDs
const (
	PageContentType  = "micro_website_content"
	VideoContentType = "frontify_video_content"
)

// DefaultRegion is used when no region is configured
const DefaultRegion = "us"

type regionHost struct {
	delivery string
	preview  string
}

var regionHosts = map[string]regionHost{
	"us":       {"https://cdn.contentstack.io", "https://rest-preview.contentstack.com"},
	"eu":       {"https://eu-cdn.contentstack.com", "https://eu-rest-preview.contentstack.com"},
	"azure-na": {"https://azure-na-cdn.contentstack.com", "https://azure-na-rest-preview.contentstack.com"},
	"azure-eu": {"https://azure-eu-cdn.contentstack.com", "https://azure-eu-rest-preview.contentstack.com"},
}

func lookupRegion(region string) (regionHost, error) {
	if region == "" {
		region = DefaultRegion
	}
	host, ok := regionHosts[strings.ToLower(region)]
	if !ok {
		return regionHost{}, &errors.ValidationError{
			Field:   "CONTENTSTACK_REGION",
			Message: fmt.Sprintf("unknown region %q, expected one of %s", region, strings.Join(Regions(), ", ")),
		}
	}
	return host, nil
}

// BaseURLForRegion returns the delivery CDN host for a region
func BaseURLForRegion(region string) (string, error) {
	host, err := lookupRegion(region)
	return host.delivery, err
}

// PreviewURLForRegion returns the preview API host for a region. Draft
// reads go there with a preview_token header.
func PreviewURLForRegion(region string) (string, error) {
	host, err := lookupRegion(region)
	return host.preview, err
}

// Regions lists the supported region names
func Regions() []string {
	regions := make([]string, 0, len(regionHosts))
	for r := range regionHosts {
		regions = append(regions, r)
	}
	sort.Strings(regions)
	return regions
}

// Config holds Contentstack credentials
type Config struct {
	APIKey        string
	DeliveryToken string
	PreviewToken  string
	Environment   string
	Region        string

	// BaseURL and PreviewBaseURL override the regional hosts
	BaseURL        string
	PreviewBaseURL string
	Timeout        time.Duration
}

// Provider fetches content from the Contentstack delivery API
type Provider struct {
	cfg        Config
	deps       interfaces.Dependencies
	normalizer *normalize.Normalizer
	fields     normalize.FieldMap
}

// New creates a Contentstack provider
func New(cfg Config, deps interfaces.Dependencies, normalizer *normalize.Normalizer) (*Provider, error) {
	for field, value := range map[string]string{
		"CONTENTSTACK_API_KEY":        cfg.APIKey,
		"CONTENTSTACK_DELIVERY_TOKEN": cfg.DeliveryToken,
		"CONTENTSTACK_ENVIRONMENT":    cfg.Environment,
	} {
		if value == "" {
			return nil, &errors.ValidationError{Field: field, Message: "is required"}
		}
	}
	if deps.HTTPClient == nil {
		return nil, fmt.Errorf("contentstack provider requires an HTTP client")
	}
	host, err := lookupRegion(cfg.Region)
	if err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = host.delivery
	}
	if cfg.PreviewBaseURL == "" {
		cfg.PreviewBaseURL = host.preview
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	cfg.PreviewBaseURL = strings.TrimRight(cfg.PreviewBaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = provider.DefaultTimeout
	}
	if normalizer == nil {
		normalizer = normalize.NewNormalizer(nil, deps.Logger)
	}

	return &Provider{
		cfg:        cfg,
		deps:       deps,
		normalizer: normalizer,
		fields:     normalize.ContentstackFields(),
	}, nil
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return Name
}

// Policy returns the caching policy per resource. Products live on the page entry,
// and the video entry is always fetched fresh.
func (p *Provider) Policy(resource provider.Resource) provider.CachePolicy {
	if resource == provider.ResourceVideo {
		return provider.CachePolicy{NoStore: true}
	}
	return provider.CachePolicy{Tags: []string{provider.TagWebsite}}
}

// FetchPageContent returns the first micro_website_content entry with its images included
func (p *Provider) FetchPageContent(ctx context.Context, draft bool) (*domain.PageContent, error) {
	entry, err := p.firstEntry(ctx, PageContentType, "include[]=images", draft)
	if err != nil {
		return nil, err
	}
	return p.normalizer.NormalizePage(entry, p.fields), nil
}

// FetchVideo returns the first frontify_video_content entry
func (p *Provider) FetchVideo(ctx context.Context, draft bool) (*domain.CanonicalAsset, error) {
	entry, err := p.firstEntry(ctx, VideoContentType, "", draft)
	if err != nil {
		return nil, err
	}
	return p.normalizer.NormalizeVideo(entry, p.fields), nil
}

// FetchProducts returns the product cards attached to the page entry
func (p *Provider) FetchProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error) {
	page, err := p.FetchPageContent(ctx, draft)
	if err != nil || page == nil || len(page.Products) == 0 {
		return nil, err
	}
	return page.Products, nil
}

// firstEntry fetches entries of a content type and returns the first one.
// A missing entry is returned as an empty result. Draft reads use the
// preview host when a preview token is configured and fall back to the
// delivery CDN otherwise.
func (p *Provider) firstEntry(ctx context.Context, contentType, query string, draft bool) (gjson.Result, error) {
	preview := p.usePreview(draft)
	base := p.cfg.BaseURL
	if preview {
		base = p.cfg.PreviewBaseURL
	}
	url := fmt.Sprintf("%s/v3/content_types/%s/entries", base, contentType)
	if query != "" {
		url += "?" + query
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := p.deps.HTTPClient.Get(ctx, url, p.headers(preview))
	if err != nil {
		return gjson.Result{}, provider.Transport(Name, err)
	}

	doc, err := provider.ReadBody(Name, resp)
	if err != nil {
		return gjson.Result{}, err
	}

	if code := doc.Get("error_code"); code.Exists() {
		return gjson.Result{}, &errors.ProviderError{
			Provider: Name,
			Code:     code.String(),
			Message:  doc.Get("error_message").String(),
		}
	}
	if !provider.IsSuccess(resp.StatusCode()) {
		return gjson.Result{}, &errors.TransportError{
			Provider:   Name,
			StatusCode: resp.StatusCode(),
			Err:        errors.ErrUnexpectedStatus,
		}
	}

	entry := doc.Get("entries.0")
	if !entry.Exists() {
		p.debug("No entries found", map[string]interface{}{"content_type": contentType, "draft": draft})
	}
	return entry, nil
}

func (p *Provider) usePreview(draft bool) bool {
	return draft && p.cfg.PreviewToken != ""
}

func (p *Provider) headers(preview bool) map[string]string {
	h := map[string]string{
		"api_key":      p.cfg.APIKey,
		"access_token": p.cfg.DeliveryToken,
		"environment":  p.cfg.Environment,
	}
	if preview {
		h["preview_token"] = p.cfg.PreviewToken
	}
	return h
}

func (p *Provider) debug(msg string, fields map[string]interface{}) {
	if p.deps.Logger == nil {
		return
	}
	fields["provider"] = Name
	p.deps.Logger.Debug(msg, fields)
}
