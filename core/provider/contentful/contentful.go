// ABOUTME: Contentful GraphQL adapter for page, video and product content
// ABOUTME: Selects the preview token in draft mode and maps GraphQL errors onto provider errors

package contentful

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"microsite-api/core/domain"
	"microsite-api/core/errors"
	"microsite-api/core/interfaces"
	"microsite-api/core/normalize"
	"microsite-api/core/provider"
)

// Name is the provider identifier used in logs and cache keys
const Name = "contentful"

// DefaultEndpoint is the Contentful GraphQL content API
const DefaultEndpoint = "https://graphql.contentful.com/content/v1/spaces"

const (
	pageQuery = `query {
  microWebsiteContentCollection(limit: 1, preview: %t) {
    items {
      heading
      subHeading
      headingDescription
      imagesCollection {
        items {
          title
          image
          description
        }
      }
    }
  }
}`

	videoQuery = `query {
  videoCollection(limit: 1, preview: %t) {
    items {
      name
      video
    }
  }
}`

	productsQuery = `query {
  productCollection(preview: %t) {
    items {
      title
      image
      description
    }
  }
}`
)

// Config holds Contentful credentials
type Config struct {
	SpaceID      string
	AccessToken  string
	PreviewToken string
	Environment  string

	// Endpoint overrides DefaultEndpoint
	Endpoint string
	Timeout  time.Duration
}

// Provider fetches content from the Contentful GraphQL API
type Provider struct {
	cfg        Config
	deps       interfaces.Dependencies
	normalizer *normalize.Normalizer
	fields     normalize.FieldMap
}

// New creates a Contentful provider
func New(cfg Config, deps interfaces.Dependencies, normalizer *normalize.Normalizer) (*Provider, error) {
	if cfg.SpaceID == "" {
		return nil, &errors.ValidationError{Field: "CONTENTFUL_SPACE_ID", Message: "is required"}
	}
	if cfg.AccessToken == "" {
		return nil, &errors.ValidationError{Field: "CONTENTFUL_ACCESS_TOKEN", Message: "is required"}
	}
	if deps.HTTPClient == nil {
		return nil, fmt.Errorf("contentful provider requires an HTTP client")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Environment == "" {
		cfg.Environment = "master"
	}
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
		fields:     normalize.ContentfulFields(),
	}, nil
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return Name
}

// Policy returns the cache tags for each resource. Contentful content is always cacheable.
func (p *Provider) Policy(resource provider.Resource) provider.CachePolicy {
	switch resource {
	case provider.ResourceVideo:
		return provider.CachePolicy{Tags: []string{provider.TagVideos}}
	case provider.ResourceProducts:
		return provider.CachePolicy{Tags: []string{provider.TagProducts}}
	default:
		return provider.CachePolicy{Tags: []string{provider.TagWebsite}}
	}
}

// FetchPageContent returns the first microWebsiteContent entry
func (p *Provider) FetchPageContent(ctx context.Context, draft bool) (*domain.PageContent, error) {
	items, err := p.query(ctx, pageQuery, "microWebsiteContentCollection", draft)
	if err != nil {
		return nil, err
	}
	return p.normalizer.NormalizePage(items.Get("0"), p.fields), nil
}

// FetchVideo returns the first video entry
func (p *Provider) FetchVideo(ctx context.Context, draft bool) (*domain.CanonicalAsset, error) {
	items, err := p.query(ctx, videoQuery, "videoCollection", draft)
	if err != nil {
		return nil, err
	}
	return p.normalizer.NormalizeVideo(items.Get("0"), p.fields), nil
}

// FetchProducts returns every product entry
func (p *Provider) FetchProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error) {
	items, err := p.query(ctx, productsQuery, "productCollection", draft)
	if err != nil {
		return nil, err
	}
	if !items.IsArray() || len(items.Array()) == 0 {
		return nil, nil
	}
	return p.normalizer.NormalizeProducts(items, p.fields), nil
}

// query runs a GraphQL query and returns the collection's items.
// Missing items yield an empty result, never an error.
func (p *Provider) query(ctx context.Context, template, collection string, draft bool) (gjson.Result, error) {
	token, preview := p.token(draft)

	body, err := json.Marshal(map[string]string{"query": fmt.Sprintf(template, preview)})
	if err != nil {
		return gjson.Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	resp, err := p.deps.HTTPClient.Post(ctx, p.url(), bytes.NewReader(body), map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	})
	if err != nil {
		return gjson.Result{}, provider.Transport(Name, err)
	}

	doc, err := provider.ReadBody(Name, resp)
	if err != nil {
		return gjson.Result{}, err
	}

	data := doc.Get("data." + collection)
	if gqlErrors := doc.Get("errors"); gqlErrors.IsArray() && len(gqlErrors.Array()) > 0 {
		if !data.IsObject() {
			return gjson.Result{}, envelopeError(gqlErrors)
		}
		p.warn("GraphQL returned partial data with errors", map[string]interface{}{
			"collection": collection,
			"error":      gqlErrors.Get("0.message").String(),
		})
	}

	if !provider.IsSuccess(resp.StatusCode()) {
		if !data.IsObject() {
			return gjson.Result{}, &errors.TransportError{
				Provider:   Name,
				StatusCode: resp.StatusCode(),
				Err:        errors.ErrUnexpectedStatus,
			}
		}
	}

	items := data.Get("items")
	if !items.IsArray() || len(items.Array()) == 0 {
		p.debug("No entries found", map[string]interface{}{"collection": collection, "draft": draft})
	}
	return items, nil
}

// token picks the credential for the requested mode. Draft without a preview
// token falls back to published content.
func (p *Provider) token(draft bool) (string, bool) {
	if !draft {
		return p.cfg.AccessToken, false
	}
	if p.cfg.PreviewToken == "" {
		p.warn("Draft requested without a preview token, serving published content", nil)
		return p.cfg.AccessToken, false
	}
	return p.cfg.PreviewToken, true
}

func (p *Provider) url() string {
	return fmt.Sprintf("%s/%s/environments/%s", p.cfg.Endpoint, p.cfg.SpaceID, p.cfg.Environment)
}

func envelopeError(gqlErrors gjson.Result) error {
	first := gqlErrors.Get("0")
	message := first.Get("message").String()
	if message == "" {
		message = "unknown GraphQL error"
	}
	return &errors.ProviderError{
		Provider: Name,
		Code:     first.Get("extensions.contentful.code").String(),
		Message:  message,
	}
}

func (p *Provider) warn(msg string, fields map[string]interface{}) {
	if p.deps.Logger != nil {
		p.deps.Logger.Warn(msg, withProvider(fields))
	}
}

func (p *Provider) debug(msg string, fields map[string]interface{}) {
	if p.deps.Logger != nil {
		p.deps.Logger.Debug(msg, withProvider(fields))
	}
}

func withProvider(fields map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{"provider": Name}
	for k, v := range fields {
		out[k] = v
	}
	return out
}
