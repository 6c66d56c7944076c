// ABOUTME: Provider contract shared by the CMS adapters and the page service
// ABOUTME: Declares cache tags and per-resource caching policy for fetched content

package provider

import (
	"context"
	"io"
	"time"

	"github.com/tidwall/gjson"

	"microsite-api/core/domain"
	"microsite-api/core/errors"
	"microsite-api/core/interfaces"
)

// Cache tags understood by the invalidation gateway
const (
	TagWebsite  = "website"
	TagProducts = "products"
	TagVideos   = "videos"
)

// DefaultTimeout bounds a single adapter call when none is configured
const DefaultTimeout = 10 * time.Second

// Resource identifies one kind of content an adapter can fetch
type Resource string

const (
	ResourcePage     Resource = "page"
	ResourceVideo    Resource = "video"
	ResourceProducts Resource = "products"
)

// CachePolicy says how a fetched resource may be cached.
// NoStore resources are fetched fresh on every request.
type CachePolicy struct {
	Tags    []string
	NoStore bool
}

// Provider fetches page content from a single headless CMS.
//
// Zero matching entries is not an error: the fetch returns a nil value and a nil error.
// Envelope failures reported by the CMS are *errors.ProviderError; network, timeout and
// undecodable responses are *errors.TransportError.
type Provider interface {
	// Name identifies the provider in logs and cache keys
	Name() string

	// FetchPageContent returns the first root page entry, normalized
	FetchPageContent(ctx context.Context, draft bool) (*domain.PageContent, error)

	// FetchVideo returns the featured video, normalized
	FetchVideo(ctx context.Context, draft bool) (*domain.CanonicalAsset, error)

	// FetchProducts returns the product cards shown on the page
	FetchProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error)

	// Policy returns the caching policy for a resource
	Policy(resource Resource) CachePolicy
}

// ReadBody drains a response into a gjson document. A body that is not valid JSON is a
// transport failure since no envelope can be recovered from it.
func ReadBody(name string, resp interfaces.Response) (gjson.Result, error) {
	body := resp.Body()
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return gjson.Result{}, &errors.TransportError{Provider: name, StatusCode: resp.StatusCode(), Err: err}
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &errors.TransportError{
			Provider:   name,
			StatusCode: resp.StatusCode(),
			Err:        errors.ErrUndecodableBody,
		}
	}
	return gjson.ParseBytes(raw), nil
}

// Transport wraps a failed round trip as a transport error
func Transport(name string, err error) error {
	return &errors.TransportError{Provider: name, Err: err}
}

// IsSuccess reports whether status is a 2xx code
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
