// ABOUTME: Entry normalizer maps a raw CMS entry onto the canonical PageContent view model
// ABOUTME: Mis-shaped nested fields degrade to absent values instead of failing the entry

package normalize

import (
	"strings"

	"github.com/tidwall/gjson"

	"microsite-api/core/asset"
	"microsite-api/core/domain"
	"microsite-api/core/interfaces"
)

// Normalizer builds canonical view models from raw entries
type Normalizer struct {
	resolver *asset.Resolver
	logger   interfaces.Logger
}

// NewNormalizer creates a normalizer. A nil resolver selects the default resolver.
func NewNormalizer(resolver *asset.Resolver, logger interfaces.Logger) *Normalizer {
	if resolver == nil {
		resolver = asset.NewResolver()
	}
	return &Normalizer{
		resolver: resolver,
		logger:   logger,
	}
}

// NormalizePage converts the root page entry. It returns nil when the entry is absent,
// which callers treat as "no content configured" rather than an error.
func (n *Normalizer) NormalizePage(entry gjson.Result, fields FieldMap) *domain.PageContent {
	if !entry.IsObject() {
		return nil
	}

	return &domain.PageContent{
		Heading:     text(entry, fields.Heading),
		SubHeading:  text(entry, fields.SubHeading),
		Description: text(entry, fields.Description),
		Products:    n.NormalizeProducts(first(entry, fields.Products), fields),
	}
}

// NormalizeProducts converts a product list. Non-object elements are skipped;
// anything that is not an array yields an empty list.
func (n *Normalizer) NormalizeProducts(items gjson.Result, fields FieldMap) []domain.ProductCard {
	products := make([]domain.ProductCard, 0)
	if !items.IsArray() {
		if items.Exists() && items.Type != gjson.Null {
			n.debug("Product list is not an array", fields, nil)
		}
		return products
	}

	for i, item := range items.Array() {
		if !item.IsObject() {
			n.debug("Skipping malformed product", fields, map[string]interface{}{"index": i})
			continue
		}
		products = append(products, n.normalizeProduct(item, fields))
	}
	return products
}

func (n *Normalizer) normalizeProduct(item gjson.Result, fields FieldMap) domain.ProductCard {
	return domain.ProductCard{
		Title:       text(item, fields.ProductTitle),
		Description: text(item, fields.ProductDescription),
		Image:       n.resolver.Resolve(first(item, fields.ProductImage), domain.AssetKindImage),
	}
}

// NormalizeVideo converts a video entry. A rich-text video field is reduced to its
// recognized embed before resolution. The entry title backs up a missing asset title.
func (n *Normalizer) NormalizeVideo(entry gjson.Result, fields FieldMap) *domain.CanonicalAsset {
	if !entry.IsObject() {
		return nil
	}

	payload := first(entry, fields.Video)
	if embedded, ok := n.resolver.ExtractEmbed(payload); ok {
		payload = embedded
	}

	video := n.resolver.Resolve(payload, domain.AssetKindVideo)
	if video == nil {
		n.debug("Video entry did not resolve to a playable asset", fields, nil)
		return nil
	}
	if video.Title == "" {
		video.Title = text(entry, fields.VideoTitle)
	}
	return video
}

func (n *Normalizer) debug(msg string, fields FieldMap, extra map[string]interface{}) {
	if n.logger == nil {
		return
	}
	logFields := map[string]interface{}{"provider": fields.Provider}
	for k, v := range extra {
		logFields[k] = v
	}
	n.logger.Debug(msg, logFields)
}

// first returns the first path that exists with a non-null value
func first(entry gjson.Result, paths []string) gjson.Result {
	for _, p := range paths {
		if v := entry.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

// text returns the first non-blank string among paths
func text(entry gjson.Result, paths []string) string {
	for _, p := range paths {
		if v := entry.Get(p); v.Type == gjson.String && strings.TrimSpace(v.Str) != "" {
			return v.Str
		}
	}
	return ""
}
