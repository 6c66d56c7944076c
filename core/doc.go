// Package core contains the business logic for the micro site content API.
// It is framework-agnostic: HTTP, caching, and logging are injected through
// the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: PageContent, ProductCard, and CanonicalAsset view models
// - asset: classifies raw CMS asset payloads and resolves them to one URL
// - normalize: maps a raw CMS entry onto the canonical page model
// - provider: the adapter contract plus the contentful and contentstack adapters
// - page: concurrent page and video fetch with a tag-validated cache
// - revalidate: the publish webhook gateway that marks cache tags stale
// - errors: typed errors (ProviderError, TransportError, ValidationError)
// - interfaces: Cache, TagStore, HTTPClient, and Logger contracts
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      cache,
//	    Tags:       tags,
//	    HTTPClient: client,
//	    Logger:     logger,
//	}
//
//	resolver := asset.NewResolver(asset.WithObserver(asset.LoggerObserver(logger)))
//	normalizer := normalize.NewNormalizer(resolver, logger)
//	cms, err := contentful.New(contentful.Config{SpaceID: id, AccessToken: token}, deps, normalizer)
//	if err != nil {
//	    return err
//	}
//
//	pages := page.NewService(cms, deps)
//	content, err := pages.GetPage(ctx, false)
package core
