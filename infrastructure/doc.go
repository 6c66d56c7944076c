// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as caching, HTTP communication, logging, and metrics.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: go-cache backed page cache and tag store
// - cache/redis: Redis page cache and tag store (Lua max-update for marks)
// - cache/sqlite: SQLite page cache and tag store for single-node persistence
// - http/restyhttp: resty client with retries, timeouts, and request logging
// - logger/structured: logrus logger with optional lumberjack rotation
// - metrics: Prometheus counters for resolutions, fetches, and revalidations
//
// Every cache package exports both a Cache and a TagStore. The two must come
// from the same backend in a multi-instance deployment so that a webhook
// received by one instance invalidates pages cached by all of them.
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "page:contentful:page", payload, time.Hour)
//
//	tags := memory.NewTagStore()
//	err = tags.MarkStale(ctx, "website")
//	stale, err := tags.IsStale(ctx, "website", fetchedAt)
//
// # HTTP Client
//
// Retries cover network errors and 5xx responses:
//
//	client := restyhttp.NewClient(10*time.Second, logger)
//	resp, err := client.Post(ctx, endpoint, body, headers)
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "info", Format: "json"})
//	logger.Info("Page served", map[string]interface{}{
//	    "provider": "contentful",
//	    "cached":   true,
//	})
package infrastructure
