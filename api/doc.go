// Package api provides the HTTP API layer for the micro site content service.
// It uses the Huma framework to provide automatic OpenAPI documentation,
// request/response validation, and a clean handler interface.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: Huma API configuration and setup
// - handlers/: HTTP request handlers
// - dto/: Data Transfer Objects for responses
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
//	GET  /page?draft=bool      page content or a placeholder
//	GET  /products?draft=bool  product cards or a placeholder
//	POST /api/revalidate       CMS publish webhook (x-vercel-reval-key)
//	GET  /api/revalidate       webhook liveness
//	GET  /healthz, /readyz     probes
//	GET  /metrics              Prometheus metrics when enabled
//
// Content endpoints always answer 200. A missing entry renders the "empty"
// placeholder and a CMS failure renders the "unavailable" one; the
// underlying error is logged, never returned.
//
// # Usage Example
//
//	cfg := api.APIConfig{
//	    Logger:     logger,
//	    RateLimit:  100,
//	    RateWindow: time.Minute,
//	    Metrics:    metricsService.Handler(),
//	}
//	humaAPI, router := api.NewAPIWithMiddleware(cfg)
//
//	handlers.NewPageHandler(pageService, logger).RegisterRoutes(humaAPI)
//	handlers.NewRevalidateHandler(gateway, metricsService).RegisterRoutes(humaAPI)
//
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Non-content endpoints use the RFC 7807 error format produced by Huma.
// Domain errors are mapped by toHumaError: validation to 400, provider
// errors to 502, transport errors to 503 or 504 on timeout.
package api
