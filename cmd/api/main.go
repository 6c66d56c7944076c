// ABOUTME: Main entry point for the micro site content API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microsite-api/api"
	"microsite-api/api/handlers"
	"microsite-api/core/asset"
	"microsite-api/core/interfaces"
	"microsite-api/core/normalize"
	"microsite-api/core/page"
	"microsite-api/core/revalidate"
	"microsite-api/infrastructure/http/restyhttp"
	"microsite-api/infrastructure/logger/structured"
	"microsite-api/infrastructure/metrics"
	"microsite-api/pkg/config"
	"microsite-api/pkg/featureflags"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env files: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})

	flags := featureflags.NewEnvManager("FEATURE_")
	ctx := context.Background()

	logger.Info("Starting Micro Site Content API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"provider":   cfg.CMS.Provider,
		"cache_type": cfg.Cache.Type,
		"flags":      flags.GetAllFlags(),
	})
	if cfg.RevalidateSecret == "" {
		logger.Warn("No revalidation secret configured, every webhook will be rejected", nil)
	}

	metricsService := metrics.NewService(flags.IsEnabled(ctx, featureflags.MetricsEnabled))

	backend, err := newStores(cfg.Cache, logger)
	if err != nil {
		logger.Error("Failed to create cache", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer backend.Close()

	deps := interfaces.Dependencies{
		Cache:      backend.cache,
		Tags:       backend.tags,
		HTTPClient: restyhttp.NewClient(cfg.CMS.Timeout, logger),
		Logger:     logger,
	}

	resolver := asset.NewResolver(asset.WithObserver(asset.Observers{
		asset.LoggerObserver(logger),
		metricsService,
	}))
	normalizer := normalize.NewNormalizer(resolver, logger)

	cms, err := newProvider(cfg.CMS, deps, normalizer)
	if err != nil {
		logger.Error("Failed to create CMS provider", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	pageService := page.NewService(cms, deps,
		page.WithFlags(flags),
		page.WithRecorder(metricsService),
		page.WithTTL(cfg.Cache.TTL),
	)
	gateway := revalidate.NewGateway(cfg.RevalidateSecret, deps)

	// Create API with middleware
	apiConfig := api.APIConfig{
		Logger:     logger,
		RateWindow: time.Minute,
	}
	if flags.IsEnabled(ctx, featureflags.RateLimitEnabled) {
		apiConfig.RateLimit = cfg.Server.RateLimit
	}
	if metricsService.Enabled() {
		apiConfig.Metrics = metricsService.Handler()
	}
	humaAPI, router := api.NewAPIWithMiddleware(apiConfig)

	// Create and register handlers
	handlers.NewPageHandler(pageService, logger).RegisterRoutes(humaAPI)
	handlers.NewRevalidateHandler(gateway, metricsService).RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.CMS.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped", nil)
}
