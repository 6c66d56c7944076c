// ABOUTME: Component construction for the API server
// ABOUTME: Selects the cache backend and CMS provider from configuration

package main

import (
	"fmt"
	"io"

	"microsite-api/core/interfaces"
	"microsite-api/core/normalize"
	"microsite-api/core/provider"
	"microsite-api/core/provider/contentful"
	"microsite-api/core/provider/contentstack"
	"microsite-api/infrastructure/cache/memory"
	rediscache "microsite-api/infrastructure/cache/redis"
	"microsite-api/infrastructure/cache/sqlite"
	"microsite-api/pkg/config"
)

// stores pairs the page cache with the tag store from the same backend
type stores struct {
	cache  interfaces.Cache
	tags   interfaces.TagStore
	closer io.Closer
}

func (s stores) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// newStores builds the cache backend. A Redis connection failure falls back
// to memory so a single instance can still serve.
func newStores(cfg config.CacheConfig, logger interfaces.Logger) (stores, error) {
	switch cfg.Type {
	case config.CacheRedis:
		client, err := rediscache.Connect(cfg.Redis)
		if err != nil {
			logger.Error("Failed to connect to Redis, falling back to memory", map[string]interface{}{
				"address": cfg.Redis.Address,
				"error":   err.Error(),
			})
			return memoryStores(logger), nil
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address": cfg.Redis.Address,
		})
		return stores{
			cache:  rediscache.NewRedisCacheFromClient(client),
			tags:   rediscache.NewTagStore(client),
			closer: client,
		}, nil

	case config.CacheSQLite:
		client, err := sqlite.NewSQLiteCache(cfg.SQLitePath)
		if err != nil {
			return stores{}, fmt.Errorf("open sqlite cache: %w", err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.SQLitePath,
		})
		return stores{cache: client, tags: client, closer: client}, nil

	default:
		return memoryStores(logger), nil
	}
}

func memoryStores(logger interfaces.Logger) stores {
	logger.Info("Using memory cache", nil)
	return stores{
		cache: memory.NewMemoryCache(),
		tags:  memory.NewTagStore(),
	}
}

// newProvider builds the adapter selected by CMS_PROVIDER
func newProvider(cfg config.CMSConfig, deps interfaces.Dependencies, normalizer *normalize.Normalizer) (provider.Provider, error) {
	switch cfg.Provider {
	case config.ProviderContentful:
		p, err := contentful.New(contentful.Config{
			SpaceID:      cfg.Contentful.SpaceID,
			AccessToken:  cfg.Contentful.AccessToken,
			PreviewToken: cfg.Contentful.PreviewToken,
			Environment:  cfg.Contentful.Environment,
			Timeout:      cfg.Timeout,
		}, deps, normalizer)
		if err != nil {
			return nil, err
		}
		return p, nil

	case config.ProviderContentstack:
		p, err := contentstack.New(contentstack.Config{
			APIKey:        cfg.Contentstack.APIKey,
			DeliveryToken: cfg.Contentstack.DeliveryToken,
			PreviewToken:  cfg.Contentstack.PreviewToken,
			Environment:   cfg.Contentstack.Environment,
			Region:        cfg.Contentstack.Region,
			Timeout:       cfg.Timeout,
		}, deps, normalizer)
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, fmt.Errorf("unknown CMS provider %q", cfg.Provider)
	}
}
