// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines server, CMS provider, cache, logging and revalidation settings

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported CMS providers
const (
	ProviderContentful   = "contentful"
	ProviderContentstack = "contentstack"
)

// Supported cache backends
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheSQLite = "sqlite"
)

var contentstackRegions = map[string]bool{"us": true, "eu": true, "azure-na": true, "azure-eu": true}

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// CMS selects and configures the content provider
	CMS CMSConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Log contains logging configuration
	Log LogConfig

	// RevalidateSecret authenticates publish webhooks
	RevalidateSecret string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per client per minute
	RateLimit int
}

// CMSConfig holds provider selection and credentials
type CMSConfig struct {
	// Provider is contentful or contentstack
	Provider string

	// Timeout bounds each provider call
	Timeout time.Duration

	Contentful   ContentfulConfig
	Contentstack ContentstackConfig
}

// ContentfulConfig holds Contentful credentials
type ContentfulConfig struct {
	SpaceID      string
	AccessToken  string
	PreviewToken string
	Environment  string
}

// ContentstackConfig holds Contentstack credentials
type ContentstackConfig struct {
	APIKey        string
	DeliveryToken string
	PreviewToken  string
	Environment   string
	Region        string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (memory/redis/sqlite)
	Type string

	// TTL bounds how long cached content is kept without invalidation
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLitePath is the database file for the sqlite backend
	SQLitePath string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// LoadDotEnv loads variables from the given files, or .env.local and .env by default.
// Missing files are skipped and variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env.local", ".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 100),
		},
		CMS: CMSConfig{
			Provider: strings.ToLower(getEnvOrDefault("CMS_PROVIDER", ProviderContentful)),
			Timeout:  getEnvAsDurationOrDefault("CMS_TIMEOUT", 10*time.Second),
			Contentful: ContentfulConfig{
				SpaceID:      os.Getenv("CONTENTFUL_SPACE_ID"),
				AccessToken:  os.Getenv("CONTENTFUL_ACCESS_TOKEN"),
				PreviewToken: os.Getenv("CONTENTFUL_PREVIEW_ACCESS_TOKEN"),
				Environment:  getEnvOrDefault("CONTENTFUL_ENVIRONMENT", "master"),
			},
			Contentstack: ContentstackConfig{
				APIKey:        os.Getenv("CONTENTSTACK_API_KEY"),
				DeliveryToken: os.Getenv("CONTENTSTACK_DELIVERY_TOKEN"),
				PreviewToken:  os.Getenv("CONTENTSTACK_PREVIEW_TOKEN"),
				Environment:   os.Getenv("CONTENTSTACK_ENVIRONMENT"),
				Region:        strings.ToLower(getEnvOrDefault("CONTENTSTACK_REGION", "us")),
			},
		},
		Cache: CacheConfig{
			Type: strings.ToLower(getEnvOrDefault("CACHE_TYPE", CacheMemory)),
			TTL:  time.Duration(getEnvAsIntOrDefault("PAGE_CACHE_TTL", 3600)) * time.Second,
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "cache.db"),
		},
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   os.Getenv("LOG_FILE"),
		},
		RevalidateSecret: getEnvOrDefault("CONTENTFUL_REVALIDATE_SECRET", os.Getenv("REVALIDATE_SECRET")),
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault accepts Go durations ("5s") or whole seconds ("5")
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1 request per minute")
	}

	if c.CMS.Timeout <= 0 {
		return errors.New("CMS timeout must be positive")
	}

	switch c.CMS.Provider {
	case ProviderContentful:
		if c.CMS.Contentful.SpaceID == "" || c.CMS.Contentful.AccessToken == "" {
			return errors.New("contentful requires CONTENTFUL_SPACE_ID and CONTENTFUL_ACCESS_TOKEN")
		}
	case ProviderContentstack:
		cs := c.CMS.Contentstack
		if cs.APIKey == "" || cs.DeliveryToken == "" || cs.Environment == "" {
			return errors.New("contentstack requires CONTENTSTACK_API_KEY, CONTENTSTACK_DELIVERY_TOKEN and CONTENTSTACK_ENVIRONMENT")
		}
		if !contentstackRegions[cs.Region] {
			return fmt.Errorf("unknown contentstack region %q", cs.Region)
		}
	default:
		return fmt.Errorf("CMS provider must be '%s' or '%s'", ProviderContentful, ProviderContentstack)
	}

	switch c.Cache.Type {
	case CacheMemory:
	case CacheRedis:
		if c.Cache.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis cache")
		}
	case CacheSQLite:
		if c.Cache.SQLitePath == "" {
			return errors.New("sqlite path cannot be empty when using sqlite cache")
		}
	default:
		return errors.New("cache type must be 'memory', 'redis' or 'sqlite'")
	}

	return nil
}
