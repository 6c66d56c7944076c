// ABOUTME: Page service composes page content and video from the configured provider
// ABOUTME: Caches published results in tagged envelopes that the invalidation gateway can expire

package page

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"microsite-api/core/domain"
	"microsite-api/core/interfaces"
	"microsite-api/core/provider"
	"microsite-api/pkg/featureflags"
)

// DefaultTTL bounds how long a cached envelope is kept without invalidation
const DefaultTTL = time.Hour

// Fetch outcomes reported to a Recorder
const (
	OutcomeHit    = "hit"
	OutcomeMiss   = "miss"
	OutcomeBypass = "bypass"
	OutcomeError  = "error"
)

// Recorder receives one outcome per resource fetch
type Recorder interface {
	RecordFetch(providerName string, resource provider.Resource, outcome string)
}

// envelope is the cached form of a fetched resource
type envelope struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Tags      []string        `json:"tags"`
	Data      json.RawMessage `json:"data"`
}

// Service serves page content for a single provider
type Service struct {
	provider provider.Provider
	deps     interfaces.Dependencies
	flags    featureflags.Manager
	recorder Recorder
	ttl      time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithFlags sets the feature flag manager consulted for caching and video
func WithFlags(flags featureflags.Manager) Option {
	return func(s *Service) {
		s.flags = flags
	}
}

// WithRecorder sets the fetch outcome recorder
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithTTL sets the cache TTL for envelopes
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewService creates a page service
func NewService(p provider.Provider, deps interfaces.Dependencies, opts ...Option) *Service {
	s := &Service{
		provider: p,
		deps:     deps,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProviderName returns the name of the configured provider
func (s *Service) ProviderName() string {
	return s.provider.Name()
}

// GetPage fetches the page entry and the featured video concurrently and waits for both.
// A page failure is returned; a video failure only drops the video. A nil page with a
// nil error means no content is configured.
func (s *Service) GetPage(ctx context.Context, draft bool) (*domain.PageContent, error) {
	var (
		page  *domain.PageContent
		video *domain.CanonicalAsset
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		page, err = fetch(gctx, s, provider.ResourcePage, draft, s.provider.FetchPageContent)
		return err
	})

	if s.enabled(ctx, featureflags.VideoEnabled) {
		g.Go(func() error {
			v, err := fetch(gctx, s, provider.ResourceVideo, draft, s.provider.FetchVideo)
			if err != nil {
				s.log().Warn("Video fetch failed, rendering page without video", map[string]interface{}{
					"provider": s.provider.Name(),
					"draft":    draft,
					"error":    err.Error(),
				})
				return nil
			}
			video = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}
	if video != nil {
		page = page.WithVideo(video)
	}
	return page, nil
}

// GetProducts fetches the product cards
func (s *Service) GetProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error) {
	return fetch(ctx, s, provider.ResourceProducts, draft, s.provider.FetchProducts)
}

// fetch serves a resource from the cache when a fresh envelope exists, otherwise from the
// provider. Draft requests and no-store resources never touch the cache.
func fetch[T any](ctx context.Context, s *Service, resource provider.Resource, draft bool, load func(context.Context, bool) (T, error)) (T, error) {
	policy := s.provider.Policy(resource)

	if draft || policy.NoStore || s.deps.Cache == nil || !s.enabled(ctx, featureflags.CacheEnabled) {
		value, err := load(ctx, draft)
		s.record(resource, outcome(err, OutcomeBypass))
		return value, err
	}

	key := s.cacheKey(resource)
	if value, ok := cached[T](ctx, s, key); ok {
		s.record(resource, OutcomeHit)
		return value, nil
	}

	fetchedAt := time.Now()
	value, err := load(ctx, draft)
	s.record(resource, outcome(err, OutcomeMiss))
	if err != nil {
		return value, err
	}

	s.store(ctx, key, fetchedAt, policy.Tags, value)
	return value, nil
}

// cached decodes a fresh envelope stored under key
func cached[T any](ctx context.Context, s *Service, key string) (T, bool) {
	var zero T

	raw, err := s.deps.Cache.Get(ctx, key)
	if err != nil || raw == nil {
		return zero, false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log().Warn("Discarding undecodable cache envelope", map[string]interface{}{"key": key, "error": err.Error()})
		return zero, false
	}
	if !s.fresh(ctx, env) {
		return zero, false
	}

	var value T
	if err := json.Unmarshal(env.Data, &value); err != nil {
		s.log().Warn("Discarding undecodable cached value", map[string]interface{}{"key": key, "error": err.Error()})
		return zero, false
	}
	return value, true
}

// fresh reports whether none of the envelope's tags were marked stale after it was fetched
func (s *Service) fresh(ctx context.Context, env envelope) bool {
	if s.deps.Tags == nil {
		return true
	}
	for _, tag := range env.Tags {
		stale, err := s.deps.Tags.IsStale(ctx, tag, env.FetchedAt)
		if err != nil {
			s.log().Warn("Tag lookup failed, treating cache entry as stale", map[string]interface{}{"tag": tag, "error": err.Error()})
			return false
		}
		if stale {
			return false
		}
	}
	return true
}

func (s *Service) store(ctx context.Context, key string, fetchedAt time.Time, tags []string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	env := envelope{
		FetchedAt: fetchedAt,
		Tags:      append(append([]string{}, tags...), interfaces.PathTag("/")),
		Data:      data,
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}

	if err := s.deps.Cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.log().Warn("Failed to cache content", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (s *Service) cacheKey(resource provider.Resource) string {
	return fmt.Sprintf("page:%s:%s", s.provider.Name(), resource)
}

// enabled reads a feature flag; without a manager every feature is on
func (s *Service) enabled(ctx context.Context, flag featureflags.FeatureFlag) bool {
	if s.flags == nil {
		return true
	}
	return s.flags.IsEnabled(ctx, flag)
}

func (s *Service) record(resource provider.Resource, result string) {
	if s.recorder != nil {
		s.recorder.RecordFetch(s.provider.Name(), resource, result)
	}
}

func (s *Service) log() interfaces.Logger {
	if s.deps.Logger == nil {
		return nopLogger{}
	}
	return s.deps.Logger
}

func outcome(err error, success string) string {
	if err != nil {
		return OutcomeError
	}
	return success
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{}) {}
func (nopLogger) Info(string, map[string]interface{})  {}
func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}
