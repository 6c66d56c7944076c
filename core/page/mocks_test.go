package page

import (
	"context"
	"errors"
	"sync"
	"time"

	"microsite-api/core/domain"
	"microsite-api/core/provider"
)

// mockProvider counts calls and delegates to func fields
type mockProvider struct {
	mu     sync.Mutex
	calls  map[provider.Resource]int
	policy map[provider.Resource]provider.CachePolicy

	pageFunc     func(ctx context.Context, draft bool) (*domain.PageContent, error)
	videoFunc    func(ctx context.Context, draft bool) (*domain.CanonicalAsset, error)
	productsFunc func(ctx context.Context, draft bool) ([]domain.ProductCard, error)
}

func newMockProvider() *mockProvider {
	return &mockProvider{
		calls: make(map[provider.Resource]int),
		policy: map[provider.Resource]provider.CachePolicy{
			provider.ResourcePage:     {Tags: []string{provider.TagWebsite}},
			provider.ResourceVideo:    {Tags: []string{provider.TagVideos}},
			provider.ResourceProducts: {Tags: []string{provider.TagProducts}},
		},
	}
}

func (m *mockProvider) count(r provider.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[r]++
}

func (m *mockProvider) callsFor(r provider.Resource) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[r]
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchPageContent(ctx context.Context, draft bool) (*domain.PageContent, error) {
	m.count(provider.ResourcePage)
	if m.pageFunc != nil {
		return m.pageFunc(ctx, draft)
	}
	return nil, nil
}

func (m *mockProvider) FetchVideo(ctx context.Context, draft bool) (*domain.CanonicalAsset, error) {
	m.count(provider.ResourceVideo)
	if m.videoFunc != nil {
		return m.videoFunc(ctx, draft)
	}
	return nil, nil
}

func (m *mockProvider) FetchProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error) {
	m.count(provider.ResourceProducts)
	if m.productsFunc != nil {
		return m.productsFunc(ctx, draft)
	}
	return nil, nil
}

func (m *mockProvider) Policy(resource provider.Resource) provider.CachePolicy {
	return m.policy[resource]
}

// mockCache is an in-memory Cache
type mockCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockTagStore keeps the latest stale mark per tag
type mockTagStore struct {
	mu    sync.Mutex
	marks map[string]time.Time
	err   error
}

func newMockTagStore() *mockTagStore {
	return &mockTagStore{marks: make(map[string]time.Time)}
}

func (m *mockTagStore) MarkStale(ctx context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks[tag] = time.Now()
	return nil
}

func (m *mockTagStore) IsStale(ctx context.Context, tag string, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	mark, ok := m.marks[tag]
	return ok && !mark.Before(since), nil
}

// mockRecorder collects fetch outcomes
type mockRecorder struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *mockRecorder) RecordFetch(providerName string, resource provider.Resource, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, string(resource)+":"+outcome)
}

// mockLogger collects warnings
type mockLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
