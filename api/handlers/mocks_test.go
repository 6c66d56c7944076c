package handlers

import (
	"context"
	"time"

	"microsite-api/core/domain"
	"microsite-api/core/revalidate"
)

// mockPageService is a mock implementation of the page service
type mockPageService struct {
	getPageFunc     func(ctx context.Context, draft bool) (*domain.PageContent, error)
	getProductsFunc func(ctx context.Context, draft bool) ([]domain.ProductCard, error)
	drafts          []bool
}

func (m *mockPageService) GetPage(ctx context.Context, draft bool) (*domain.PageContent, error) {
	m.drafts = append(m.drafts, draft)
	if m.getPageFunc != nil {
		return m.getPageFunc(ctx, draft)
	}
	return nil, nil
}

func (m *mockPageService) GetProducts(ctx context.Context, draft bool) ([]domain.ProductCard, error) {
	m.drafts = append(m.drafts, draft)
	if m.getProductsFunc != nil {
		return m.getProductsFunc(ctx, draft)
	}
	return nil, nil
}

func (m *mockPageService) ProviderName() string {
	return "contentful"
}

// mockTagStore records marks and can be made to fail
type mockTagStore struct {
	marked []string
	err    error
}

func (m *mockTagStore) MarkStale(ctx context.Context, tag string) error {
	if m.err != nil {
		return m.err
	}
	m.marked = append(m.marked, tag)
	return nil
}

func (m *mockTagStore) IsStale(ctx context.Context, tag string, since time.Time) (bool, error) {
	return false, nil
}

// mockRevalidationRecorder captures recorded outcomes
type mockRevalidationRecorder struct {
	records [][2]string
}

func (m *mockRevalidationRecorder) RecordRevalidation(state, status string) {
	m.records = append(m.records, [2]string{state, status})
}

// stubRevalidator returns a fixed outcome
type stubRevalidator struct {
	outcome revalidate.Outcome
	live    revalidate.Liveness
	signals []revalidate.Signal
}

func (s *stubRevalidator) Handle(ctx context.Context, sig revalidate.Signal) revalidate.Outcome {
	s.signals = append(s.signals, sig)
	return s.outcome
}

func (s *stubRevalidator) Liveness() revalidate.Liveness {
	return s.live
}

// mockLogger records log entries
type mockLogger struct {
	warnings []string
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.warnings = append(m.warnings, msg)
}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}
