package sqlite

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSQLiteCache_SetAndGet(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	value := []byte(`{"fetchedAt":"2026-01-01T00:00:00Z","tags":["website"],"data":{"heading":"Hi"}}`)
	if err := cache.Set(ctx, "page:contentful:page", value, time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "page:contentful:page")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get() = %s, want %s", got, value)
	}
}

func TestSQLiteCache_Get_Missing(t *testing.T) {
	cache := newTestClient(t)

	_, err := cache.Get(context.Background(), "missing")

	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get() error = %v, want ErrCacheMiss", err)
	}
}

func TestSQLiteCache_Expiry(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	cache.Set(ctx, "short", []byte("v"), time.Minute)
	cache.Set(ctx, "forever", []byte("v"), 0)

	now = now.Add(2 * time.Minute)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired key: error = %v, want ErrCacheMiss", err)
	}
	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("zero TTL key should not expire, got %v", err)
	}

	cache.cleanup()
	stats, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats["total_entries"] != 1 {
		t.Errorf("total_entries = %v after cleanup, want 1", stats["total_entries"])
	}
}

func TestSQLiteCache_Delete(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	cache.Set(ctx, "key", []byte("v"), time.Hour)
	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := cache.Get(ctx, "key"); err == nil {
		t.Error("deleted key should be gone")
	}
	if err := cache.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete() of missing key error = %v", err)
	}
}

func TestSQLiteCache_Validation(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "", []byte("v"), time.Hour); err == nil {
		t.Error("empty key should be rejected")
	}
	if err := cache.Set(ctx, strings.Repeat("k", maxKeyLength+1), []byte("v"), time.Hour); err == nil {
		t.Error("oversized key should be rejected")
	}
	if err := cache.Set(ctx, "key", nil, time.Hour); err == nil {
		t.Error("empty value should be rejected")
	}
	if err := cache.Set(ctx, "key", make([]byte, maxValueLength+1), time.Hour); err == nil {
		t.Error("oversized value should be rejected")
	}
}

func TestSQLiteCache_KeysAreParameterized(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	keys := []string{
		"key'; DROP TABLE cache; --",
		"key' OR '1'='1",
		"key' UNION SELECT null, null, null--",
		"key\nwith\nnewlines",
		"页面:内容",
	}

	for _, key := range keys {
		if err := cache.Set(ctx, key, []byte(key), time.Hour); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}
	for _, key := range keys {
		got, err := cache.Get(ctx, key)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
		if string(got) != key {
			t.Errorf("Get(%q) = %q", key, got)
		}
	}

	stats, _ := cache.Stats()
	if stats["total_entries"] != len(keys) {
		t.Errorf("total_entries = %v, want %d", stats["total_entries"], len(keys))
	}
}

func TestSQLiteCache_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	first, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatal(err)
	}
	first.Set(ctx, "key", []byte("value"), time.Hour)
	first.MarkStale(ctx, "website")
	first.Close()

	second, err := NewSQLiteCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if got, err := second.Get(ctx, "key"); err != nil || string(got) != "value" {
		t.Errorf("Get() after reopen = %q, %v", got, err)
	}
	if stale, err := second.IsStale(ctx, "website", time.Now().Add(-time.Hour)); err != nil || !stale {
		t.Errorf("IsStale() after reopen = %v, %v", stale, err)
	}
}

func TestSQLiteCache_Clear(t *testing.T) {
	cache := newTestClient(t)
	ctx := context.Background()

	cache.Set(ctx, "a", []byte("1"), time.Hour)
	cache.Set(ctx, "b", []byte("2"), time.Hour)

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	stats, _ := cache.Stats()
	if stats["total_entries"] != 0 {
		t.Errorf("total_entries = %v, want 0", stats["total_entries"])
	}
}
