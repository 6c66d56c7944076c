package memory

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// TagStore implements interfaces.TagStore in process memory
type TagStore struct {
	mu    sync.Mutex
	marks *cache.Cache
	now   func() time.Time
}

// NewTagStore creates an empty tag store
func NewTagStore() *TagStore {
	return &TagStore{
		marks: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

// MarkStale records now as the tag's stale mark unless a later mark exists
func (s *TagStore) MarkStale(ctx context.Context, tag string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if prev, ok := s.mark(tag); ok && !now.After(prev) {
		return nil
	}
	s.marks.Set(tag, now, cache.NoExpiration)
	return nil
}

// IsStale reports whether tag was marked at or after since
func (s *TagStore) IsStale(ctx context.Context, tag string, since time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mark, ok := s.mark(tag)
	return ok && !mark.Before(since), nil
}

func (s *TagStore) mark(tag string) (time.Time, bool) {
	v, ok := s.marks.Get(tag)
	if !ok {
		return time.Time{}, false
	}
	t, ok := v.(time.Time)
	return t, ok
}
