// ABOUTME: TagStore interface for tag-based cache staleness tracking
// ABOUTME: Shared by the invalidation gateway (writer) and the page service (reader)

package interfaces

import (
	"context"
	"time"
)

// TagStore records when cache tags were last marked stale.
//
// MarkStale is monotonic: the stored mark only ever moves forward, so marking the
// same tag repeatedly has the same effect as marking it once. Implementations must be
// safe for concurrent use.
type TagStore interface {
	// MarkStale marks tag as stale as of now.
	MarkStale(ctx context.Context, tag string) error

	// IsStale reports whether tag was marked stale at or after since.
	// A tag that was never marked is not stale.
	IsStale(ctx context.Context, tag string, since time.Time) (bool, error)
}

// PathTag returns the tag under which a served path is tracked
func PathTag(path string) string {
	return "path:" + path
}
