package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// MarkStale advances the tag's mark to now. MAX keeps the mark monotonic.
func (c *Client) MarkStale(ctx context.Context, tag string) error {
	if err := validateKey(tag); err != nil {
		return err
	}

	query := `
		INSERT INTO tags (tag, marked_at) VALUES (?, ?)
		ON CONFLICT(tag) DO UPDATE SET marked_at = MAX(marked_at, excluded.marked_at)
	`
	if _, err := c.db.ExecContext(ctx, query, tag, c.now().UnixNano()); err != nil {
		return fmt.Errorf("failed to mark tag: %w", err)
	}
	return nil
}

// IsStale reports whether tag was marked at or after since
func (c *Client) IsStale(ctx context.Context, tag string, since time.Time) (bool, error) {
	var markedAt int64
	err := c.db.QueryRowContext(ctx, "SELECT marked_at FROM tags WHERE tag = ?", tag).Scan(&markedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read tag: %w", err)
	}
	if since.IsZero() {
		return true, nil
	}
	return markedAt >= since.UnixNano(), nil
}
