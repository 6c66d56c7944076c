package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tagKeyPrefix = "tag:"
	stampWidth   = 19
)

// markStale stores ARGV[1] only when it is newer than the current mark.
// Stamps are fixed-width so string order matches numeric order; Lua numbers
// are doubles and cannot tell adjacent nanoseconds apart.
var markStale = redis.NewScript(`
local current = redis.call("GET", KEYS[1])
if not current or ARGV[1] > current then
	redis.call("SET", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

// TagStore implements interfaces.TagStore on Redis. Marks are unix
// nanoseconds zero-padded to stampWidth digits.
type TagStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewTagStore creates a tag store on an existing client
func NewTagStore(client *redis.Client) *TagStore {
	return &TagStore{client: client, now: time.Now}
}

// MarkStale advances the tag's mark to now
func (s *TagStore) MarkStale(ctx context.Context, tag string) error {
	stamp := formatStamp(s.now())
	return markStale.Run(ctx, s.client, []string{tagKeyPrefix + tag}, stamp).Err()
}

// IsStale reports whether tag was marked at or after since
func (s *TagStore) IsStale(ctx context.Context, tag string, since time.Time) (bool, error) {
	mark, err := s.client.Get(ctx, tagKeyPrefix+tag).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if since.IsZero() {
		return true, nil
	}
	return mark >= since.UnixNano(), nil
}

func formatStamp(t time.Time) string {
	return fmt.Sprintf("%0*d", stampWidth, t.UnixNano())
}
