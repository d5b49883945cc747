package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduplicator handles Redis deduplication checks. The dashboard uses it to
// drop ClickUp webhook redeliveries before they reach the event stream.
type Deduplicator struct {
	rdb      *redis.Client
	ttlHours int
}

// NewDeduplicator creates a new shared instance. If ttlHours is 0, defaults to 48 hours.
func NewDeduplicator(rdb *redis.Client, ttlHours int) *Deduplicator {
	if ttlHours <= 0 {
		ttlHours = 48
	}
	return &Deduplicator{
		rdb:      rdb,
		ttlHours: ttlHours,
	}
}

// MarkAsSeen marks an entity string (like "taskID:timestamp") as seen under a
// specific prefix type (e.g. "webhook")
func (d *Deduplicator) MarkAsSeen(ctx context.Context, prefixType string, id string) error {
	key := fmt.Sprintf("av:%s:%s", prefixType, id)
	ttl := time.Duration(d.ttlHours) * time.Hour
	_, err := d.rdb.Set(ctx, key, "1", ttl).Result()
	return err
}

// CheckIfProcessed returns true if the entity string exists under the prefix type
func (d *Deduplicator) CheckIfProcessed(ctx context.Context, prefixType string, id string) (bool, error) {
	key := fmt.Sprintf("av:%s:%s", prefixType, id)
	exists, err := d.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Close closes the underlying redis connection
func (d *Deduplicator) Close() error {
	return d.rdb.Close()
}
