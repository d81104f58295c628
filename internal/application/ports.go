package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/pkg/events"
)

// Cache is a JSON value cache with a per-key invalidation counter.
// A fill only lands if no invalidation happened since the reader took the
// version, so a read that raced a mutation cannot resurrect old data.
type Cache interface {
	// GetJSON reports a miss as (false, nil).
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	// Version returns the invalidation counter of key; never invalidated is 0.
	Version(ctx context.Context, key string) (int64, error)
	// SetJSONAt stores value unless key's counter moved past version.
	SetJSONAt(ctx context.Context, key string, value any, ttl time.Duration, version int64) (bool, error)
	// Invalidate bumps the counter of every key and drops their values atomically.
	Invalidate(ctx context.Context, keys ...string) error
}

// EventPublisher ships domain events after their mutation has committed.
type EventPublisher interface {
	Publish(ctx context.Context, ev events.Event) error
}

// PostSearcher runs full-text queries over post content.
type PostSearcher interface {
	Search(ctx context.Context, q string, size int) ([]entity.Post, error)
}

// PostIndexer maintains the search projection consumed by PostSearcher.
type PostIndexer interface {
	Put(ctx context.Context, p entity.Post) error
	Remove(ctx context.Context, id int64) error
}
