package application

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	repo "github.com/oksasatya/go-user-post-api/internal/domain/repository"
	"github.com/oksasatya/go-user-post-api/pkg/events"
)

type memCache struct {
	mu       sync.Mutex
	values   map[string][]byte
	versions map[string]int64
	err      error
}

func newMemCache() *memCache {
	return &memCache{values: map[string][]byte{}, versions: map[string]int64{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	b, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dest)
}

func (c *memCache) Version(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return 0, c.err
	}
	return c.versions[key], nil
}

func (c *memCache) SetJSONAt(_ context.Context, key string, value any, _ time.Duration, version int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	if c.versions[key] != version {
		return false, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	c.values[key] = b
	return true, nil
}

func (c *memCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	for _, k := range keys {
		c.versions[k]++
		delete(c.values, k)
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

func (c *memCache) raw(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.values[key])
}

// racingUsers runs hook after each successful GetByID, standing in for a
// mutation that commits between a read and the cache fill that follows it.
type racingUsers struct {
	repo.UserRepository
	hook func()
}

func (r *racingUsers) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := r.UserRepository.GetByID(ctx, id)
	if err == nil && r.hook != nil {
		hook := r.hook
		r.hook = nil
		hook()
	}
	return u, err
}

type racingPosts struct {
	repo.PostRepository
	hook func()
}

func (r *racingPosts) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := r.PostRepository.GetByID(ctx, id)
	if err == nil && r.hook != nil {
		hook := r.hook
		r.hook = nil
		hook()
	}
	return p, err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fakeIndex struct {
	docs    map[int64]entity.Post
	failPut bool
}

func newFakeIndex() *fakeIndex { return &fakeIndex{docs: map[int64]entity.Post{}} }

func (f *fakeIndex) Put(_ context.Context, p entity.Post) error {
	if f.failPut {
		return errors.New("index unavailable")
	}
	f.docs[p.ID] = p
	return nil
}

func (f *fakeIndex) Remove(_ context.Context, id int64) error {
	delete(f.docs, id)
	return nil
}

func (f *fakeIndex) Search(_ context.Context, q string, _ int) ([]entity.Post, error) {
	var out []entity.Post
	for _, p := range f.docs {
		if p.Content == q {
			out = append(out, p)
		}
	}
	return out, nil
}

func ptr[T any](v T) *T { return &v }
