package application

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/pkg/events"
	"github.com/oksasatya/go-user-post-api/pkg/helpers"
)

func userKey(id int64) string { return "user:" + strconv.FormatInt(id, 10) }
func postKey(id int64) string { return "post:" + strconv.FormatInt(id, 10) }

// cachedUser is what the cache holds for a user. The password stays in the store.
type cachedUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func toCachedUser(u *entity.User) cachedUser {
	return cachedUser{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}

func (c cachedUser) entity() *entity.User {
	return &entity.User{ID: c.ID, Email: c.Email, IsActive: c.IsActive}
}

type cachedPost struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toCachedPost(p *entity.Post) cachedPost {
	return cachedPost{ID: p.ID, Content: p.Content, UserID: p.UserID, CreatedAt: p.CreatedAt}
}

func (c cachedPost) entity() *entity.Post {
	return &entity.Post{ID: c.ID, Content: c.Content, UserID: c.UserID, CreatedAt: c.CreatedAt}
}

// readThrough serves key from the cache, or loads it and fills the cache.
// The version is taken before load so a concurrent invalidation voids the fill.
func readThrough[T any](ctx context.Context, o collaborators, key string, load func() (T, error)) (T, error) {
	if o.cache == nil {
		return load()
	}
	var cached T
	ok, err := o.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		helpers.LogWarn(o.logger, "cache get failed", err, logrus.Fields{"key": key})
	} else if ok {
		return cached, nil
	}

	version, verr := o.cache.Version(ctx, key)
	v, err := load()
	if err != nil {
		return v, err
	}
	if verr != nil {
		helpers.LogWarn(o.logger, "cache version failed", verr, logrus.Fields{"key": key})
		return v, nil
	}
	stored, err := o.cache.SetJSONAt(ctx, key, v, o.cacheTTL, version)
	if err != nil {
		helpers.LogWarn(o.logger, "cache set failed", err, logrus.Fields{"key": key})
	} else if !stored && o.logger != nil {
		o.logger.WithField("key", key).Debug("cache fill skipped after concurrent invalidation")
	}
	return v, nil
}

func (o collaborators) invalidate(ctx context.Context, keys ...string) {
	if o.cache == nil || len(keys) == 0 {
		return
	}
	if err := o.cache.Invalidate(ctx, keys...); err != nil {
		helpers.LogWarn(o.logger, "cache invalidation failed", err, logrus.Fields{"keys": keys})
	}
}

func (o collaborators) publish(ctx context.Context, evs ...events.Event) {
	if o.events == nil {
		return
	}
	for _, ev := range evs {
		if err := o.events.Publish(ctx, ev); err != nil {
			helpers.LogWarn(o.logger, "publish event failed", err, logrus.Fields{"event_id": ev.ID, "type": ev.Type})
		}
	}
}
