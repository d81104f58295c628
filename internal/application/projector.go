package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/pkg/events"
)

// ErrMalformedEvent marks events that can never be applied and should not be retried.
var ErrMalformedEvent = errors.New("malformed event")

// Projector applies post events to the search index. User events are ignored;
// cascaded post deletions arrive as their own post.deleted events.
type Projector struct {
	Index  PostIndexer
	Logger *logrus.Logger
}

func NewProjector(index PostIndexer, logger *logrus.Logger) *Projector {
	return &Projector{Index: index, Logger: logger}
}

func (p *Projector) Handle(ctx context.Context, ev events.Event) error {
	if !strings.HasPrefix(ev.Type, "post.") {
		if p.Logger != nil {
			p.Logger.WithFields(logrus.Fields{"event_id": ev.ID, "type": ev.Type}).Debug("event skipped")
		}
		return nil
	}
	if ev.Post == nil || ev.Post.ID == 0 {
		return ErrMalformedEvent
	}
	switch ev.Type {
	case events.PostCreated, events.PostUpdated:
		return p.Index.Put(ctx, entity.Post{
			ID:        ev.Post.ID,
			Content:   ev.Post.Content,
			UserID:    ev.Post.UserID,
			CreatedAt: ev.Post.CreatedAt,
		})
	case events.PostDeleted:
		return p.Index.Remove(ctx, ev.Post.ID)
	default:
		return ErrMalformedEvent
	}
}
