package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types published after a mutation commits.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
	PostCreated = "post.created"
	PostUpdated = "post.updated"
	PostDeleted = "post.deleted"
)

// Event is the JSON payload put on the RabbitMQ events queue.
// Exactly one of User or Post is set, matching the Type prefix.
type Event struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurred_at"`
	User       *UserPayload `json:"user,omitempty"`
	Post       *PostPayload `json:"post,omitempty"`
}

// UserPayload deliberately has no password field.
type UserPayload struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type PostPayload struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content,omitempty"`
	UserID    int64     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

func New(typ string) Event {
	return Event{ID: uuid.NewString(), Type: typ, OccurredAt: time.Now().UTC()}
}

func ForUser(typ string, u UserPayload) Event {
	ev := New(typ)
	ev.User = &u
	return ev
}

func ForPost(typ string, p PostPayload) Event {
	ev := New(typ)
	ev.Post = &p
	return ev
}
