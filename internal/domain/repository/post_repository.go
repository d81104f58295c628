package repository

import (
	"context"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
)

// PostRepository defines the interface for post-related database operations.
type PostRepository interface {
	// Create inserts p. A missing owner yields a NotFound error.
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	List(ctx context.Context) ([]entity.Post, error)
	ListByUser(ctx context.Context, userID int64) ([]entity.Post, error)
	UpdateContent(ctx context.Context, id int64, content string) (*entity.Post, error)
	Delete(ctx context.Context, id int64) error
}
