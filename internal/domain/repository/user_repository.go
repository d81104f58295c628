package repository

import (
	"context"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Implementations return *apperror.Error values: NotFound, Conflict or Internal.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	UpdateEmail(ctx context.Context, id int64, email string) (*entity.User, error)
	// Delete removes the user and, in the same transaction, every post it owns.
	// It returns the ids of the removed posts.
	Delete(ctx context.Context, id int64) ([]int64, error)
}
