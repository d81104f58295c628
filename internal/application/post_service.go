package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	repo "github.com/oksasatya/go-user-post-api/internal/domain/repository"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
	"github.com/oksasatya/go-user-post-api/pkg/events"
	"github.com/oksasatya/go-user-post-api/pkg/validation"
)

// CreatePostInput is the body of POST /post.
type CreatePostInput struct {
	UserID  *int64  `json:"user_id" validate:"required"`
	Content *string `json:"content" validate:"required,max=120"`
}

// UpdatePostInput is the body of PUT /post/{id}.
type UpdatePostInput struct {
	Content *string `json:"content" validate:"required,max=120"`
}

type PostService struct {
	Repo     repo.PostRepository
	Users    repo.UserRepository
	Search   PostSearcher
	validate *validation.Validator
	collaborators
}

func NewPostService(posts repo.PostRepository, users repo.UserRepository, search PostSearcher, opts ...Option) *PostService {
	return &PostService{
		Repo:          posts,
		Users:         users,
		Search:        search,
		validate:      validation.New(),
		collaborators: newCollaborators(opts),
	}
}

func postPayload(p *entity.Post) events.PostPayload {
	return events.PostPayload{ID: p.ID, Content: p.Content, UserID: p.UserID, CreatedAt: p.CreatedAt}
}

// CreatePost checks user_id, then that the user exists, then content.
// created_at is taken when the row is created.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	p, err := s.createPost(ctx, in)
	record("post.create", err)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.ForPost(events.PostCreated, postPayload(p)))
	return p, nil
}

func (s *PostService) createPost(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	if err := checkFields(s.validate, &in, "UserID"); err != nil {
		return nil, err
	}
	if _, err := s.Users.GetByID(ctx, *in.UserID); err != nil {
		return nil, apperror.From(err)
	}
	if err := checkFields(s.validate, &in, "Content"); err != nil {
		return nil, err
	}
	p := &entity.Post{
		Content:   *in.Content,
		UserID:    *in.UserID,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	// The foreign key still guards against the user vanishing in between.
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, apperror.From(err)
	}
	return p, nil
}

func (s *PostService) GetPost(ctx context.Context, id int64) (*entity.Post, error) {
	c, err := readThrough(ctx, s.collaborators, postKey(id), func() (cachedPost, error) {
		p, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return cachedPost{}, err
		}
		return toCachedPost(p), nil
	})
	if err != nil {
		return nil, apperror.From(err)
	}
	return c.entity(), nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.From(err)
	}
	return posts, nil
}

func (s *PostService) ListPostsByUser(ctx context.Context, userID int64) ([]entity.Post, error) {
	posts, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.From(err)
	}
	return posts, nil
}

func (s *PostService) UpdatePostContent(ctx context.Context, id int64, in UpdatePostInput) (*entity.Post, error) {
	if err := checkFields(s.validate, &in, "Content"); err != nil {
		record("post.update", err)
		return nil, err
	}
	p, err := s.Repo.UpdateContent(ctx, id, *in.Content)
	if err != nil {
		record("post.update", err)
		return nil, apperror.From(err)
	}
	record("post.update", nil)
	s.invalidate(ctx, postKey(id))
	s.publish(ctx, events.ForPost(events.PostUpdated, postPayload(p)))
	return p, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		record("post.delete", err)
		return apperror.From(err)
	}
	record("post.delete", nil)
	s.invalidate(ctx, postKey(id))
	s.publish(ctx, events.ForPost(events.PostDeleted, events.PostPayload{ID: id}))
	return nil
}

// SearchPosts queries the search projection. Without one it finds nothing.
func (s *PostService) SearchPosts(ctx context.Context, q string, size int) ([]entity.Post, error) {
	if q == "" {
		return nil, apperror.Validation("q is required")
	}
	if s.Search == nil {
		return []entity.Post{}, nil
	}
	posts, err := s.Search.Search(ctx, q, size)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return posts, nil
}
