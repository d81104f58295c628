package mock

import (
	"context"
	"sort"
	"sync"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/internal/domain/repository"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
)

// Store is an in-memory stand-in for the relational store. Users and posts
// share one lock so foreign keys, unique emails and cascades behave like Postgres.
type Store struct {
	mutex      sync.RWMutex
	users      map[int64]entity.User
	posts      map[int64]entity.Post
	nextUserID int64
	nextPostID int64

	// Err, when set, makes every operation fail as an internal store error
	// without touching state.
	Err error
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]entity.User),
		posts:      make(map[int64]entity.Post),
		nextUserID: 1,
		nextPostID: 1,
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

func (s *Store) UserCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.users)
}

func (s *Store) PostCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.posts)
}

func (s *Store) fail() error {
	if s.Err != nil {
		return apperror.Internal(s.Err)
	}
	return nil
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return apperror.Conflict("email already exists", nil)
		}
	}
	u.ID = r.s.nextUserID
	r.s.nextUserID++
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return &u, nil
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *UserRepository) UpdateEmail(_ context.Context, id int64, email string) (*entity.User, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	for otherID, other := range r.s.users {
		if otherID != id && other.Email == email {
			return nil, apperror.Conflict("email already exists", nil)
		}
	}
	u.Email = email
	r.s.users[id] = u
	return &u, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) ([]int64, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	if _, ok := r.s.users[id]; !ok {
		return nil, apperror.NotFound("user not found")
	}
	var removed []int64
	for pid, p := range r.s.posts {
		if p.UserID == id {
			removed = append(removed, pid)
			delete(r.s.posts, pid)
		}
	}
	sort.Slice(removed, func(i, j int) bool { return removed[i] < removed[j] })
	delete(r.s.users, id)
	return removed, nil
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, p *entity.Post) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.users[p.UserID]; !ok {
		return apperror.NotFound("user not found")
	}
	p.ID = r.s.nextPostID
	r.s.nextPostID++
	r.s.posts[p.ID] = *p
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id int64) (*entity.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	return &p, nil
}

func (r *PostRepository) List(_ context.Context) ([]entity.Post, error) {
	return r.filter(func(entity.Post) bool { return true })
}

func (r *PostRepository) ListByUser(_ context.Context, userID int64) ([]entity.Post, error) {
	r.s.mutex.RLock()
	_, ok := r.s.users[userID]
	err := r.s.fail()
	r.s.mutex.RUnlock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return r.filter(func(p entity.Post) bool { return p.UserID == userID })
}

func (r *PostRepository) filter(keep func(entity.Post) bool) ([]entity.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	out := make([]entity.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PostRepository) UpdateContent(_ context.Context, id int64, content string) (*entity.Post, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}
	p, ok := r.s.posts[id]
	if !ok {
		return nil, apperror.NotFound("post not found")
	}
	p.Content = content
	r.s.posts[id] = p
	return &p, nil
}

func (r *PostRepository) Delete(_ context.Context, id int64) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.posts[id]; !ok {
		return apperror.NotFound("post not found")
	}
	delete(r.s.posts, id)
	return nil
}

var (
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.PostRepository = (*PostRepository)(nil)
)
