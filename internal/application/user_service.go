package application

import (
	"context"
	"errors"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	repo "github.com/oksasatya/go-user-post-api/internal/domain/repository"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
	"github.com/oksasatya/go-user-post-api/pkg/events"
	"github.com/oksasatya/go-user-post-api/pkg/validation"
)

// CreateUserInput is the body of POST /user. Absent keys stay nil.
type CreateUserInput struct {
	Email    *string `json:"email" validate:"required,max=120"`
	Password *string `json:"password" validate:"required,max=80"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUserInput is the body of PUT /user/{id}.
type UpdateUserInput struct {
	Email *string `json:"email" validate:"required,max=120"`
}

type UserService struct {
	Repo     repo.UserRepository
	validate *validation.Validator
	collaborators
}

func NewUserService(users repo.UserRepository, opts ...Option) *UserService {
	return &UserService{Repo: users, validate: validation.New(), collaborators: newCollaborators(opts)}
}

// checkFields runs the named validations and converts the first failure.
func checkFields(v *validation.Validator, in any, fields ...string) error {
	err := v.Fields(in, fields...)
	if err == nil {
		return nil
	}
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return apperror.Validation(fe.Error())
	}
	return apperror.Internal(err)
}

func userPayload(u *entity.User) events.UserPayload {
	return events.UserPayload{ID: u.ID, Email: u.Email, IsActive: u.IsActive}
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if err := checkFields(s.validate, &in, "Email", "Password"); err != nil {
		record("user.create", err)
		return nil, err
	}
	u := &entity.User{Email: *in.Email, Password: *in.Password, IsActive: true}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		record("user.create", err)
		return nil, apperror.From(err)
	}
	record("user.create", nil)
	s.publish(ctx, events.ForUser(events.UserCreated, userPayload(u)))
	return u, nil
}

// GetUser reads through the cache when one is configured. The returned user
// never carries the password.
func (s *UserService) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	c, err := readThrough(ctx, s.collaborators, userKey(id), func() (cachedUser, error) {
		u, err := s.Repo.GetByID(ctx, id)
		if err != nil {
			return cachedUser{}, err
		}
		return toCachedUser(u), nil
	})
	if err != nil {
		return nil, apperror.From(err)
	}
	return c.entity(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, apperror.From(err)
	}
	return users, nil
}

func (s *UserService) UpdateUserEmail(ctx context.Context, id int64, in UpdateUserInput) (*entity.User, error) {
	if err := checkFields(s.validate, &in, "Email"); err != nil {
		record("user.update", err)
		return nil, err
	}
	u, err := s.Repo.UpdateEmail(ctx, id, *in.Email)
	if err != nil {
		record("user.update", err)
		return nil, apperror.From(err)
	}
	record("user.update", nil)
	s.invalidate(ctx, userKey(id))
	s.publish(ctx, events.ForUser(events.UserUpdated, userPayload(u)))
	return u, nil
}

// DeleteUser removes the user together with its posts.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	removed, err := s.Repo.Delete(ctx, id)
	if err != nil {
		record("user.delete", err)
		return apperror.From(err)
	}
	record("user.delete", nil)

	keys := []string{userKey(id)}
	evs := []events.Event{events.ForUser(events.UserDeleted, events.UserPayload{ID: id})}
	for _, pid := range removed {
		keys = append(keys, postKey(pid))
		evs = append(evs, events.ForPost(events.PostDeleted, events.PostPayload{ID: pid}))
	}
	s.invalidate(ctx, keys...)
	s.publish(ctx, evs...)
	return nil
}
