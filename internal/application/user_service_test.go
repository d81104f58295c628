package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-post-api/internal/domain/entity"
	"github.com/oksasatya/go-user-post-api/internal/domain/repository/mock"
	"github.com/oksasatya/go-user-post-api/pkg/apperror"
	"github.com/oksasatya/go-user-post-api/pkg/events"
)

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("missing email", func(t *testing.T) {
		svc := NewUserService(mock.NewStore().Users())
		_, err := svc.CreateUser(ctx, CreateUserInput{Password: ptr("p")})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.EqualError(t, err, "email is required")
	})

	t.Run("missing password", func(t *testing.T) {
		svc := NewUserService(mock.NewStore().Users())
		_, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com")})
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.EqualError(t, err, "password is required")
	})

	t.Run("both missing names email first", func(t *testing.T) {
		svc := NewUserService(mock.NewStore().Users())
		_, err := svc.CreateUser(ctx, CreateUserInput{})
		assert.EqualError(t, err, "email is required")
	})

	t.Run("defaults to active and publishes", func(t *testing.T) {
		pub := &recordingPublisher{}
		svc := NewUserService(mock.NewStore().Users(), WithEvents(pub))
		u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u.ID)
		assert.True(t, u.IsActive)
		assert.Equal(t, []string{events.UserCreated}, pub.types())
		assert.Equal(t, "a@x.com", pub.events[0].User.Email)
	})

	t.Run("explicit inactive", func(t *testing.T) {
		svc := NewUserService(mock.NewStore().Users())
		u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p"), IsActive: ptr(false)})
		require.NoError(t, err)
		assert.False(t, u.IsActive)
	})

	t.Run("duplicate email leaves one row", func(t *testing.T) {
		store := mock.NewStore()
		pub := &recordingPublisher{}
		svc := NewUserService(store.Users(), WithEvents(pub))
		_, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("q")})
		assert.ErrorIs(t, err, apperror.ErrConflict)
		assert.Equal(t, 1, store.UserCount())
		assert.Len(t, pub.types(), 1)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		store := mock.NewStore()
		store.Err = errors.New("connection refused")
		svc := NewUserService(store.Users())
		_, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
		assert.ErrorIs(t, err, apperror.ErrInternal)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestGetUserReadsThroughCache(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	cache := newMemCache()
	svc := NewUserService(store.Users(), WithCache(cache, 0))

	u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.User{ID: u.ID, Email: "a@x.com", IsActive: true}, *got)
	assert.True(t, cache.has(userKey(u.ID)))

	// Served from cache even if the store is failing.
	store.Err = errors.New("down")
	got, err = svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	store.Err = nil
	_, err = svc.GetUser(ctx, 99)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCachedUserOmitsPassword(t *testing.T) {
	ctx := context.Background()
	cache := newMemCache()
	svc := NewUserService(mock.NewStore().Users(), WithCache(cache, 0))

	u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("s3cret-pass")})
	require.NoError(t, err)
	_, err = svc.GetUser(ctx, u.ID)
	require.NoError(t, err)

	raw := cache.raw(userKey(u.ID))
	require.NotEmpty(t, raw)
	assert.NotContains(t, raw, "s3cret-pass")
	assert.NotContains(t, strings.ToLower(raw), "password")
	assert.JSONEq(t, `{"id":1,"email":"a@x.com","is_active":true}`, raw)

	hit, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, hit.Password)
}

func TestGetUserRacingDeleteDoesNotRefillCache(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	cache := newMemCache()
	users := &racingUsers{UserRepository: store.Users()}
	svc := NewUserService(users, WithCache(cache, 0))

	u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
	require.NoError(t, err)

	users.hook = func() { require.NoError(t, svc.DeleteUser(ctx, u.ID)) }
	_, err = svc.GetUser(ctx, u.ID)
	require.NoError(t, err, "the read itself happened before the delete")
	assert.False(t, cache.has(userKey(u.ID)))

	_, err = svc.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestGetUserRacingUpdateServesNewEmail(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	cache := newMemCache()
	users := &racingUsers{UserRepository: store.Users()}
	svc := NewUserService(users, WithCache(cache, 0))

	u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
	require.NoError(t, err)

	users.hook = func() {
		_, err := svc.UpdateUserEmail(ctx, u.ID, UpdateUserInput{Email: ptr("b@x.com")})
		require.NoError(t, err)
	}
	_, err = svc.GetUser(ctx, u.ID)
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", got.Email)
}

func TestGetUserFallsBackWhenCacheFails(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	cache := newMemCache()
	cache.err = errors.New("redis down")
	svc := NewUserService(store.Users(), WithCache(cache, 0))

	require.NoError(t, store.Users().Create(ctx, &entity.User{Email: "a@x.com", Password: "p", IsActive: true}))

	got, err := svc.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
}

func TestUpdateUserEmail(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	cache := newMemCache()
	pub := &recordingPublisher{}
	svc := NewUserService(store.Users(), WithCache(cache, 0), WithEvents(pub))

	u, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
	require.NoError(t, err)
	_, err = svc.GetUser(ctx, u.ID)
	require.NoError(t, err)

	t.Run("requires email", func(t *testing.T) {
		_, err := svc.UpdateUserEmail(ctx, u.ID, UpdateUserInput{})
		assert.EqualError(t, err, "email is required")
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateUserEmail(ctx, 42, UpdateUserInput{Email: ptr("z@x.com")})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("updates and invalidates", func(t *testing.T) {
		got, err := svc.UpdateUserEmail(ctx, u.ID, UpdateUserInput{Email: ptr("b@x.com")})
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", got.Email)
		assert.Equal(t, "p", got.Password)
		assert.False(t, cache.has(userKey(u.ID)))

		fresh, err := svc.GetUser(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "b@x.com", fresh.Email)
		assert.Contains(t, pub.types(), events.UserUpdated)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, CreateUserInput{Email: ptr("c@x.com"), Password: ptr("p")})
		require.NoError(t, err)
		_, err = svc.UpdateUserEmail(ctx, u.ID, UpdateUserInput{Email: ptr("c@x.com")})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	store := mock.NewStore()
	cache := newMemCache()
	pub := &recordingPublisher{}
	users := NewUserService(store.Users(), WithCache(cache, 0), WithEvents(pub))
	posts := NewPostService(store.Posts(), store.Users(), nil, WithCache(cache, 0))

	u, err := users.CreateUser(ctx, CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
	require.NoError(t, err)
	p, err := posts.CreatePost(ctx, CreatePostInput{UserID: ptr(u.ID), Content: ptr("hi")})
	require.NoError(t, err)
	_, err = posts.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, cache.has(postKey(p.ID)))

	require.NoError(t, users.DeleteUser(ctx, u.ID))
	assert.Equal(t, 0, store.PostCount())
	assert.False(t, cache.has(postKey(p.ID)))
	assert.Equal(t, []string{events.UserCreated, events.UserDeleted, events.PostDeleted}, pub.types())

	err = users.DeleteUser(ctx, u.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker gone")}
	svc := NewUserService(mock.NewStore().Users(), WithEvents(pub))

	u, err := svc.CreateUser(context.Background(), CreateUserInput{Email: ptr("a@x.com"), Password: ptr("p")})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
}
