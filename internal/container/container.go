package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-post-api/config"
	"github.com/oksasatya/go-user-post-api/internal/application"
	"github.com/oksasatya/go-user-post-api/internal/domain/repository"
	pginfra "github.com/oksasatya/go-user-post-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-user-post-api/internal/infrastructure/search"
	"github.com/oksasatya/go-user-post-api/pkg/helpers"
)

// Container carries the constructed infrastructure handles. It is built once in
// main and passed explicitly to whoever needs it; nothing here is global.
// Redis, Rabbit and PostIndex are optional and may be nil.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	Rabbit    *helpers.RabbitPublisher
	PostIndex *search.PostIndex

	// Users and Posts default to the Postgres repositories over PGPool.
	Users repository.UserRepository
	Posts repository.PostRepository
}

func (c *Container) userRepo() repository.UserRepository {
	if c.Users == nil {
		c.Users = pginfra.NewUserRepository(c.PGPool)
	}
	return c.Users
}

func (c *Container) postRepo() repository.PostRepository {
	if c.Posts == nil {
		c.Posts = pginfra.NewPostRepository(c.PGPool)
	}
	return c.Posts
}

// serviceOptions translates the optional handles into service options,
// skipping absent ones so no typed-nil interface reaches a service.
func (c *Container) serviceOptions() []application.Option {
	opts := []application.Option{application.WithLogger(c.Logger)}
	if c.Redis != nil {
		opts = append(opts, application.WithCache(helpers.NewRedisCache(c.Redis), c.Config.CacheTTL))
	}
	if c.Rabbit != nil {
		opts = append(opts, application.WithEvents(c.Rabbit))
	}
	return opts
}

func (c *Container) UserService() *application.UserService {
	return application.NewUserService(c.userRepo(), c.serviceOptions()...)
}

func (c *Container) PostService() *application.PostService {
	var searcher application.PostSearcher
	if c.PostIndex != nil {
		searcher = c.PostIndex
	}
	return application.NewPostService(c.postRepo(), c.userRepo(), searcher, c.serviceOptions()...)
}
