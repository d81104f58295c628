package router

import (
	"github.com/oksasatya/go-user-post-api/internal/container"
	handlers "github.com/oksasatya/go-user-post-api/internal/interface/http"
	"github.com/oksasatya/go-user-post-api/internal/router/modules"
)

// InitModules builds services and handlers from c and adds every feature module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	userHandler := handlers.NewUserHandler(c.UserService(), c.Logger)
	postHandler := handlers.NewPostHandler(c.PostService(), c.Logger)

	r.Add(modules.NewSitemapModule(handlers.NewSitemapHandler(r.Engine.Routes)))
	r.Add(modules.NewUserModule(userHandler))
	r.Add(modules.NewPostModule(postHandler))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
