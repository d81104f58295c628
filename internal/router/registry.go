package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry groups every module under prefix. An empty prefix mounts at the root.
func NewRegistry(engine *gin.Engine, prefix string) *Registry {
	prefix = strings.TrimRight(prefix, "/")
	api := engine.Group("/" + strings.TrimLeft(prefix, "/"))
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
