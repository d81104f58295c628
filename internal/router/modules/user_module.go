package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-post-api/internal/interface/http"
)

// UserModule wires the user CRUD routes.
// POST /users lists users; it is a legacy alias kept for existing clients.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/users", m.Handler.List)
	rg.POST("/users", m.Handler.List)

	rg.POST("/user", m.Handler.Create)
	rg.GET("/user/:id", m.Handler.Get)
	rg.PUT("/user/:id", m.Handler.Update)
	rg.DELETE("/user/:id", m.Handler.Delete)
}
