package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-post-api/internal/interface/http"
)

type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/search", m.Handler.Search)
	rg.GET("/posts/user/:id", m.Handler.ListByUser)

	rg.POST("/post", m.Handler.Create)
	rg.GET("/post/:id", m.Handler.Get)
	rg.PUT("/post/:id", m.Handler.Update)
	rg.DELETE("/post/:id", m.Handler.Delete)
}
