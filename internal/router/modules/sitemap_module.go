package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-post-api/internal/interface/http"
)

type SitemapModule struct {
	Handler *handlers.SitemapHandler
}

func NewSitemapModule(h *handlers.SitemapHandler) *SitemapModule {
	return &SitemapModule{Handler: h}
}

func (m *SitemapModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Index)
}
