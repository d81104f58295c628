package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-post-api/pkg/response"
)

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// SitemapHandler lists every registered route, a diagnostic map of the API.
type SitemapHandler struct {
	Routes func() gin.RoutesInfo
}

func NewSitemapHandler(routes func() gin.RoutesInfo) *SitemapHandler {
	return &SitemapHandler{Routes: routes}
}

func (h *SitemapHandler) Index(c *gin.Context) {
	infos := h.Routes()
	out := make([]routeInfo, 0, len(infos))
	for _, r := range infos {
		out = append(out, routeInfo{Method: r.Method, Path: r.Path})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	response.Success(c, http.StatusOK, "routes", out)
}
