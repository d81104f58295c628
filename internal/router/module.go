package router

import "github.com/gin-gonic/gin"

// Module describes a feature module that can register its routes on a RouterGroup.
// Modules register absolute resource paths; the group decides any prefix.
type Module interface {
	Register(rg *gin.RouterGroup)
}
