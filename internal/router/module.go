package router

import "github.com/gin-gonic/gin"

// Module is a feature area. Register mounts its routes on the /api group;
// Name labels it in startup logs.
type Module interface {
	Name() string
	Register(rg *gin.RouterGroup)
}
