package router

import (
	"github.com/oksasatya/go-user-management/internal/container"
	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
	"github.com/oksasatya/go-user-management/internal/router/modules"
)

// InitModules builds handlers from the container and registers their
// modules. Call once per engine.
func InitModules(r *Registry, c *container.Container) {
	svc := c.AccountService()

	r.Add(modules.NewSystemModule(handlers.NewInfoHandler(c.Config.AppName), c.Config.DebugMetricsEnabled))
	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(svc, c.Logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, c.Logger)))
}
