package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
)

// AccountModule wires account CRUD and search:
// GET/POST /api/users, GET /api/users/search, GET/PUT/DELETE /api/users/:id
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Name() string { return "accounts" }

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", m.Handler.List)
		users.POST("", m.Handler.Create)
		// static segment wins over :id
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
