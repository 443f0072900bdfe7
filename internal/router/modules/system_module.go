package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-management/internal/interface/http"
)

// SystemModule serves the API info document and, when enabled, expvar
// counters at /api/debug/vars.
type SystemModule struct {
	Info         *handlers.InfoHandler
	DebugMetrics bool
}

func NewSystemModule(info *handlers.InfoHandler, debugMetrics bool) *SystemModule {
	return &SystemModule{Info: info, DebugMetrics: debugMetrics}
}

func (m *SystemModule) Name() string { return "system" }

func (m *SystemModule) Register(rg *gin.RouterGroup) {
	rg.GET("", m.Info.Info)
	if m.DebugMetrics {
		rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
	}
}
