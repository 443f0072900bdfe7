package router

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/internal/container"
	"github.com/oksasatya/go-user-management/pkg/helpers"
)

func newTestContainer(t *testing.T, mutate func(*config.Config)) *container.Container {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Load()
	cfg.StoreDriver = config.StoreDriverMemory
	cfg.EventsEnabled = false
	cfg.SeedOnEmpty = false
	cfg.CORSAllowedOrigins = ""
	if mutate != nil {
		mutate(cfg)
	}
	c, err := container.New(context.Background(), cfg, helpers.NewLogger("test", "test", helpers.WithOutput(io.Discard)))
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func routeSet(r *gin.Engine) map[string]bool {
	out := map[string]bool{}
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestNewEngine_Routes(t *testing.T) {
	routes := routeSet(NewEngine(newTestContainer(t, func(c *config.Config) { c.DebugMetricsEnabled = true })))
	for _, want := range []string{
		"GET /api",
		"GET /api/users",
		"POST /api/users",
		"GET /api/users/search",
		"GET /api/users/:id",
		"PUT /api/users/:id",
		"DELETE /api/users/:id",
		"POST /api/auth/login",
		"GET /api/debug/vars",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestNewEngine_DebugVarsDisabled(t *testing.T) {
	routes := routeSet(NewEngine(newTestContainer(t, func(c *config.Config) { c.DebugMetricsEnabled = false })))
	assert.False(t, routes["GET /api/debug/vars"])
}

func TestInitModules_Order(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New(), nil)
	InitModules(reg, newTestContainer(t, nil))
	assert.Equal(t, []string{"system", "accounts", "auth"}, reg.Modules())
}

func TestCORS(t *testing.T) {
	r := NewEngine(newTestContainer(t, func(c *config.Config) { c.CORSAllowedOrigins = "http://ui.test" }))

	req := httptest.NewRequest(http.MethodOptions, "/api/users", nil)
	req.Header.Set("Origin", "http://ui.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://ui.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSConfig_AllowAllWithoutOrigins(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)
	require.NoError(t, cfg.Validate())
}
