package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-user-management/config"
	"github.com/oksasatya/go-user-management/internal/container"
	"github.com/oksasatya/go-user-management/internal/router"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestAPI(t *testing.T, seed bool) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})

	cfg := config.Load()
	cfg.StoreDriver = config.StoreDriverMemory
	cfg.BcryptCost = bcrypt.MinCost
	cfg.EventsEnabled = false
	cfg.SeedOnEmpty = seed
	cfg.HTTPLogEnabled = false
	cfg.DebugMetricsEnabled = true
	cfg.CORSAllowedOrigins = ""

	c, err := container.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return router.NewEngine(c)
}

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestUserLifecycle(t *testing.T) {
	api := newTestAPI(t, false)

	w, env := do(t, api, http.MethodPost, "/api/users", `{"name":"John Doe","email":"john@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	var created struct {
		ID      int64  `json:"id"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "User created successfully", created.Message)
	path := "/api/users/" + strconv.FormatInt(created.ID, 10)

	w, env = do(t, api, http.MethodPost, "/api/users", `{"name":"Other","email":"john@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "User with this email already exists", env.Error)

	w, env = do(t, api, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.EqualValues(t, created.ID, got["id"])
	assert.Equal(t, "John Doe", got["name"])
	assert.Equal(t, "john@example.com", got["email"])
	assert.Contains(t, got, "created_at")
	assert.NotContains(t, got, "password")
	assert.NotContains(t, got, "password_hash")

	w, env = do(t, api, http.MethodPut, path, `{"name":"Jane","email":"john@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User updated successfully"}`, string(env.Data))

	w, env = do(t, api, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, string(env.Data))

	w, env = do(t, api, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", env.Error)
}

func TestListUsers(t *testing.T) {
	api := newTestAPI(t, false)

	w, env := do(t, api, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	do(t, api, http.MethodPost, "/api/users", `{"name":"A","email":"a@example.com","password":"secret1"}`)
	do(t, api, http.MethodPost, "/api/users", `{"name":"B","email":"b@example.com","password":"secret1"}`)

	_, env = do(t, api, http.MethodGet, "/api/users", "")
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0]["name"])
	assert.Equal(t, "B", list[1]["name"])
}

func TestCreateUser_ValidationErrors(t *testing.T) {
	api := newTestAPI(t, false)
	allMissing := "Name is required and must be a non-empty string, Email is required and must be a string, Password is required and must be a string"

	for _, body := range []string{`{}`, `[1,2]`, `"text"`, `null`, `not json`} {
		w, env := do(t, api, http.MethodPost, "/api/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, allMissing, env.Error, body)
	}

	w, env := do(t, api, http.MethodPost, "/api/users", `{"name":"A","email":"bad","password":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email must be a valid email address, Password must be at least 6 characters long", env.Error)

	// non-ASCII whitespace and NUL are rejected up front, not by the store
	for _, body := range []string{
		`{"name":"A","email":"jo\u00a0hn@example.com","password":"secret1"}`,
		`{"name":"A","email":"john@exa\u2003mple.com","password":"secret1"}`,
		`{"name":"A","email":"jo\u0000hn@example.com","password":"secret1"}`,
	} {
		w, env = do(t, api, http.MethodPost, "/api/users", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Equal(t, "Email must be a valid email address", env.Error, body)
	}

	w, env = do(t, api, http.MethodPost, "/api/users", `{"name":"A\u0000B","email":"a@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name is required and must be a non-empty string", env.Error)

	_, env = do(t, api, http.MethodGet, "/api/users", "")
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestInvalidIDs(t *testing.T) {
	api := newTestAPI(t, false)
	for _, tc := range []struct{ method, body string }{
		{http.MethodGet, ""},
		{http.MethodPut, `{"name":"A","email":"a@example.com"}`},
		{http.MethodDelete, ""},
	} {
		w, env := do(t, api, tc.method, "/api/users/12abc", tc.body)
		assert.Equal(t, http.StatusBadRequest, w.Code, tc.method)
		assert.Equal(t, "Invalid user ID", env.Error, tc.method)
	}
}

func TestUpdateUser_EmailTakenByOther(t *testing.T) {
	api := newTestAPI(t, true)
	w, env := do(t, api, http.MethodPut, "/api/users/1", `{"name":"John","email":"jane@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Email already taken by another user", env.Error)

	w, env = do(t, api, http.MethodPut, "/api/users/999", `{"name":"John","email":"x@example.com"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", env.Error)
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, true)

	w, env := do(t, api, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":1,"message":"Login successful"}`, string(env.Data))

	w, wrongPwd := do(t, api, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"nope-nope"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w2, unknown := do(t, api, http.MethodPost, "/api/auth/login", `{"email":"ghost@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
	assert.Equal(t, "Invalid credentials", wrongPwd.Error)
	assert.Equal(t, wrongPwd, unknown)

	w, env = do(t, api, http.MethodPost, "/api/auth/login", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email is required, Password is required", env.Error)
}

func TestSearchUsers(t *testing.T) {
	api := newTestAPI(t, true)

	w, env := do(t, api, http.MethodGet, "/api/users/search?name=oh", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Bob Johnson", list[0]["name"])
	assert.Equal(t, "John Doe", list[1]["name"])

	for _, q := range []string{"", "?name=", "?name=%20%20"} {
		w, env = do(t, api, http.MethodGet, "/api/users/search"+q, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
		assert.Equal(t, "Name parameter is required", env.Error, q)
	}
}

func TestRequestIDHeader(t *testing.T) {
	api := newTestAPI(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	const id = "3f1c2a9e-8b7d-4c6e-9f0a-1b2c3d4e5f60"
	req = httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("X-Request-ID", id)
	w = httptest.NewRecorder()
	api.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestDebugVars(t *testing.T) {
	api := newTestAPI(t, true)
	do(t, api, http.MethodPost, "/api/auth/login", `{"email":"john@example.com","password":"password123"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	w := httptest.NewRecorder()
	api.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var vars map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vars))
	assert.Contains(t, vars, "logins_succeeded")
	assert.Contains(t, vars, "accounts_created")
}
