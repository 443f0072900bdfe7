package handlers

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-management/pkg/response"
)

const apiVersion = "1.0"

var (
	accountsCreated = expvar.NewInt("accounts_created")
	accountsDeleted = expvar.NewInt("accounts_deleted")
	loginsSucceeded = expvar.NewInt("logins_succeeded")
	loginsFailed    = expvar.NewInt("logins_failed")
)

type InfoHandler struct {
	AppName string
}

func NewInfoHandler(appName string) *InfoHandler {
	return &InfoHandler{AppName: appName}
}

type infoResponse struct {
	Status    string            `json:"status"`
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// Info GET /api
func (h *InfoHandler) Info(c *gin.Context) {
	response.Success(c, http.StatusOK, infoResponse{
		Status:  "ok",
		Name:    h.AppName,
		Version: apiVersion,
		Endpoints: map[string]string{
			"health": "GET /api",
			"users":  "GET|POST /api/users",
			"user":   "GET|PUT|DELETE /api/users/:id",
			"search": "GET /api/users/search?name=",
			"login":  "POST /api/auth/login",
		},
	})
}
