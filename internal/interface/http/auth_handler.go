package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/interface/middleware"
	"github.com/oksasatya/go-user-management/pkg/response"
)

type AuthHandler struct {
	Svc    *application.Service
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.Service, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString(middleware.RealIPKey); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// Login POST /api/auth/login {email, password}
func (h *AuthHandler) Login(c *gin.Context) {
	id, err := h.Svc.Authenticate(c.Request.Context(), bindPayload(c, h.Logger))
	if err != nil {
		if application.KindOf(err) == application.KindAuth {
			loginsFailed.Add(1)
			if h.Logger != nil {
				h.Logger.WithFields(logrus.Fields{
					"ip":         clientIP(c),
					"request_id": c.GetString(middleware.RequestIDKey),
				}).Warn("login rejected")
			}
		}
		respondError(c, h.Logger, err, "Login failed")
		return
	}
	loginsSucceeded.Add(1)
	response.Success(c, http.StatusOK, loginResponse{UserID: id, Message: "Login successful"})
}
