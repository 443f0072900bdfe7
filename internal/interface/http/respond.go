package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-management/internal/application"
	"github.com/oksasatya/go-user-management/internal/interface/middleware"
	"github.com/oksasatya/go-user-management/pkg/helpers"
	"github.com/oksasatya/go-user-management/pkg/response"
	"github.com/oksasatya/go-user-management/pkg/validation"
)

func statusFor(kind application.ErrorKind) int {
	switch kind {
	case application.KindValidation, application.KindBadRequest:
		return http.StatusBadRequest
	case application.KindNotFound:
		return http.StatusNotFound
	case application.KindConflict:
		return http.StatusConflict
	case application.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as an envelope. Internal failures are logged and
// answered with fallback only.
func respondError(c *gin.Context, logger *logrus.Logger, err error, fallback string) {
	var appErr *application.Error
	if errors.As(err, &appErr) && appErr.Kind != application.KindInternal {
		response.Error(c, statusFor(appErr.Kind), appErr.Message)
		return
	}
	helpers.LogError(logger, fallback, err, logrus.Fields{
		"request_id": c.GetString(middleware.RequestIDKey),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
	response.Error(c, http.StatusInternalServerError, fallback)
}

// bindPayload decodes the JSON body as a loosely-typed payload. Anything
// that is not a JSON object becomes an empty payload, so the validator
// reports the missing fields.
func bindPayload(c *gin.Context, logger *logrus.Logger) validation.Payload {
	var p validation.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		if logger != nil {
			logger.WithField("details", validation.ToDetails(err)).Debug("unreadable payload")
		}
		return validation.Payload{}
	}
	if p == nil {
		return validation.Payload{}
	}
	return p
}
