package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jwulff/glucowise-go/internal/auth"
	"github.com/jwulff/glucowise-go/internal/domain"
	"github.com/jwulff/glucowise-go/internal/nutritionix"
	"github.com/jwulff/glucowise-go/internal/storage"
	"github.com/jwulff/glucowise-go/internal/tracker"
)

// statusFor maps an error to the HTTP status reported for it.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrZeroQuantity),
		errors.Is(err, tracker.ErrInvalidInput),
		errors.Is(err, tracker.ErrFutureReading),
		errors.Is(err, tracker.ErrInvalidReading):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrInvalidCredentials),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized
	case storage.IsNotFound(err), errors.Is(err, nutritionix.ErrNoFood):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrEmailTaken), storage.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, tracker.ErrInsufficientReadings):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as a JSON error body. Internal errors are logged and
// reported without detail.
func (s *Server) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request error",
			zap.String("path", c.FullPath()),
			zap.String("user_id", currentUser(c)),
			zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
