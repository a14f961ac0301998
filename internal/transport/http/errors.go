package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/light-bringer/backoffice-service/internal/app/identity/domain"
	"github.com/light-bringer/backoffice-service/internal/pkg/apperr"
)

const internalErrorMessage = "internal server error"

// statusFor maps an error kind to an HTTP status. The second result is false
// for errors that carry no known kind.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest, true
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, apperr.ErrPermissionDenied):
		return http.StatusForbidden, true
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperr.ErrAlreadyExists),
		errors.Is(err, apperr.ErrFailedPrecondition),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, true
	case errors.Is(err, apperr.ErrLocked):
		return http.StatusLocked, true
	default:
		return http.StatusInternalServerError, false
	}
}

// writeError renders err as {"error": msg}. Unknown errors are logged and
// replaced by fallback so internals never reach the client.
func writeError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	code, known := statusFor(err)
	if !known {
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.AbortWithStatusJSON(code, gin.H{"error": fallback})
		return
	}

	body := gin.H{"error": err.Error()}
	var locked *identitydomain.LockedError
	if errors.As(err, &locked) {
		body["retry_after_minutes"] = locked.Minutes()
	}
	c.AbortWithStatusJSON(code, body)
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
