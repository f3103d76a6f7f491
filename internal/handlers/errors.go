package handlers

import (
	"errors"
	"net/http"

	"github.com/chachabrian/wodlog-backend/internal/auth"
	"github.com/chachabrian/wodlog-backend/internal/stats"
	"github.com/chachabrian/wodlog-backend/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// statusFor maps domain errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, auth.ErrInvalidOrExpiredCode):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrAccountNotFound):
		return http.StatusForbidden
	case errors.Is(err, stats.ErrNoMaxAvailable), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": ...}. Client errors carry the domain message;
// server errors are logged and the client sees only fallback.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(fallback, zap.Error(err), zap.String("path", c.FullPath()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	msg := err.Error()
	if errors.Is(err, store.ErrNotFound) {
		msg = "Not found"
	}
	c.JSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
