package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/chachabrian/wodlog-backend/internal/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserIDKey is the gin context key holding the authenticated account id.
const UserIDKey = "userId"

type TokenValidator interface {
	ValidateToken(ctx context.Context, raw string) (uint, error)
}

func AuthMiddleware(v TokenValidator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		// First try to get token from Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenString = strings.TrimSpace(parts[1])
			}
		}

		// If not found in header, try query parameter (for WebSocket)
		if tokenString == "" {
			tokenString = c.Query("token")
		}

		userID, err := v.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			status, msg := authFailure(err)
			if status == http.StatusInternalServerError {
				log.Error("token validation failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized, "Access token required"
	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusForbidden, "Invalid or expired token"
	case errors.Is(err, auth.ErrAccountNotFound):
		return http.StatusForbidden, "User not found"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
