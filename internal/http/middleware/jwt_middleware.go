package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/ffarena/internal/domain"
	"github.com/saradorri/ffarena/internal/infrastructure/auth"
	"github.com/saradorri/ffarena/internal/infrastructure/logger"
)

// JWTMiddleware verifies the caller and stores its user id in the gin and request contexts
func JWTMiddleware(jwtService auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.NewErrorResponse(
				domain.NewAppError(domain.ErrCodeTokenMissing, "Authorization header required", http.StatusUnauthorized, nil)))
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.NewErrorResponse(
				domain.NewAppError(domain.ErrCodeTokenInvalid, "Invalid authorization header format", http.StatusUnauthorized, nil)))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, domain.NewErrorResponse(
				domain.NewAppError(domain.ErrCodeTokenInvalid, "Invalid token", http.StatusUnauthorized, err)))
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("display_name", claims.DisplayName)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID))
		c.Next()
	}
}

// AdminMiddleware only lets the configured admin ids through; it must run after JWTMiddleware
func AdminMiddleware(adminIDs []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allowed[id] = struct{}{}
	}

	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if _, ok := allowed[userID]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, domain.NewErrorResponse(
				domain.NewForbiddenError("Moderator access required")))
			return
		}
		c.Next()
	}
}
