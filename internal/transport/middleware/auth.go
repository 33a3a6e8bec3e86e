package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/doffpett/evhenter/internal/entity"
	"github.com/doffpett/evhenter/internal/service"
)

const userContextKey = "currentUser"

// RequireAuth resolves the Authorization bearer token to an active user
// and aborts with 401/403 otherwise.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "Unauthorized",
				"message": "No authentication token provided",
			})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			message := "Invalid or expired token"
			if errors.Is(err, entity.ErrInactiveAccount) {
				status = http.StatusForbidden
				message = "User account is inactive"
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":   http.StatusText(status),
				"message": message,
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by RequireAuth.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*entity.User)
	return user, ok
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
