package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hosteldesk/backend/internal/auth"
	"github.com/hosteldesk/backend/internal/models"
)

// Context keys for the claims stored in gin.Context. Constants so a typo
// fails at compile time, not silently at runtime.
const (
	ContextKeyUserID = "user_id"
	ContextKeyName   = "name"
	ContextKeyRole   = "role"
)

// AuthMiddleware validates the Bearer token and stores the caller's
// identity in the request context. An unauthenticated request never
// reaches a protected handler — this is the "redirect to login" edge of
// the view router, rendered as a 401.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid authorization format, expected: Bearer <token>",
			})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyName, claims.Name)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole gates a route group to specific roles. A caller with the
// wrong role is bounced back to the dashboard director, matching the
// original router's redirect-not-error behaviour.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.Redirect(http.StatusTemporaryRedirect, "/v1/dashboard")
		c.Abort()
	}
}

func GetUserID(c *gin.Context) string {
	val, exists := c.Get(ContextKeyUserID)
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}

func GetName(c *gin.Context) string {
	val, exists := c.Get(ContextKeyName)
	if !exists {
		return ""
	}
	name, ok := val.(string)
	if !ok {
		return ""
	}
	return name
}

func GetRole(c *gin.Context) models.Role {
	val, exists := c.Get(ContextKeyRole)
	if !exists {
		return ""
	}
	role, ok := val.(models.Role)
	if !ok {
		return ""
	}
	return role
}
