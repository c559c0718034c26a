package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// validates a bearer token if present but doesn't require it. Billing
// callers may identify the owner in the request body instead.
func (a *Authenticator) OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" || !a.Enabled() {
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")

		if len(parts) == 2 && parts[0] == "Bearer" {
			claims, err := a.ValidateJWT(parts[1])

			if err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextEmail, claims.Email)
			}
		}

		c.Next()
	}
}

// extracts user_id from context after OptionalAuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	return getString(c, ContextUserID)
}

// extracts the token email from context after OptionalAuthMiddleware
func GetEmail(c *gin.Context) (string, bool) {
	return getString(c, ContextEmail)
}

func getString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}

	s, ok := v.(string)
	return s, ok && s != ""
}
