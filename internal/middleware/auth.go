package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/tutor-marketplace/internal/auth"
	"github.com/BruksfildServices01/tutor-marketplace/internal/config"
	"github.com/BruksfildServices01/tutor-marketplace/internal/httperr"
)

// Authenticate resolves the caller identity once per request. Requests
// without an Authorization header continue as anonymous; a header that is
// present but invalid is rejected.
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authorization header must be a Bearer token.")
			c.Abort()
			return
		}

		id, err := auth.ParseToken(cfg.JWTSecret, strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Token is invalid or expired.")
			c.Abort()
			return
		}

		auth.WithIdentity(c, id)
		c.Next()
	}
}

func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.FromContext(c).IsAuthenticated() {
			httperr.Unauthorized(c, "unauthorized", "Authentication required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func RequireRole(role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.FromContext(c)
		if !id.IsAuthenticated() {
			httperr.Unauthorized(c, "unauthorized", "Authentication required.")
			c.Abort()
			return
		}
		if id.Role != role {
			httperr.Forbidden(c, "forbidden", "You are not allowed to do this.")
			c.Abort()
			return
		}
		c.Next()
	}
}
