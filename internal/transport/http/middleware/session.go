package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-jobboard/internal/core/auth"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/transport/http/response"
)

// Session resolves the acting identity from the session cookie, falling back
// to a Bearer header for non-browser clients. It never rejects: public
// endpoints stay reachable, and per-endpoint Auth/Roles flags decide what an
// unauthenticated actor may do.
func Session(j *auth.JWTer, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if ck, err := c.Cookie(cookieName); err == nil {
			token = ck
		}
		if token == "" {
			if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
				token = strings.TrimPrefix(ah, "Bearer ")
			}
		}
		if token != "" {
			if claims, err := j.Parse(token); err == nil {
				c.Set("userId", claims.UID)
				c.Set("userRole", claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRole hard-gates a whole group (the moderation API).
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("userId")
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err("authentication required"))
			return
		}
		if domain.Role(c.GetString("userRole")) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Err("forbidden"))
			return
		}
		c.Next()
	}
}
