package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-jobboard/internal/core/auth"
	"go-jobboard/internal/domain"
	mdw "go-jobboard/internal/transport/http/middleware"
)

// NewAdminEngine serves the moderation API on its own port. Admin tokens are
// issued out-of-band; there is no admin signup.
func NewAdminEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, cookieName string) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.Ginzap(l, time.RFC3339, true),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(mdw.Session(jwter, cookieName), mdw.RequireRole(domain.RoleAdmin))
	mountAdminActions(admin, db, l)

	return r
}
