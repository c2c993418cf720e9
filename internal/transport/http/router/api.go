package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-jobboard/internal/core/auth"
	"go-jobboard/internal/core/cache"
	"go-jobboard/internal/service"
	"go-jobboard/internal/transport/http/ez"
	mdw "go-jobboard/internal/transport/http/middleware"
)

// SessionCookie is how issued tokens travel back to browsers.
type SessionCookie struct {
	Name      string
	Secure    bool
	MaxAgeSec int
}

func NewAPIEngine(l *zap.Logger, db *gorm.DB, c *cache.Cache, jwter *auth.JWTer, ck SessionCookie) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(l),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
		mdw.Session(jwter, ck.Name),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := service.NewUserService(db)
	jobs := service.NewJobService(db, c)
	apps := service.NewApplicationService(db, c)

	api := ez.New(r.Group("/api"), db, l)
	mountAuthActions(api, users, jwter, ck)
	mountJobActions(api, jobs)
	mountApplicationActions(api, apps)
	mountUserActions(api, users)

	return r
}
