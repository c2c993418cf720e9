package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-jobboard/internal/domain"
	"go-jobboard/internal/service"
	"go-jobboard/internal/transport/http/ez"
)

func mountUserActions(e ez.EZ, users *service.UserService) {
	// Public profile; the credential hash never marshals.
	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/user/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.User, error) {
			return users.Get(c.Request.Context(), c.Param("id"))
		},
	})

	ez.Register(e, ez.Action[service.UpdateProfileInput, *domain.User]{
		Method: http.MethodPut,
		Path:   "/user/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *service.UpdateProfileInput) (*domain.User, error) {
			return users.UpdateProfile(c.Request.Context(), ez.ActorFrom(c), c.Param("id"), *in)
		},
	})
}
