package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/core/auth"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/service"
	"go-jobboard/internal/transport/http/ez"
	"go-jobboard/internal/transport/http/response"
)

type sessionOut struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func setSessionCookie(c *gin.Context, ck SessionCookie, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ck.Name, token, ck.MaxAgeSec, "/", "", ck.Secure, true)
}

func clearSessionCookie(c *gin.Context, ck SessionCookie) {
	c.SetCookie(ck.Name, "", -1, "/", "", ck.Secure, true)
}

func mountAuthActions(e ez.EZ, users *service.UserService, jwter *auth.JWTer, ck SessionCookie) {
	ez.Register(e, ez.Action[service.SignupInput, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/signup",
		Binder: ez.BindJSON,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *gorm.DB, in *service.SignupInput) (sessionOut, error) {
			u, err := users.Signup(c.Request.Context(), *in)
			if err != nil {
				return sessionOut{}, err
			}
			tok, err := jwter.Issue(u.ID, string(u.Role))
			if err != nil {
				return sessionOut{}, apperr.Internal("issue token failed", err)
			}
			setSessionCookie(c, ck, tok)
			return sessionOut{Token: tok, User: u}, nil
		},
	})

	type signinIn struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	ez.Register(e, ez.Action[signinIn, sessionOut]{
		Method: http.MethodPost,
		Path:   "/auth/signin",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *signinIn) (sessionOut, error) {
			u, err := users.SignIn(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return sessionOut{}, err
			}
			tok, err := jwter.Issue(u.ID, string(u.Role))
			if err != nil {
				return sessionOut{}, apperr.Internal("issue token failed", err)
			}
			setSessionCookie(c, ck, tok)
			return sessionOut{Token: tok, User: u}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, response.Message]{
		Method: http.MethodPost,
		Path:   "/auth/signout",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (response.Message, error) {
			clearSessionCookie(c, ck)
			return response.Msg("signed out successfully"), nil
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.User, error) {
			return users.Get(c.Request.Context(), ez.ActorFrom(c).ID)
		},
	})
}
