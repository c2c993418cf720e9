package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-jobboard/internal/domain"
	"go-jobboard/internal/service"
	"go-jobboard/internal/transport/http/ez"
	"go-jobboard/internal/transport/http/response"
)

func mountApplicationActions(e ez.EZ, apps *service.ApplicationService) {
	type listIn struct {
		JobID  string `form:"jobId"`
		Status string `form:"status"`
		Page   int    `form:"page,default=1"`
		Limit  int    `form:"limit,default=10"`
	}
	ez.Register(e, ez.Action[listIn, response.Page]{
		Method: http.MethodGet,
		Path:   "/applications",
		Binder: ez.BindQuery,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *listIn) (response.Page, error) {
			items, page, pages, total, err := apps.List(c.Request.Context(), ez.ActorFrom(c), service.ListApplicationsQuery{
				JobID:  in.JobID,
				Status: in.Status,
				Page:   in.Page,
				Limit:  in.Limit,
			})
			if err != nil {
				return response.Page{}, err
			}
			return response.NewPage(items, page, pages, total), nil
		},
	})

	ez.Register(e, ez.Action[service.ApplyInput, *domain.Application]{
		Method: http.MethodPost,
		Path:   "/applications",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *gorm.DB, in *service.ApplyInput) (*domain.Application, error) {
			return apps.Apply(c.Request.Context(), ez.ActorFrom(c), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Application]{
		Method: http.MethodGet,
		Path:   "/applications/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Application, error) {
			return apps.Get(c.Request.Context(), ez.ActorFrom(c), c.Param("id"))
		},
	})

	type statusIn struct {
		Status domain.ApplicationStatus `json:"status"`
	}
	ez.Register(e, ez.Action[statusIn, *domain.Application]{
		Method: http.MethodPut,
		Path:   "/applications/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *statusIn) (*domain.Application, error) {
			return apps.UpdateStatus(c.Request.Context(), ez.ActorFrom(c), c.Param("id"), in.Status)
		},
	})

	ez.Register(e, ez.Action[struct{}, response.Message]{
		Method: http.MethodDelete,
		Path:   "/applications/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (response.Message, error) {
			if err := apps.Withdraw(c.Request.Context(), ez.ActorFrom(c), c.Param("id")); err != nil {
				return response.Message{}, err
			}
			return response.Msg("application withdrawn successfully"), nil
		},
	})
}
