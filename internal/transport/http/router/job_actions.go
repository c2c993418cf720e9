package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-jobboard/internal/domain"
	"go-jobboard/internal/service"
	"go-jobboard/internal/transport/http/ez"
	"go-jobboard/internal/transport/http/response"
)

func mountJobActions(e ez.EZ, jobs *service.JobService) {
	type listJobsIn struct {
		Title           string `form:"title"`
		Location        string `form:"location"`
		Category        string `form:"category"`
		EmploymentType  string `form:"employmentType"`
		ExperienceLevel string `form:"experienceLevel"`
		MinSalary       *int   `form:"minSalary"`
		MaxSalary       *int   `form:"maxSalary"`
		Skills          string `form:"skills"` // comma-separated
		Sort            string `form:"sort"`
		Page            int    `form:"page,default=1"`
		Limit           int    `form:"limit,default=10"`
	}
	ez.Register(e, ez.Action[listJobsIn, response.Page]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *listJobsIn) (response.Page, error) {
			var skills []string
			if s := strings.TrimSpace(in.Skills); s != "" {
				skills = strings.Split(s, ",")
			}
			items, page, pages, total, err := jobs.List(c.Request.Context(), service.ListJobsQuery{
				Title:           in.Title,
				Location:        in.Location,
				Category:        in.Category,
				EmploymentType:  in.EmploymentType,
				ExperienceLevel: in.ExperienceLevel,
				MinSalary:       in.MinSalary,
				MaxSalary:       in.MaxSalary,
				Skills:          skills,
				Sort:            in.Sort,
				Page:            in.Page,
				Limit:           in.Limit,
			})
			if err != nil {
				return response.Page{}, err
			}
			return response.NewPage(items, page, pages, total), nil
		},
	})

	ez.Register(e, ez.Action[service.CreateJobInput, *domain.Job]{
		Method: http.MethodPost,
		Path:   "/jobs",
		Binder: ez.BindJSON,
		Auth:   true,
		Status: http.StatusCreated,
		Handler: func(c *gin.Context, _ *gorm.DB, in *service.CreateJobInput) (*domain.Job, error) {
			return jobs.Create(c.Request.Context(), ez.ActorFrom(c), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, *domain.Job]{
		Method: http.MethodGet,
		Path:   "/jobs/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Job, error) {
			return jobs.Get(c.Request.Context(), c.Param("id"))
		},
	})

	ez.Register(e, ez.Action[service.UpdateJobInput, *domain.Job]{
		Method: http.MethodPut,
		Path:   "/jobs/:id",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, in *service.UpdateJobInput) (*domain.Job, error) {
			return jobs.Update(c.Request.Context(), ez.ActorFrom(c), c.Param("id"), *in)
		},
	})

	ez.Register(e, ez.Action[struct{}, response.Message]{
		Method: http.MethodDelete,
		Path:   "/jobs/:id",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (response.Message, error) {
			if err := jobs.Delete(c.Request.Context(), ez.ActorFrom(c), c.Param("id")); err != nil {
				return response.Message{}, err
			}
			return response.Msg("job deleted successfully"), nil
		},
	})
}
