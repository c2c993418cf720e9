package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/repo"
	"go-jobboard/internal/transport/http/ez"
	"go-jobboard/internal/transport/http/response"
)

// Moderation endpoints work at the repo level: admins are not subject to the
// ownership policy that gates the public API.
func mountAdminActions(admin *gin.RouterGroup, db *gorm.DB, l *zap.Logger) {
	users := repo.NewUserRepo(db)
	jobs := repo.NewJobRepo(db)

	e := ez.New(admin, db, l)

	type listUsersIn struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`
		WithDeleted bool   `form:"with_deleted"`
	}
	type usersOut struct {
		Total int64         `json:"total"`
		Items []domain.User `json:"items"`
	}
	ez.Register(e, ez.Action[listUsersIn, usersOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *listUsersIn) (usersOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			us, total, err := users.List(c.Request.Context(), domain.UserFilter{
				Query:       in.Q,
				WithDeleted: in.WithDeleted,
				Offset:      in.Offset,
				Limit:       in.Limit,
			})
			if err != nil {
				return usersOut{}, apperr.Internal("list users failed", err)
			}
			return usersOut{Total: total, Items: us}, nil
		},
	})

	ez.Register(e, ez.Action[struct{}, response.Message]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (response.Message, error) {
			id := c.Param("id")
			u, err := users.FindByID(c.Request.Context(), id)
			if err != nil {
				return response.Message{}, apperr.Internal("ban user failed", err)
			}
			if u == nil {
				return response.Message{}, apperr.NotFound("user not found")
			}
			if err := users.SoftDelete(c.Request.Context(), id); err != nil {
				return response.Message{}, apperr.Internal("ban user failed", err)
			}
			return response.Msg("user banned"), nil
		},
	})

	type listJobsIn struct {
		CreatedBy string `form:"createdBy"`
		Offset    int    `form:"offset,default=0"`
		Limit     int    `form:"limit,default=20"`
	}
	type jobsOut struct {
		Total int64        `json:"total"`
		Items []domain.Job `json:"items"`
	}
	ez.Register(e, ez.Action[listJobsIn, jobsOut]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, _ *gorm.DB, in *listJobsIn) (jobsOut, error) {
			if in.Limit <= 0 || in.Limit > 100 {
				in.Limit = 20
			}
			js, total, err := jobs.List(c.Request.Context(), domain.JobFilter{
				CreatedBy: in.CreatedBy,
				Offset:    in.Offset,
				Limit:     in.Limit,
			})
			if err != nil {
				return jobsOut{}, apperr.Internal("list jobs failed", err)
			}
			return jobsOut{Total: total, Items: js}, nil
		},
	})

	// Takedown removes the listing and its applications together, same as an
	// owner delete.
	ez.Register(e, ez.Action[struct{}, response.Message]{
		Method: http.MethodDelete,
		Path:   "/jobs/:id",
		Binder: ez.BindNone,
		UseTx:  true,
		Handler: func(c *gin.Context, tx *gorm.DB, _ *struct{}) (response.Message, error) {
			id := c.Param("id")
			var j domain.Job
			if err := tx.First(&j, "id = ?", id).Error; err != nil {
				return response.Message{}, apperr.NotFound("job not found")
			}
			if err := tx.Where("job_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
				return response.Message{}, apperr.Internal("remove job failed", err)
			}
			if err := tx.Where("id = ?", id).Delete(&domain.Job{}).Error; err != nil {
				return response.Message{}, apperr.Internal("remove job failed", err)
			}
			return response.Msg("job removed"), nil
		},
	})

	// Repair tool: resync applications_count from the application store for
	// rows written before counter updates became transactional.
	ez.Register(e, ez.Action[struct{}, response.Message]{
		Method: http.MethodPost,
		Path:   "/jobs/:id/recount",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (response.Message, error) {
			id := c.Param("id")
			j, err := jobs.FindByID(c.Request.Context(), id)
			if err != nil {
				return response.Message{}, apperr.Internal("recount failed", err)
			}
			if j == nil {
				return response.Message{}, apperr.NotFound("job not found")
			}
			if err := jobs.RecountApplications(c.Request.Context(), id); err != nil {
				return response.Message{}, apperr.Internal("recount failed", err)
			}
			return response.Msg("applications count resynced"), nil
		},
	})
}
