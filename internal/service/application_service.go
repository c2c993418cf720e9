package service

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/core/cache"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/policy"
	"go-jobboard/internal/repo"
	"go-jobboard/pkg/utils"
)

type ApplicationService struct {
	db    *gorm.DB
	apps  domain.ApplicationRepository
	jobs  domain.JobRepository
	users domain.UserRepository
	cache *cache.Cache // nil when redis is not configured
}

func NewApplicationService(db *gorm.DB, c *cache.Cache) *ApplicationService {
	return &ApplicationService{
		db:    db,
		apps:  repo.NewApplicationRepo(db),
		jobs:  repo.NewJobRepo(db),
		users: repo.NewUserRepo(db),
		cache: c,
	}
}

type ApplyInput struct {
	JobID       string `json:"jobId"`
	ResumeURL   string `json:"resumeUrl"`
	CoverLetter string `json:"coverLetter"`
}

// Apply creates a pending application and bumps the job's counter in the
// same transaction. The unique (job_id, user_id) index decides duplicate
// races; the pre-check exists only to answer with a friendlier message.
func (s *ApplicationService) Apply(ctx context.Context, actor policy.Actor, in ApplyInput) (*domain.Application, error) {
	if err := policy.CanApply(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.JobID) == "" {
		return nil, apperr.BadRequest("jobId is required")
	}
	if strings.TrimSpace(in.ResumeURL) == "" {
		return nil, apperr.BadRequest("resumeUrl is required")
	}

	job, err := s.jobs.FindByID(ctx, in.JobID)
	if err != nil {
		return nil, apperr.Internal("fetch job failed", err)
	}
	if job == nil {
		return nil, apperr.NotFound("job not found")
	}

	existing, err := s.apps.FindByJobAndUser(ctx, in.JobID, actor.ID)
	if err != nil {
		return nil, apperr.Internal("apply failed", err)
	}
	if existing != nil {
		return nil, apperr.BadRequest("you have already applied to this job")
	}

	app := &domain.Application{
		ID:          utils.NewID(),
		JobID:       in.JobID,
		UserID:      actor.ID,
		ResumeURL:   strings.TrimSpace(in.ResumeURL),
		CoverLetter: in.CoverLetter,
		Status:      domain.StatusPending,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Job{}).Where("id = ?", in.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count + ?", 1)).Error
	})
	if err != nil {
		if isDupKey(err) {
			return nil, apperr.BadRequest("you have already applied to this job")
		}
		return nil, apperr.Internal("apply failed", err)
	}
	s.invalidateJob(ctx, in.JobID)
	return app, nil
}

func (s *ApplicationService) Get(ctx context.Context, actor policy.Actor, id string) (*domain.Application, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("fetch application failed", err)
	}
	if app == nil {
		return nil, apperr.NotFound("application not found")
	}
	parentJob, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, apperr.Internal("fetch application failed", err)
	}
	if err := policy.CanViewApplication(actor, app, parentJob); err != nil {
		return nil, err
	}
	apps := []domain.Application{*app}
	s.attachInfo(ctx, apps)
	return &apps[0], nil
}

// UpdateStatus is the employer-side status transition. Any of the five enum
// values is reachable from any other; only membership is validated.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor policy.Actor, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("fetch application failed", err)
	}
	if app == nil {
		return nil, apperr.NotFound("application not found")
	}
	parentJob, err := s.jobs.FindByID(ctx, app.JobID)
	if err != nil {
		return nil, apperr.Internal("fetch application failed", err)
	}
	if err := policy.CanUpdateApplicationStatus(actor, parentJob); err != nil {
		return nil, err
	}
	if !domain.ValidApplicationStatus(status) {
		return nil, apperr.BadRequest("invalid status")
	}
	if err := s.apps.UpdateStatus(ctx, id, status); err != nil {
		return nil, apperr.Internal("update application failed", err)
	}
	app.Status = status
	return app, nil
}

// Withdraw deletes the application and decrements the job's counter in one
// transaction.
func (s *ApplicationService) Withdraw(ctx context.Context, actor policy.Actor, id string) error {
	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("fetch application failed", err)
	}
	if app == nil {
		return apperr.NotFound("application not found")
	}
	if err := policy.CanWithdrawApplication(actor, app); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Job{}).Where("id = ?", app.JobID).
			UpdateColumn("applications_count", gorm.Expr("applications_count - ?", 1)).Error
	})
	if err != nil {
		return apperr.Internal("withdraw application failed", err)
	}
	s.invalidateJob(ctx, app.JobID)
	return nil
}

type ListApplicationsQuery struct {
	JobID  string
	Status string
	Page   int
	Limit  int
}

// List scopes by role: job seekers see their own applications, employers
// see applications under jobs they own (one job or the union of all).
func (s *ApplicationService) List(ctx context.Context, actor policy.Actor, q ListApplicationsQuery) ([]domain.Application, int, int, int64, error) {
	if !actor.Authenticated() {
		return nil, 0, 0, 0, apperr.Unauthorized("authentication required")
	}
	page, limit, offset := pageWindow(q.Page, q.Limit)
	f := domain.ApplicationFilter{Status: q.Status, Offset: offset, Limit: limit}

	switch actor.Role {
	case domain.RoleJobSeeker:
		f.UserID = actor.ID
	case domain.RoleEmployer:
		if q.JobID != "" {
			job, err := s.jobs.FindByID(ctx, q.JobID)
			if err != nil {
				return nil, 0, 0, 0, apperr.Internal("list applications failed", err)
			}
			if job == nil || job.CreatedBy != actor.ID {
				return nil, 0, 0, 0, apperr.Forbidden("you can only view applications for your own job listings")
			}
			f.JobID = q.JobID
		} else {
			ids, err := s.jobs.IDsByCreator(ctx, actor.ID)
			if err != nil {
				return nil, 0, 0, 0, apperr.Internal("list applications failed", err)
			}
			if ids == nil {
				ids = []string{}
			}
			f.JobIDs = ids
		}
	case domain.RoleAdmin:
		f.JobID = q.JobID
	default:
		return nil, 0, 0, 0, apperr.Forbidden("forbidden")
	}

	apps, total, err := s.apps.List(ctx, f)
	if err != nil {
		return nil, 0, 0, 0, apperr.Internal("list applications failed", err)
	}
	s.attachInfo(ctx, apps)
	return apps, page, totalPages(total, limit), total, nil
}

// attachInfo decorates applications with job and applicant summaries in two
// batched lookups.
func (s *ApplicationService) attachInfo(ctx context.Context, apps []domain.Application) {
	if len(apps) == 0 {
		return
	}
	jobIDs := make([]string, 0, len(apps))
	userIDs := make([]string, 0, len(apps))
	seenJob := map[string]bool{}
	seenUser := map[string]bool{}
	for _, a := range apps {
		if !seenJob[a.JobID] {
			seenJob[a.JobID] = true
			jobIDs = append(jobIDs, a.JobID)
		}
		if !seenUser[a.UserID] {
			seenUser[a.UserID] = true
			userIDs = append(userIDs, a.UserID)
		}
	}

	jobByID := map[string]domain.JobSummary{}
	if jobs, err := s.jobs.FindByIDs(ctx, jobIDs); err == nil {
		for _, j := range jobs {
			jobByID[j.ID] = domain.JobSummary{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location}
		}
	}
	userByID := map[string]domain.ApplicantInfo{}
	if users, err := s.users.FindByIDs(ctx, userIDs); err == nil {
		for _, u := range users {
			userByID[u.ID] = domain.ApplicantInfo{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}

	for i := range apps {
		if j, ok := jobByID[apps[i].JobID]; ok {
			apps[i].Job = &j
		}
		if u, ok := userByID[apps[i].UserID]; ok {
			apps[i].Applicant = &u
		}
	}
}

func (s *ApplicationService) invalidateJob(ctx context.Context, jobID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, "job:"+jobID)
	}
}
