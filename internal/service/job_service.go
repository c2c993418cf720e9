package service

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/core/cache"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/policy"
	"go-jobboard/internal/repo"
	"go-jobboard/pkg/utils"
)

const jobCacheTTL = 5 * time.Minute

type JobService struct {
	db    *gorm.DB
	jobs  domain.JobRepository
	users domain.UserRepository
	cache *cache.Cache // nil when redis is not configured
}

func NewJobService(db *gorm.DB, c *cache.Cache) *JobService {
	return &JobService{
		db:    db,
		jobs:  repo.NewJobRepo(db),
		users: repo.NewUserRepo(db),
		cache: c,
	}
}

func jobCacheKey(id string) string { return "job:" + id }

type CreateJobInput struct {
	Title               string                 `json:"title"`
	Location            string                 `json:"location"`
	Description         string                 `json:"description"`
	Requirements        domain.StringList      `json:"requirements"`
	Responsibilities    domain.StringList      `json:"responsibilities"`
	EmploymentType      domain.EmploymentType  `json:"employmentType"`
	ExperienceLevel     domain.ExperienceLevel `json:"experienceLevel"`
	SalaryMin           *int                   `json:"salaryMin"`
	SalaryMax           *int                   `json:"salaryMax"`
	Category            string                 `json:"category"`
	Skills              domain.StringList      `json:"skills"`
	ApplicationDeadline *time.Time             `json:"applicationDeadline"`
}

func (s *JobService) Create(ctx context.Context, actor policy.Actor, in CreateJobInput) (*domain.Job, error) {
	if err := policy.CanCreateJob(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.BadRequest("title is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, apperr.BadRequest("location is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, apperr.BadRequest("description is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, apperr.BadRequest("category is required")
	}
	if !domain.ValidEmploymentType(in.EmploymentType) {
		return nil, apperr.BadRequest("invalid employment type")
	}
	if !domain.ValidExperienceLevel(in.ExperienceLevel) {
		return nil, apperr.BadRequest("invalid experience level")
	}
	if in.SalaryMin != nil && in.SalaryMax != nil && *in.SalaryMin > *in.SalaryMax {
		return nil, apperr.BadRequest("salaryMin cannot exceed salaryMax")
	}

	// Company comes from the employer's account, never the request body.
	employer, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, apperr.Internal("create job failed", err)
	}
	if employer == nil {
		return nil, apperr.Unauthorized("account no longer exists")
	}
	company := employer.Company
	if company == "" {
		company = employer.Name
	}

	j := &domain.Job{
		ID:                  utils.NewID(),
		Title:               strings.TrimSpace(in.Title),
		Company:             company,
		Location:            strings.TrimSpace(in.Location),
		Description:         in.Description,
		Requirements:        in.Requirements,
		Responsibilities:    in.Responsibilities,
		EmploymentType:      in.EmploymentType,
		ExperienceLevel:     in.ExperienceLevel,
		SalaryMin:           in.SalaryMin,
		SalaryMax:           in.SalaryMax,
		Category:            in.Category,
		Skills:              in.Skills,
		ApplicationDeadline: in.ApplicationDeadline,
		CreatedBy:           actor.ID,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, apperr.Internal("create job failed", err)
	}
	return j, nil
}

// Get serves the public job detail, creator info attached, through the
// cache when one is configured.
func (s *JobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	if s.cache != nil {
		j, err := cache.GetOrLoadJSON(s.cache, ctx, jobCacheKey(id), jobCacheTTL, func(ctx context.Context) (*domain.Job, error) {
			return s.loadJob(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		if j == nil {
			return nil, apperr.NotFound("job not found")
		}
		return j, nil
	}
	j, err := s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, apperr.NotFound("job not found")
	}
	return j, nil
}

func (s *JobService) loadJob(ctx context.Context, id string) (*domain.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("fetch job failed", err)
	}
	if j == nil {
		return nil, nil
	}
	if creator, err := s.users.FindByID(ctx, j.CreatedBy); err == nil && creator != nil {
		j.Creator = &domain.CreatorInfo{ID: creator.ID, Name: creator.Name, Company: creator.Company}
	}
	return j, nil
}

type UpdateJobInput struct {
	Title               *string                 `json:"title"`
	Location            *string                 `json:"location"`
	Description         *string                 `json:"description"`
	Requirements        *domain.StringList      `json:"requirements"`
	Responsibilities    *domain.StringList      `json:"responsibilities"`
	EmploymentType      *domain.EmploymentType  `json:"employmentType"`
	ExperienceLevel     *domain.ExperienceLevel `json:"experienceLevel"`
	SalaryMin           *int                    `json:"salaryMin"`
	SalaryMax           *int                    `json:"salaryMax"`
	Category            *string                 `json:"category"`
	Skills              *domain.StringList      `json:"skills"`
	ApplicationDeadline *time.Time              `json:"applicationDeadline"`
}

func (s *JobService) Update(ctx context.Context, actor policy.Actor, id string, in UpdateJobInput) (*domain.Job, error) {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal("fetch job failed", err)
	}
	if j == nil {
		return nil, apperr.NotFound("job not found")
	}
	if err := policy.CanManageJob(actor, j); err != nil {
		return nil, err
	}

	patch := map[string]any{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.BadRequest("title is required")
		}
		patch["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Location != nil {
		patch["location"] = strings.TrimSpace(*in.Location)
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if in.Requirements != nil {
		patch["requirements"] = *in.Requirements
	}
	if in.Responsibilities != nil {
		patch["responsibilities"] = *in.Responsibilities
	}
	if in.EmploymentType != nil {
		if !domain.ValidEmploymentType(*in.EmploymentType) {
			return nil, apperr.BadRequest("invalid employment type")
		}
		patch["employment_type"] = *in.EmploymentType
	}
	if in.ExperienceLevel != nil {
		if !domain.ValidExperienceLevel(*in.ExperienceLevel) {
			return nil, apperr.BadRequest("invalid experience level")
		}
		patch["experience_level"] = *in.ExperienceLevel
	}
	if in.SalaryMin != nil {
		patch["salary_min"] = *in.SalaryMin
	}
	if in.SalaryMax != nil {
		patch["salary_max"] = *in.SalaryMax
	}
	if in.Category != nil {
		patch["category"] = *in.Category
	}
	if in.Skills != nil {
		patch["skills"] = *in.Skills
	}
	if in.ApplicationDeadline != nil {
		patch["application_deadline"] = *in.ApplicationDeadline
	}

	if err := s.jobs.Update(ctx, id, patch); err != nil {
		return nil, apperr.Internal("update job failed", err)
	}
	s.invalidate(ctx, id)
	j, err = s.loadJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return j, nil
}

// Delete removes the job and its applications in one transaction, so no
// application is ever left pointing at a missing job.
func (s *JobService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	j, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return apperr.Internal("fetch job failed", err)
	}
	if j == nil {
		return apperr.NotFound("job not found")
	}
	if err := policy.CanManageJob(actor, j); err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&domain.Application{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Job{}).Error
	})
	if err != nil {
		return apperr.Internal("delete job failed", err)
	}
	s.invalidate(ctx, id)
	return nil
}

type ListJobsQuery struct {
	Title           string
	Location        string
	Category        string
	EmploymentType  string
	ExperienceLevel string
	MinSalary       *int
	MaxSalary       *int
	Skills          []string
	Sort            string
	Page            int
	Limit           int
}

// List is public; no actor required.
func (s *JobService) List(ctx context.Context, q ListJobsQuery) ([]domain.Job, int, int, int64, error) {
	page, limit, offset := pageWindow(q.Page, q.Limit)
	jobs, total, err := s.jobs.List(ctx, domain.JobFilter{
		Title:           q.Title,
		Location:        q.Location,
		Category:        q.Category,
		EmploymentType:  q.EmploymentType,
		ExperienceLevel: q.ExperienceLevel,
		MinSalary:       q.MinSalary,
		MaxSalary:       q.MaxSalary,
		Skills:          q.Skills,
		Sort:            q.Sort,
		Offset:          offset,
		Limit:           limit,
	})
	if err != nil {
		return nil, 0, 0, 0, apperr.Internal("list jobs failed", err)
	}
	return jobs, page, totalPages(total, limit), total, nil
}

func (s *JobService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, jobCacheKey(id))
	}
}
