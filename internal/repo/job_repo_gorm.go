package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-jobboard/internal/domain"
)

type JobRepo struct{ db *gorm.DB }

func NewJobRepo(db *gorm.DB) *JobRepo { return &JobRepo{db: db} }

var _ domain.JobRepository = (*JobRepo)(nil)

// sortColumns whitelists client-suppliable sort fields (JSON name -> column).
var sortColumns = map[string]string{
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
	"title":             "title",
	"company":           "company",
	"salaryMin":         "salary_min",
	"salaryMax":         "salary_max",
	"applicationsCount": "applications_count",
}

func (r *JobRepo) Create(ctx context.Context, j *domain.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JobRepo) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	var j domain.Job
	err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepo) FindByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var jobs []domain.Job
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error
	return jobs, err
}

func (r *JobRepo) Update(ctx context.Context, id string, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", id).Updates(patch).Error
}

func (r *JobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Job{}).Error
}

func (r *JobRepo) List(ctx context.Context, f domain.JobFilter) ([]domain.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Job{})

	if s := strings.TrimSpace(f.Title); s != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(f.Location); s != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	if f.ExperienceLevel != "" {
		q = q.Where("experience_level = ?", f.ExperienceLevel)
	}
	if f.MinSalary != nil {
		q = q.Where("salary_min >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		q = q.Where("salary_max <= ?", *f.MaxSalary)
	}
	if len(f.Skills) > 0 {
		// Skills persist as a JSON array; an element match is a LIKE on the
		// quoted value. Any requested skill matching is enough.
		sub := r.db
		for i, sk := range f.Skills {
			cond := `skills LIKE ?`
			arg := `%"` + strings.TrimSpace(sk) + `"%`
			if i == 0 {
				sub = r.db.Where(cond, arg)
			} else {
				sub = sub.Or(cond, arg)
			}
		}
		q = q.Where(sub)
	}
	if f.CreatedBy != "" {
		q = q.Where("created_by = ?", f.CreatedBy)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order(orderClause(f.Sort))
	var jobs []domain.Job
	if err := q.Offset(f.Offset).Limit(f.Limit).Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func orderClause(sort string) clause.OrderByColumn {
	s := strings.TrimSpace(sort)
	desc := false
	if strings.HasPrefix(s, "-") {
		desc = true
		s = s[1:]
	}
	col, ok := sortColumns[s]
	if !ok {
		col, desc = "created_at", true
	}
	return clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: desc}
}

func (r *JobRepo) IDsByCreator(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.Job{}).
		Where("created_by = ?", userID).Pluck("id", &ids).Error
	return ids, err
}

// RecountApplications resets applications_count from the application store;
// repair tool for rows written before counter updates became transactional.
func (r *JobRepo) RecountApplications(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Model(&domain.Job{}).Where("id = ?", id).
		UpdateColumn("applications_count", gorm.Expr(
			"(SELECT COUNT(*) FROM applications WHERE applications.job_id = jobs.id)",
		)).Error
}
