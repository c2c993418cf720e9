package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-jobboard/internal/domain"
)

type ApplicationRepo struct{ db *gorm.DB }

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

var _ domain.ApplicationRepository = (*ApplicationRepo)(nil)

func (r *ApplicationRepo) Create(ctx context.Context, a *domain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepo) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) FindByJobAndUser(ctx context.Context, jobID, userID string) (*domain.Application, error) {
	var a domain.Application
	err := r.db.WithContext(ctx).First(&a, "job_id = ? AND user_id = ?", jobID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Application{}).
		Where("id = ?", id).Update("status", status).Error
}

func (r *ApplicationRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Application{}).Error
}

func (r *ApplicationRepo) List(ctx context.Context, f domain.ApplicationFilter) ([]domain.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Application{})

	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.JobID != "" {
		q = q.Where("job_id = ?", f.JobID)
	}
	if f.JobIDs != nil {
		// An employer with no jobs gets an empty page, not everything.
		q = q.Where("job_id IN ?", f.JobIDs)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var apps []domain.Application
	if err := q.Order("created_at DESC").Offset(f.Offset).Limit(f.Limit).Find(&apps).Error; err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
