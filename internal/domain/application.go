package domain

import (
	"context"
	"time"
)

type ApplicationStatus string

const (
	StatusPending      ApplicationStatus = "pending"
	StatusReviewed     ApplicationStatus = "reviewed"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffered      ApplicationStatus = "offered"
	StatusRejected     ApplicationStatus = "rejected"
)

// ValidApplicationStatus checks enum membership only. Transition ordering is
// deliberately unrestricted, matching the behavior this service replaced.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case StatusPending, StatusReviewed, StatusInterviewing, StatusOffered, StatusRejected:
		return true
	}
	return false
}

// JobSummary and ApplicantInfo are read-side attachments; never persisted.
type JobSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

type ApplicantInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Application struct {
	ID string `gorm:"primaryKey;type:varchar(32)" json:"id"`

	// The unique index is the backstop for concurrent duplicate applies; the
	// service-level pre-check only exists for a friendlier error.
	JobID  string `gorm:"type:varchar(32);not null;uniqueIndex:idx_applications_job_user" json:"jobId"`
	UserID string `gorm:"type:varchar(32);not null;uniqueIndex:idx_applications_job_user;index" json:"userId"`

	ResumeURL   string            `gorm:"size:512;not null" json:"resumeUrl"`
	CoverLetter string            `gorm:"type:text" json:"coverLetter,omitempty"`
	Status      ApplicationStatus `gorm:"size:16;not null;default:pending" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Job       *JobSummary    `gorm:"-" json:"job,omitempty"`
	Applicant *ApplicantInfo `gorm:"-" json:"applicant,omitempty"`
}

func (Application) TableName() string { return "applications" }

type ApplicationFilter struct {
	UserID string
	JobID  string
	JobIDs []string
	Status string

	Offset int
	Limit  int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) error
	FindByID(ctx context.Context, id string) (*Application, error)
	FindByJobAndUser(ctx context.Context, jobID, userID string) (*Application, error)
	UpdateStatus(ctx context.Context, id string, status ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ApplicationFilter) ([]Application, int64, error)
}
