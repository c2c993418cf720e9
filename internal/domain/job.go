package domain

import (
	"context"
	"time"
)

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

func ValidExperienceLevel(l ExperienceLevel) bool {
	switch l {
	case LevelEntry, LevelMid, LevelSenior, LevelExecutive:
		return true
	}
	return false
}

// CreatorInfo is the public slice of the posting employer attached to job
// reads; never persisted.
type CreatorInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
}

type Job struct {
	ID               string          `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Title            string          `gorm:"size:191;not null" json:"title"`
	Company          string          `gorm:"size:128;not null" json:"company"`
	Location         string          `gorm:"size:128;not null" json:"location"`
	Description      string          `gorm:"type:text;not null" json:"description"`
	Requirements     StringList      `gorm:"type:text" json:"requirements"`
	Responsibilities StringList      `gorm:"type:text" json:"responsibilities"`
	EmploymentType   EmploymentType  `gorm:"size:16;not null" json:"employmentType"`
	ExperienceLevel  ExperienceLevel `gorm:"size:16;not null" json:"experienceLevel"`
	SalaryMin        *int            `json:"salaryMin,omitempty"`
	SalaryMax        *int            `json:"salaryMax,omitempty"`
	Category         string          `gorm:"size:64;not null" json:"category"`
	Skills           StringList      `gorm:"type:text" json:"skills"`

	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`

	// CreatedBy always references a user with role employer.
	CreatedBy string `gorm:"type:varchar(32);index;not null" json:"createdBy"`

	// ApplicationsCount tracks live applications; mutated only inside the
	// same transaction as the paired application write.
	ApplicationsCount int `gorm:"not null;default:0" json:"applicationsCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	Creator *CreatorInfo `gorm:"-" json:"creator,omitempty"`
}

func (Job) TableName() string { return "jobs" }

type JobFilter struct {
	Title           string
	Location        string
	Category        string
	EmploymentType  string
	ExperienceLevel string
	MinSalary       *int
	MaxSalary       *int
	Skills          []string
	CreatedBy       string

	Sort   string // signed field name, e.g. "-createdAt"
	Offset int
	Limit  int
}

type JobRepository interface {
	Create(ctx context.Context, j *Job) error
	FindByID(ctx context.Context, id string) (*Job, error)
	FindByIDs(ctx context.Context, ids []string) ([]Job, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f JobFilter) ([]Job, int64, error)
	IDsByCreator(ctx context.Context, userID string) ([]string, error)
	RecountApplications(ctx context.Context, id string) error
}
