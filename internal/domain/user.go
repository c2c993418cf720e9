package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "jobSeeker"
	// RoleAdmin is issued out-of-band for the moderation API; regular signup
	// never assigns it.
	RoleAdmin Role = "admin"
)

func ValidSignupRole(r Role) bool {
	return r == RoleEmployer || r == RoleJobSeeker
}

type Education struct {
	Institution  string     `json:"institution"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldOfStudy"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
	Current      bool       `json:"current"`
}

type Experience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	From        *time.Time `json:"from,omitempty"`
	To          *time.Time `json:"to,omitempty"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
}

type User struct {
	ID           string `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string `gorm:"size:64;not null" json:"name"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         Role   `gorm:"size:16;not null" json:"role"`

	// Company is required for employers, empty otherwise.
	Company  string `gorm:"size:128" json:"company,omitempty"`
	Location string `gorm:"size:128" json:"location,omitempty"`
	Website  string `gorm:"size:255" json:"website,omitempty"`
	Bio      string `gorm:"type:text" json:"bio,omitempty"`

	Skills     StringList     `gorm:"type:text" json:"skills,omitempty"`
	Education  EducationList  `gorm:"type:text" json:"education,omitempty"`
	Experience ExperienceList `gorm:"type:text" json:"experience,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserFilter struct {
	Query       string // substring match on email/name
	WithDeleted bool
	Offset      int
	Limit       int
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDs(ctx context.Context, ids []string) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f UserFilter) ([]User, int64, error)
	Update(ctx context.Context, id string, patch map[string]any) error
	SoftDelete(ctx context.Context, id string) error
}
