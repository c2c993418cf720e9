package service

import (
	"context"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/domain"
	"go-jobboard/internal/policy"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Job{}, &domain.Application{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func signupUser(t *testing.T, db *gorm.DB, name, email string, role domain.Role) *domain.User {
	t.Helper()
	u, err := NewUserService(db).Signup(context.Background(), SignupInput{
		Name:     name,
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return u
}

func asActor(u *domain.User) policy.Actor {
	return policy.Actor{ID: u.ID, Role: u.Role}
}

func createJob(t *testing.T, db *gorm.DB, employer *domain.User, title string) *domain.Job {
	t.Helper()
	j, err := NewJobService(db, nil).Create(context.Background(), asActor(employer), CreateJobInput{
		Title:           title,
		Location:        "Remote",
		Description:     "Build and ship things.",
		Category:        "Engineering",
		EmploymentType:  domain.EmploymentFullTime,
		ExperienceLevel: domain.LevelMid,
	})
	if err != nil {
		t.Fatalf("create job %q: %v", title, err)
	}
	return j
}

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	if err == nil {
		t.Fatalf("want error with status %d, got nil", code)
	}
	if got := apperr.CodeOf(err); got != code {
		t.Fatalf("want status %d, got %d (%v)", code, got, err)
	}
}
