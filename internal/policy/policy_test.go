package policy

import (
	"net/http"
	"testing"

	"go-jobboard/internal/apperr"
	"go-jobboard/internal/domain"
)

var (
	employer = Actor{ID: "emp1", Role: domain.RoleEmployer}
	seeker   = Actor{ID: "js1", Role: domain.RoleJobSeeker}
	nobody   = Actor{}
)

func wantCode(t *testing.T, err error, code int) {
	t.Helper()
	if code == 0 {
		if err != nil {
			t.Fatalf("expected permit, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected deny with code %d, got permit", code)
	}
	if got := apperr.CodeOf(err); got != code {
		t.Fatalf("expected code %d, got %d (%v)", code, got, err)
	}
}

func TestCreateJob(t *testing.T) {
	wantCode(t, CanCreateJob(employer), 0)
	wantCode(t, CanCreateJob(seeker), http.StatusForbidden)
	wantCode(t, CanCreateJob(nobody), http.StatusUnauthorized)
}

func TestManageJobOwnership(t *testing.T) {
	job := &domain.Job{ID: "j1", CreatedBy: "emp1"}
	wantCode(t, CanManageJob(employer, job), 0)
	wantCode(t, CanManageJob(Actor{ID: "emp2", Role: domain.RoleEmployer}, job), http.StatusForbidden)
	wantCode(t, CanManageJob(seeker, job), http.StatusForbidden)
	wantCode(t, CanManageJob(nobody, job), http.StatusUnauthorized)
}

func TestApplyRoleGate(t *testing.T) {
	wantCode(t, CanApply(seeker), 0)
	wantCode(t, CanApply(employer), http.StatusForbidden)
	wantCode(t, CanApply(nobody), http.StatusUnauthorized)
}

func TestViewApplication(t *testing.T) {
	app := &domain.Application{ID: "a1", JobID: "j1", UserID: "js1"}
	job := &domain.Job{ID: "j1", CreatedBy: "emp1"}

	wantCode(t, CanViewApplication(seeker, app, job), 0)
	wantCode(t, CanViewApplication(Actor{ID: "js2", Role: domain.RoleJobSeeker}, app, job), http.StatusForbidden)
	wantCode(t, CanViewApplication(employer, app, job), 0)
	wantCode(t, CanViewApplication(Actor{ID: "emp2", Role: domain.RoleEmployer}, app, job), http.StatusForbidden)
	// Parent job gone: employer side has nothing to own.
	wantCode(t, CanViewApplication(employer, app, nil), http.StatusForbidden)
	wantCode(t, CanViewApplication(nobody, app, job), http.StatusUnauthorized)
}

func TestUpdateApplicationStatus(t *testing.T) {
	job := &domain.Job{ID: "j1", CreatedBy: "emp1"}
	wantCode(t, CanUpdateApplicationStatus(employer, job), 0)
	wantCode(t, CanUpdateApplicationStatus(Actor{ID: "emp2", Role: domain.RoleEmployer}, job), http.StatusForbidden)
	wantCode(t, CanUpdateApplicationStatus(seeker, job), http.StatusForbidden)
	wantCode(t, CanUpdateApplicationStatus(employer, nil), http.StatusForbidden)
	wantCode(t, CanUpdateApplicationStatus(nobody, job), http.StatusUnauthorized)
}

func TestWithdrawApplication(t *testing.T) {
	app := &domain.Application{ID: "a1", UserID: "js1"}
	wantCode(t, CanWithdrawApplication(seeker, app), 0)
	wantCode(t, CanWithdrawApplication(Actor{ID: "js2", Role: domain.RoleJobSeeker}, app), http.StatusForbidden)
	wantCode(t, CanWithdrawApplication(employer, app), http.StatusForbidden)
	wantCode(t, CanWithdrawApplication(nobody, app), http.StatusUnauthorized)
}

func TestUpdateProfileSelfOnly(t *testing.T) {
	u := &domain.User{ID: "js1"}
	wantCode(t, CanUpdateProfile(seeker, u), 0)
	wantCode(t, CanUpdateProfile(employer, u), http.StatusForbidden)
	wantCode(t, CanUpdateProfile(nobody, u), http.StatusUnauthorized)
}
