package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"go-jobboard/internal/domain"
	"go-jobboard/internal/policy"
)

func applicationsCount(t *testing.T, svc *JobService, jobID string) int {
	t.Helper()
	j, err := svc.Get(context.Background(), jobID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	return j.ApplicationsCount
}

func TestApply(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	jobs := NewJobService(db, nil)
	ctx := context.Background()

	emp := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	seeker := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	j := createJob(t, db, emp, "Backend Engineer")

	a, err := apps.Apply(ctx, asActor(seeker), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/sam"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if a.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", a.Status)
	}
	if got := applicationsCount(t, jobs, j.ID); got != 1 {
		t.Fatalf("applicationsCount = %d, want 1", got)
	}
}

func TestApplyValidation(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	ctx := context.Background()

	emp := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	seeker := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	j := createJob(t, db, emp, "Backend Engineer")

	_, err := apps.Apply(ctx, asActor(emp), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/eve"})
	wantCode(t, err, http.StatusForbidden)

	_, err = apps.Apply(ctx, policy.Actor{}, ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/anon"})
	wantCode(t, err, http.StatusUnauthorized)

	_, err = apps.Apply(ctx, asActor(seeker), ApplyInput{JobID: j.ID})
	wantCode(t, err, http.StatusBadRequest)

	_, err = apps.Apply(ctx, asActor(seeker), ApplyInput{JobID: "missing", ResumeURL: "https://cv.example.com/sam"})
	wantCode(t, err, http.StatusNotFound)
}

func TestApplyTwiceRejectedAndCounterStable(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	jobs := NewJobService(db, nil)
	ctx := context.Background()

	emp := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	seeker := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	j := createJob(t, db, emp, "Backend Engineer")

	if _, err := apps.Apply(ctx, asActor(seeker), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/sam"}); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := apps.Apply(ctx, asActor(seeker), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/sam"})
	wantCode(t, err, http.StatusBadRequest)

	if got := applicationsCount(t, jobs, j.ID); got != 1 {
		t.Fatalf("applicationsCount after duplicate = %d, want 1", got)
	}
}

func TestCounterTracksAppliesAndWithdrawals(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	jobs := NewJobService(db, nil)
	ctx := context.Background()

	emp := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	j := createJob(t, db, emp, "Backend Engineer")

	const n = 5
	withdrawn := 0
	for i := 0; i < n; i++ {
		s := signupUser(t, db, fmt.Sprintf("Seeker %d", i), fmt.Sprintf("seeker%d@example.com", i), domain.RoleJobSeeker)
		a, err := apps.Apply(ctx, asActor(s), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/x"})
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		// The first two applicants change their mind.
		if i < 2 {
			if err := apps.Withdraw(ctx, asActor(s), a.ID); err != nil {
				t.Fatalf("withdraw %d: %v", i, err)
			}
			withdrawn++
		}
	}
	if got := applicationsCount(t, jobs, j.ID); got != n-withdrawn {
		t.Fatalf("applicationsCount = %d, want %d after %d applies and %d withdrawals", got, n-withdrawn, n, withdrawn)
	}
}

func TestWithdrawOnlyOwnApplication(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	ctx := context.Background()

	emp := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	sam := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	kim := signupUser(t, db, "Kim Seeker", "kim@example.com", domain.RoleJobSeeker)
	j := createJob(t, db, emp, "Backend Engineer")

	a, err := apps.Apply(ctx, asActor(sam), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/sam"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	wantCode(t, apps.Withdraw(ctx, asActor(kim), a.ID), http.StatusForbidden)
	wantCode(t, apps.Withdraw(ctx, asActor(emp), a.ID), http.StatusForbidden)
	if err := apps.Withdraw(ctx, asActor(sam), a.ID); err != nil {
		t.Fatalf("owner withdraw: %v", err)
	}
	wantCode(t, apps.Withdraw(ctx, asActor(sam), a.ID), http.StatusNotFound)
}

func TestUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	ctx := context.Background()

	owner := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	rival := signupUser(t, db, "Rita Rival", "rita@rival.com", domain.RoleEmployer)
	seeker := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	j := createJob(t, db, owner, "Backend Engineer")

	a, err := apps.Apply(ctx, asActor(seeker), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/sam"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	_, err = apps.UpdateStatus(ctx, asActor(rival), a.ID, domain.StatusReviewed)
	wantCode(t, err, http.StatusForbidden)
	_, err = apps.UpdateStatus(ctx, asActor(seeker), a.ID, domain.StatusOffered)
	wantCode(t, err, http.StatusForbidden)

	_, err = apps.UpdateStatus(ctx, asActor(owner), a.ID, "archived")
	wantCode(t, err, http.StatusBadRequest)
	got, err := apps.Get(ctx, asActor(seeker), a.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("status after rejected update = %q, want pending untouched", got.Status)
	}

	updated, err := apps.UpdateStatus(ctx, asActor(owner), a.ID, domain.StatusInterviewing)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Status != domain.StatusInterviewing {
		t.Fatalf("status = %q, want interviewing", updated.Status)
	}
	// Transitions are unordered; stepping "backwards" is allowed.
	if _, err := apps.UpdateStatus(ctx, asActor(owner), a.ID, domain.StatusPending); err != nil {
		t.Fatalf("backward transition: %v", err)
	}
}

func TestGetApplicationVisibility(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	ctx := context.Background()

	owner := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	rival := signupUser(t, db, "Rita Rival", "rita@rival.com", domain.RoleEmployer)
	sam := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	kim := signupUser(t, db, "Kim Seeker", "kim@example.com", domain.RoleJobSeeker)
	j := createJob(t, db, owner, "Backend Engineer")

	a, err := apps.Apply(ctx, asActor(sam), ApplyInput{JobID: j.ID, ResumeURL: "https://cv.example.com/sam"})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, err := apps.Get(ctx, asActor(sam), a.ID)
	if err != nil {
		t.Fatalf("applicant get: %v", err)
	}
	if got.Job == nil || got.Job.Title != "Backend Engineer" {
		t.Fatalf("job summary not attached: %+v", got.Job)
	}
	if got.Applicant == nil || got.Applicant.Email != "sam@example.com" {
		t.Fatalf("applicant info not attached: %+v", got.Applicant)
	}

	if _, err := apps.Get(ctx, asActor(owner), a.ID); err != nil {
		t.Fatalf("job owner get: %v", err)
	}
	_, err = apps.Get(ctx, asActor(kim), a.ID)
	wantCode(t, err, http.StatusForbidden)
	_, err = apps.Get(ctx, asActor(rival), a.ID)
	wantCode(t, err, http.StatusForbidden)
	_, err = apps.Get(ctx, asActor(sam), "missing")
	wantCode(t, err, http.StatusNotFound)
}

func TestListApplicationsScoping(t *testing.T) {
	db := setupTestDB(t)
	apps := NewApplicationService(db, nil)
	ctx := context.Background()

	owner := signupUser(t, db, "Eve Employer", "eve@acme.com", domain.RoleEmployer)
	rival := signupUser(t, db, "Rita Rival", "rita@rival.com", domain.RoleEmployer)
	sam := signupUser(t, db, "Sam Seeker", "sam@example.com", domain.RoleJobSeeker)
	kim := signupUser(t, db, "Kim Seeker", "kim@example.com", domain.RoleJobSeeker)

	j1 := createJob(t, db, owner, "Backend Engineer")
	j2 := createJob(t, db, owner, "Frontend Engineer")
	j3 := createJob(t, db, rival, "Data Engineer")

	for _, pair := range []struct {
		who *domain.User
		job string
	}{
		{sam, j1.ID}, {sam, j2.ID}, {sam, j3.ID}, {kim, j1.ID},
	} {
		if _, err := apps.Apply(ctx, asActor(pair.who), ApplyInput{JobID: pair.job, ResumeURL: "https://cv.example.com/x"}); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	_, _, _, _, err := apps.List(ctx, policy.Actor{}, ListApplicationsQuery{})
	wantCode(t, err, http.StatusUnauthorized)

	items, _, _, total, err := apps.List(ctx, asActor(sam), ListApplicationsQuery{})
	if err != nil {
		t.Fatalf("seeker list: %v", err)
	}
	if total != 3 {
		t.Fatalf("seeker sees %d applications, want own 3", total)
	}
	for _, a := range items {
		if a.UserID != sam.ID {
			t.Fatalf("seeker list leaked someone else's application: %+v", a)
		}
	}

	_, _, _, total, err = apps.List(ctx, asActor(owner), ListApplicationsQuery{})
	if err != nil {
		t.Fatalf("employer list: %v", err)
	}
	if total != 3 {
		t.Fatalf("employer sees %d applications across own jobs, want 3", total)
	}

	_, _, _, total, err = apps.List(ctx, asActor(owner), ListApplicationsQuery{JobID: j1.ID})
	if err != nil {
		t.Fatalf("employer list one job: %v", err)
	}
	if total != 2 {
		t.Fatalf("employer sees %d applications for job, want 2", total)
	}

	_, _, _, _, err = apps.List(ctx, asActor(owner), ListApplicationsQuery{JobID: j3.ID})
	wantCode(t, err, http.StatusForbidden)

	_, _, _, total, err = apps.List(ctx, asActor(owner), ListApplicationsQuery{Status: string(domain.StatusPending)})
	if err != nil {
		t.Fatalf("status filter: %v", err)
	}
	if total != 3 {
		t.Fatalf("status filter total = %d, want 3", total)
	}
}
