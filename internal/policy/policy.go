// Package policy is the single place authorization is decided. Handlers look
// the target up first (missing records are NotFound regardless of actor),
// then ask here before mutating. Decisions are pure: role plus ownership
// comparison, no store access.
package policy

import (
	"go-jobboard/internal/apperr"
	"go-jobboard/internal/domain"
)

type Actor struct {
	ID   string
	Role domain.Role
}

func (a Actor) Authenticated() bool { return a.ID != "" }

func unauthenticated() error { return apperr.Unauthorized("authentication required") }

// CanCreateJob: any employer may post.
func CanCreateJob(a Actor) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	if a.Role != domain.RoleEmployer {
		return apperr.Forbidden("only employers can create job listings")
	}
	return nil
}

// CanManageJob gates update and delete: owning employer only.
func CanManageJob(a Actor, j *domain.Job) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	if a.Role != domain.RoleEmployer || j.CreatedBy != a.ID {
		return apperr.Forbidden("you can only manage your own job listings")
	}
	return nil
}

// CanApply: any job seeker may apply; duplicates and job existence are the
// orchestrator's concern.
func CanApply(a Actor) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	if a.Role != domain.RoleJobSeeker {
		return apperr.Forbidden("only job seekers can submit applications")
	}
	return nil
}

// CanViewApplication: the applicant, or the employer owning the parent job.
// parentJob may be nil when the referenced job no longer exists.
func CanViewApplication(a Actor, app *domain.Application, parentJob *domain.Job) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	switch a.Role {
	case domain.RoleJobSeeker:
		if app.UserID != a.ID {
			return apperr.Forbidden("you can only view your own applications")
		}
		return nil
	case domain.RoleEmployer:
		if parentJob == nil || parentJob.CreatedBy != a.ID {
			return apperr.Forbidden("you can only view applications for your own job listings")
		}
		return nil
	case domain.RoleAdmin:
		return nil
	}
	return apperr.Forbidden("forbidden")
}

// CanUpdateApplicationStatus: employer owning the parent job.
func CanUpdateApplicationStatus(a Actor, parentJob *domain.Job) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	if a.Role != domain.RoleEmployer {
		return apperr.Forbidden("only employers can update application status")
	}
	if parentJob == nil || parentJob.CreatedBy != a.ID {
		return apperr.Forbidden("you can only update applications for your own job listings")
	}
	return nil
}

// CanWithdrawApplication: owning job seeker only.
func CanWithdrawApplication(a Actor, app *domain.Application) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	if a.Role != domain.RoleJobSeeker {
		return apperr.Forbidden("only job seekers can withdraw applications")
	}
	if app.UserID != a.ID {
		return apperr.Forbidden("you can only withdraw your own applications")
	}
	return nil
}

// CanUpdateProfile: self only. Public profile reads need no decision.
func CanUpdateProfile(a Actor, target *domain.User) error {
	if !a.Authenticated() {
		return unauthenticated()
	}
	if target.ID != a.ID {
		return apperr.Forbidden("you can only update your own profile")
	}
	return nil
}
