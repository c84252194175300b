package services

import (
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
)

// canViewApplication: the applicant, the employer who posted the job, and
// admins. The job must arrive with its employer preloaded.
func canViewApplication(app *models.Application, actor *security.Principal) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleJobSeeker:
		return app.JobSeeker.UserID == actor.ID
	case models.RoleEmployer:
		return app.Job.Employer.UserID == actor.ID
	default:
		return false
	}
}

// canCreateApplication: only job seekers apply. Admins do not apply on
// anyone's behalf.
func canCreateApplication(actor *security.Principal) bool {
	return actor.Role == models.RoleJobSeeker
}

// permittedTargets is the hard-coded role policy for status transitions.
// Checked before ownership, so an employer asking for "withdrawn" fails as
// an invalid transition no matter whose job it is.
func permittedTarget(role models.Role, target models.ApplicationStatus) bool {
	switch role {
	case models.RoleEmployer:
		return target == models.ApplicationAccepted || target == models.ApplicationRejected
	case models.RoleJobSeeker:
		return target == models.ApplicationWithdrawn
	case models.RoleAdmin:
		return true
	default:
		return false
	}
}

// ownsApplicationTransition checks the actor against the loaded application:
// employers must own the parent job, job seekers must be the applicant.
func ownsApplicationTransition(app *models.Application, actor *security.Principal) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEmployer:
		return app.Job.Employer.UserID == actor.ID
	case models.RoleJobSeeker:
		return app.JobSeeker.UserID == actor.ID
	default:
		return false
	}
}
