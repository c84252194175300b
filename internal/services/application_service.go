package services

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/security"
	"gorm.io/gorm"
)

// ApplicationService owns the application lifecycle: creation, the status
// state machine and its cascade, and the view gates.
type ApplicationService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewApplicationService(db *gorm.DB, notifier Notifier) *ApplicationService {
	return &ApplicationService{DB: db, Notifier: notifier}
}

// Create files a new application for the job seeker behind actor.
// The duplicate check is existence-based: any prior row for the
// (job, job seeker) pair blocks a new one, including withdrawn or rejected.
func (s *ApplicationService) Create(ctx context.Context, jobID uuid.UUID, actor *security.Principal, req *dtos.ApplicationCreationRequest) (*dtos.ApplicationResponse, error) {
	if !canCreateApplication(actor) {
		return nil, apperr.Forbidden("only job seekers can apply")
	}

	var profile models.JobSeekerProfile
	if err := s.DB.WithContext(ctx).First(&profile, "user_id = ?", actor.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidInput("job seeker profile is required")
		}
		return nil, apperr.Internal("failed to load profile", err)
	}

	var job models.Job
	if err := s.DB.WithContext(ctx).Preload("Employer").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, apperr.Internal("failed to load job", err)
	}
	if job.Status != models.JobActive {
		return nil, apperr.InvalidInput("job is not accepting applications")
	}

	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("job_id = ? AND job_seeker_id = ?", job.ID, profile.ID).
		Count(&count).Error
	if err != nil {
		return nil, apperr.Internal("failed to check existing application", err)
	}
	if count > 0 {
		return nil, apperr.Conflict("you have already applied to this job")
	}

	app := &models.Application{
		JobID:       job.ID,
		JobSeekerID: profile.ID,
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationPending,
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, apperr.Internal("failed to create application", err)
	}

	s.dispatch(Note{
		UserID:    job.Employer.UserID,
		Kind:      KindNewApplication,
		RelatedID: app.ID,
		Context: map[string]string{
			"applicant": profile.FullName,
			"job_title": job.Title,
		},
	})

	return &dtos.ApplicationResponse{Application: *app, JobTitle: job.Title}, nil
}

// Get returns one application if the actor may see it: the applicant, the
// employer who posted the job, or an admin.
func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID, actor *security.Principal) (*dtos.ApplicationResponse, error) {
	app, err := s.loadApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canViewApplication(app, actor) {
		return nil, apperr.Forbidden("you cannot view this application")
	}
	return &dtos.ApplicationResponse{Application: *app, JobTitle: app.Job.Title}, nil
}

// ListMine returns the job seeker's own applications.
func (s *ApplicationService) ListMine(ctx context.Context, actor *security.Principal) ([]dtos.ApplicationResponse, error) {
	var profile models.JobSeekerProfile
	if err := s.DB.WithContext(ctx).First(&profile, "user_id = ?", actor.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidInput("job seeker profile is required")
		}
		return nil, apperr.Internal("failed to load profile", err)
	}
	var apps []models.Application
	err := s.DB.WithContext(ctx).Preload("Job").
		Where("job_seeker_id = ?", profile.ID).
		Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list applications", err)
	}
	return toResponses(apps), nil
}

// ListByJob returns every application on a job, for the owning employer or
// an admin.
func (s *ApplicationService) ListByJob(ctx context.Context, jobID uuid.UUID, actor *security.Principal) ([]dtos.ApplicationResponse, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).Preload("Employer").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("job not found")
		}
		return nil, apperr.Internal("failed to load job", err)
	}
	if actor.Role != models.RoleAdmin && job.Employer.UserID != actor.ID {
		return nil, apperr.Forbidden("not your job posting")
	}
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").Find(&apps).Error
	if err != nil {
		return nil, apperr.Internal("failed to list applications", err)
	}
	responses := make([]dtos.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dtos.ApplicationResponse{Application: app, JobTitle: job.Title})
	}
	return responses, nil
}

// Transition applies the status state machine:
//
//	employer   -> accepted, rejected  (must own the parent job)
//	job_seeker -> withdrawn           (must be the applicant)
//	admin      -> any                 (no ownership check)
//
// The role/target check runs before the application is even loaded, so an
// employer asking for "withdrawn" is an invalid transition no matter whose
// job it is. Accepting cascades inside one transaction: pending siblings
// become rejected and the job becomes filled, without re-checking that the
// job is still active.
func (s *ApplicationService) Transition(ctx context.Context, id uuid.UUID, requested models.ApplicationStatus, actor *security.Principal) (*dtos.ApplicationResponse, error) {
	if !models.ValidApplicationStatus(requested) {
		return nil, apperr.InvalidInput("invalid status")
	}
	if !permittedTarget(actor.Role, requested) {
		return nil, apperr.InvalidTransition("your role cannot set this status")
	}

	app, err := s.loadApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ownsApplicationTransition(app, actor) {
		return nil, apperr.Forbidden("you cannot modify this application")
	}

	var rejectedSiblings []models.Application
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Application{}).Where("id = ?", app.ID).
			Update("status", requested).Error; err != nil {
			return err
		}
		if requested != models.ApplicationAccepted {
			return nil
		}
		// Cascade: every other pending application on the job loses, and
		// the job is filled. Unconditional per the state machine.
		if err := tx.Where("job_id = ? AND id <> ? AND status = ?",
			app.JobID, app.ID, models.ApplicationPending).
			Find(&rejectedSiblings).Error; err != nil {
			return err
		}
		if len(rejectedSiblings) > 0 {
			if err := tx.Model(&models.Application{}).
				Where("job_id = ? AND id <> ? AND status = ?",
					app.JobID, app.ID, models.ApplicationPending).
				Update("status", models.ApplicationRejected).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Job{}).Where("id = ?", app.JobID).
			Update("status", models.JobFilled).Error
	})
	if err != nil {
		return nil, apperr.Internal("failed to update application status", err)
	}
	// Reload so the response carries the persisted status and timestamps.
	if err := s.DB.WithContext(ctx).First(app, "id = ?", app.ID).Error; err != nil {
		return nil, apperr.Internal("failed to reload application", err)
	}

	s.dispatch(Note{
		UserID:    app.JobSeeker.UserID,
		Kind:      KindApplicationStatus,
		RelatedID: app.ID,
		Context: map[string]string{
			"status":    string(requested),
			"job_title": app.Job.Title,
		},
	})
	if requested == models.ApplicationAccepted {
		for _, sibling := range rejectedSiblings {
			var seeker models.JobSeekerProfile
			if err := s.DB.WithContext(ctx).First(&seeker, "id = ?", sibling.JobSeekerID).Error; err != nil {
				log.Printf("skipping reject notification for application %s: %v", sibling.ID, err)
				continue
			}
			s.dispatch(Note{
				UserID:    seeker.UserID,
				Kind:      KindApplicationStatus,
				RelatedID: sibling.ID,
				Context: map[string]string{
					"status":    string(models.ApplicationRejected),
					"job_title": app.Job.Title,
				},
			})
		}
	}

	return &dtos.ApplicationResponse{Application: *app, JobTitle: app.Job.Title}, nil
}

// dispatch fires a best-effort notification. Failures are logged and
// swallowed; they never roll back the primary operation.
func (s *ApplicationService) dispatch(note Note) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(note); err != nil {
		log.Printf("notification dispatch failed (%s for user %s): %v", note.Kind, note.UserID, err)
	}
}

func (s *ApplicationService) loadApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).
		Preload("Job").Preload("Job.Employer").Preload("JobSeeker").
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("application not found")
		}
		return nil, apperr.Internal("failed to load application", err)
	}
	return &app, nil
}

func toResponses(apps []models.Application) []dtos.ApplicationResponse {
	responses := make([]dtos.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, dtos.ApplicationResponse{Application: app, JobTitle: app.Job.Title})
	}
	return responses
}
