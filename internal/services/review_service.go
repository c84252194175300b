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

type ReviewService struct {
	DB       *gorm.DB
	Notifier Notifier
}

func NewReviewService(db *gorm.DB, notifier Notifier) *ReviewService {
	return &ReviewService{DB: db, Notifier: notifier}
}

func (s *ReviewService) Create(ctx context.Context, actor *security.Principal, req *dtos.ReviewCreationRequest) (*models.Review, error) {
	subjectID, err := uuid.Parse(req.SubjectID)
	if err != nil {
		return nil, apperr.InvalidInput("invalid subject id")
	}
	if subjectID == actor.ID {
		return nil, apperr.InvalidInput("you cannot review yourself")
	}

	var subject models.User
	if err := s.DB.WithContext(ctx).First(&subject, "id = ?", subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", err)
	}

	var existing int64
	err = s.DB.WithContext(ctx).Model(&models.Review{}).
		Where("author_id = ? AND subject_id = ?", actor.ID, subjectID).
		Count(&existing).Error
	if err != nil {
		return nil, apperr.Internal("failed to check existing review", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("you have already reviewed this user")
	}

	review := &models.Review{
		AuthorID:  actor.ID,
		SubjectID: subjectID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if req.JobID != "" {
		jobID, err := uuid.Parse(req.JobID)
		if err != nil {
			return nil, apperr.InvalidInput("invalid job id")
		}
		review.JobID = &jobID
	}
	if err := s.DB.WithContext(ctx).Create(review).Error; err != nil {
		return nil, apperr.Internal("failed to create review", err)
	}

	if s.Notifier != nil {
		var author models.User
		authorName := "Someone"
		if err := s.DB.WithContext(ctx).First(&author, "id = ?", actor.ID).Error; err == nil {
			authorName = author.Email
		}
		if err := s.Notifier.Notify(Note{
			UserID:    subjectID,
			Kind:      KindNewReview,
			RelatedID: review.ID,
			Context:   map[string]string{"author": authorName},
		}); err != nil {
			log.Printf("review notification dispatch failed for user %s: %v", subjectID, err)
		}
	}

	return review, nil
}

// ListBySubject returns the reviews written about a user plus their average
// rating.
func (s *ReviewService) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]models.Review, float64, error) {
	var reviews []models.Review
	err := s.DB.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").Find(&reviews).Error
	if err != nil {
		return nil, 0, apperr.Internal("failed to list reviews", err)
	}
	if len(reviews) == 0 {
		return reviews, 0, nil
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	average := float64(sum) / float64(len(reviews))
	return reviews, average, nil
}
