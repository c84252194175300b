package dtos

import "github.com/workbridge/workbridge/internal/models"

type ApplicationCreationRequest struct {
	CoverLetter string `json:"cover_letter"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ApplicationResponse carries the application plus the denormalized job
// title for display.
type ApplicationResponse struct {
	models.Application
	JobTitle string `json:"job_title"`
}
