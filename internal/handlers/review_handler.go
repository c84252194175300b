package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/middleware"
	"github.com/workbridge/workbridge/internal/respond"
	"github.com/workbridge/workbridge/internal/services"
)

type ReviewHandler struct {
	Reviews *services.ReviewService
}

func NewReviewHandler(reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

// Create is POST /reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	var req dtos.ReviewCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	review, err := h.Reviews.Create(c.Request.Context(), principal, &req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "review created", review)
}

// ListForUser is GET /users/:id/reviews
func (h *ReviewHandler) ListForUser(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid user id"))
		return
	}
	reviews, average, err := h.Reviews.ListBySubject(c.Request.Context(), subjectID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(200, gin.H{
		"success": true,
		"message": "reviews",
		"data":    reviews,
		"meta":    gin.H{"average_rating": average, "count": len(reviews)},
	})
}
