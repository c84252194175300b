package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/dtos"
	"github.com/workbridge/workbridge/internal/middleware"
	"github.com/workbridge/workbridge/internal/models"
	"github.com/workbridge/workbridge/internal/respond"
	"github.com/workbridge/workbridge/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
}

func NewApplicationHandler(applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications}
}

// Apply is POST /jobs/:id/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid job id"))
		return
	}
	var req dtos.ApplicationCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	app, err := h.Applications.Create(c.Request.Context(), jobID, principal, &req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "application submitted", app)
}

// Get is GET /applications/:id
func (h *ApplicationHandler) Get(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid application id"))
		return
	}
	app, err := h.Applications.Get(c.Request.Context(), id, principal)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "application", app)
}

// ListMine is GET /applications (job seeker's own)
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	apps, err := h.Applications.ListMine(c.Request.Context(), principal)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "your applications", apps)
}

// ListByJob is GET /jobs/:id/applications (owning employer or admin)
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid job id"))
		return
	}
	apps, err := h.Applications.ListByJob(c.Request.Context(), jobID, principal)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "applications", apps)
}

// UpdateStatus is PATCH /applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid application id"))
		return
	}
	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	app, err := h.Applications.Transition(c.Request.Context(), id, models.ApplicationStatus(req.Status), principal)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "application status updated", app)
}
