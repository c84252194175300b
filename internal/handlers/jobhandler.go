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

type JobHandler struct {
	JobService *services.JobService
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(jobs *services.JobService) *JobHandler {
	return &JobHandler{JobService: jobs}
}

// CreateJob is POST /jobs (employer only)
func (h *JobHandler) CreateJob(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	job, err := h.JobService.Create(c.Request.Context(), principal, &req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Created(c, "job created", job)
}

// ListJobs is GET /jobs, the public filtered listing
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter dtos.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid filter: "+err.Error()))
		return
	}
	jobs, meta, err := h.JobService.List(c.Request.Context(), &filter)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Paginated(c, "jobs", jobs, meta)
}

// GetJob is GET /jobs/:id. The principal is optional here: anonymous callers
// see published jobs only, owners and admins also see drafts.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid job id"))
		return
	}
	principal, _ := middleware.Principal(c)
	job, err := h.JobService.Get(c.Request.Context(), id, principal)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "job", job)
}

// UpdateJob is PUT /jobs/:id (owning employer or admin)
func (h *JobHandler) UpdateJob(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid job id"))
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, apperr.InvalidInput("invalid request: "+err.Error()))
		return
	}
	job, err := h.JobService.Update(c.Request.Context(), id, principal, &req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "job updated", job)
}

// DeleteJob is DELETE /jobs/:id (owning employer or admin)
func (h *JobHandler) DeleteJob(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid job id"))
		return
	}
	if err := h.JobService.Delete(c.Request.Context(), id, principal); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "job deleted", nil)
}

// MyJobs is GET /employer/jobs
func (h *JobHandler) MyJobs(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	jobs, err := h.JobService.ListByEmployer(c.Request.Context(), principal)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "your jobs", jobs)
}
