package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/workbridge/workbridge/internal/apperr"
	"github.com/workbridge/workbridge/internal/middleware"
	"github.com/workbridge/workbridge/internal/respond"
	"github.com/workbridge/workbridge/internal/services"
)

type NotificationHandler struct {
	Notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Notifications: notifications}
}

// List is GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	items, meta, err := h.Notifications.ListByUser(c.Request.Context(), principal.ID, page, limit)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Paginated(c, "notifications", items, meta)
}

// UnreadCount is GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	count, err := h.Notifications.UnreadCount(c.Request.Context(), principal.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "unread count", gin.H{"count": count})
}

// MarkRead is PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid notification id"))
		return
	}
	n, err := h.Notifications.MarkRead(c.Request.Context(), id, principal.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "notification read", n)
}

// MarkAllRead is PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	ids, err := h.Notifications.MarkAllRead(c.Request.Context(), principal.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "notifications read", gin.H{"updated_ids": ids})
}

// Delete is DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		respond.Error(c, apperr.Unauthorized("not authenticated"))
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respond.Error(c, apperr.InvalidInput("invalid notification id"))
		return
	}
	if err := h.Notifications.Delete(c.Request.Context(), id, principal.ID); err != nil {
		respond.Error(c, err)
		return
	}
	respond.OK(c, "notification deleted", nil)
}
