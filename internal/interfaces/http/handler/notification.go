package handler

import (
	notificationapp "github.com/ecomercado/backend/internal/application/notification"
	"github.com/ecomercado/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles inbox endpoints
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List returns the caller's inbox, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	notifications, err := h.notificationService.List(c.Request.Context(), email, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notifications)
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notificationService.CountUnread(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, gin.H{"unread": count})
}

// MarkRead flags one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), email, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkAllRead flags every unread notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), email); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
