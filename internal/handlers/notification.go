package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/services"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
	feedLimit           int
}

// NewNotificationHandler creates the handler. feedLimit is the configured
// page size used when the request carries no limit.
func NewNotificationHandler(db *gorm.DB, feedLimit int) *NotificationHandler {
	if feedLimit <= 0 {
		feedLimit = services.DefaultFeedLimit
	}
	return &NotificationHandler{
		notificationService: services.NewNotificationService(db),
		feedLimit:           feedLimit,
	}
}

// ListForUser returns a user's notifications, newest first
// GET /api/notifications/user/:userId
func (h *NotificationHandler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	unreadOnly := c.Query("unreadOnly") == "true"
	limit := h.feedLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	notifications, err := h.notificationService.ListForUser(uint(userID), unreadOnly, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, notifications)
}

// UnreadCount returns the number of unread notifications
// GET /api/notifications/unread-count/:userId
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	count, err := h.notificationService.UnreadCount(uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, count)
}

// Create inserts a notification directly
// POST /api/notifications
func (h *NotificationHandler) Create(c *gin.Context) {
	var req services.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notificationService.Create(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, notification)
}

// MarkRead marks a single notification as read
// PATCH /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid notification id")
		return
	}

	notification, err := h.notificationService.MarkRead(uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, notification)
}

// MarkAllRead marks every notification of a user as read
// PATCH /api/notifications/mark-all-read/:userId
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.notificationService.MarkAllRead(uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "All notifications marked as read")
}

// Delete removes a notification
// DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid notification id")
		return
	}

	if err := h.notificationService.Delete(uint(id)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Notification deleted successfully")
}

// ClearRead deletes a user's read notifications
// DELETE /api/notifications/clear/:userId
func (h *NotificationHandler) ClearRead(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.notificationService.ClearRead(uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Read notifications cleared")
}
