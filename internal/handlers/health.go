package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/internal/services"
)

// HealthHandler reports service and subsystem status.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if q := services.GetNotificationQueue(); q != nil && q.IsAsync() {
		queueMode = "async (Redis)"
	}

	var unreadCount int64
	models.GetDB().Model(&models.Notification{}).
		Where("read = ?", false).
		Count(&unreadCount)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "taskman",
		"components": gin.H{
			"database":             dbStatus,
			"queue_mode":           queueMode,
			"unread_notifications": unreadCount,
		},
	})
}
