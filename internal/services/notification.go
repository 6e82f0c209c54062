package services

import (
	"context"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

// DefaultFeedLimit caps the notification feed when no limit is supplied.
const DefaultFeedLimit = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

type CreateNotificationRequest struct {
	Recipient      uint   `json:"recipient"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	RelatedProject *uint  `json:"relatedProject"`
	RelatedTask    *uint  `json:"relatedTask"`
	RelatedUser    *uint  `json:"relatedUser"`
	Link           string `json:"link"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

func (s *NotificationService) preload() *gorm.DB {
	return s.db.
		Preload("RelatedProject").
		Preload("RelatedTask").
		Preload("RelatedUser")
}

// ListForUser returns a user's feed, newest first, optionally unread
// only, capped at limit (default 50).
func (s *NotificationService) ListForUser(userID uint, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	query := s.preload().Where("recipient_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount counts a user's unread notifications.
func (s *NotificationService) UnreadCount(userID uint) (*UnreadCountResponse, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// Create validates and stores a notification, returning it hydrated.
func (s *NotificationService) Create(req *CreateNotificationRequest) (*models.Notification, error) {
	if req.Recipient == 0 || req.Type == "" || req.Title == "" || req.Message == "" {
		return nil, response.NewBadRequest("Missing required fields")
	}
	if !models.ValidNotificationType(req.Type) {
		return nil, response.NewBadRequest("Invalid notification type")
	}

	notification := models.Notification{
		RecipientID:      req.Recipient,
		Type:             req.Type,
		Title:            req.Title,
		Message:          req.Message,
		RelatedProjectID: req.RelatedProject,
		RelatedTaskID:    req.RelatedTask,
		RelatedUserID:    req.RelatedUser,
		Link:             req.Link,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	return s.getByID(notification.ID)
}

// Deliver writes a queued notification job to the recipient's feed. It
// is the processor behind the notification queue.
func (s *NotificationService) Deliver(ctx context.Context, job *NotificationJob) error {
	notification := models.Notification{
		RecipientID:      job.RecipientID,
		Type:             job.Type,
		Title:            job.Title,
		Message:          job.Message,
		RelatedProjectID: job.RelatedProjectID,
		RelatedTaskID:    job.RelatedTaskID,
		RelatedUserID:    job.RelatedUserID,
		Link:             job.Link,
	}
	return s.db.WithContext(ctx).Create(&notification).Error
}

func (s *NotificationService) getByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.preload().First(&notification, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Notification not found")
		}
		return nil, err
	}
	return &notification, nil
}

// MarkRead marks one notification as read.
func (s *NotificationService) MarkRead(id uint) (*models.Notification, error) {
	notification, err := s.getByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(notification).Update("read", true).Error; err != nil {
		return nil, err
	}
	notification.Read = true
	return notification, nil
}

// MarkAllRead marks every unread notification of a user as read.
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}

// Delete removes one notification.
func (s *NotificationService) Delete(id uint) error {
	result := s.db.Delete(&models.Notification{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("Notification not found")
	}
	return nil
}

// ClearRead deletes all read notifications of a user.
func (s *NotificationService) ClearRead(userID uint) error {
	return s.db.
		Where("recipient_id = ? AND read = ?", userID, true).
		Delete(&models.Notification{}).Error
}
