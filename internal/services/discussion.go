package services

import (
	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type DiscussionService struct {
	db *gorm.DB
}

func NewDiscussionService(db *gorm.DB) *DiscussionService {
	return &DiscussionService{db: db}
}

type CreateDiscussionRequest struct {
	ProjectID uint   `json:"projectId"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	Recipient *uint  `json:"recipient"`
}

type ReplyRequest struct {
	Message string `json:"message"`
}

// UnreadFromSender is one row of the per-sender unread breakdown.
type UnreadFromSender struct {
	SenderID uint         `json:"senderId"`
	Sender   *UserSummary `json:"sender"`
	Count    int64        `json:"count"`
}

func (s *DiscussionService) preload() *gorm.DB {
	return s.db.
		Preload("Author").
		Preload("Recipient").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("discussion_replies.created_at ASC")
		}).
		Preload("Replies.Author")
}

// ListByProject returns a project's discussions visible to the
// requester: every public message plus the private ones the requester
// authored or received. Other users' private exchanges never appear.
func (s *DiscussionService) ListByProject(projectID, requesterID uint) ([]models.Discussion, error) {
	var discussions []models.Discussion
	err := s.preload().
		Where("project_id = ?", projectID).
		Where(
			s.db.Where("type = ?", models.DiscussionTypePublic).
				Or("author_id = ?", requesterID).
				Or("recipient_id = ?", requesterID),
		).
		Order("created_at ASC").
		Find(&discussions).Error
	if err != nil {
		return nil, err
	}
	return discussions, nil
}

// GetByID returns one discussion. A private discussion is visible only
// to its author and recipient; anyone else gets a not-found.
func (s *DiscussionService) GetByID(id, requesterID uint) (*models.Discussion, error) {
	var discussion models.Discussion
	if err := s.preload().First(&discussion, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Discussion not found")
		}
		return nil, err
	}

	if discussion.Type == models.DiscussionTypePrivate &&
		discussion.AuthorID != requesterID &&
		(discussion.RecipientID == nil || *discussion.RecipientID != requesterID) {
		return nil, response.NewNotFound("Discussion not found")
	}

	return &discussion, nil
}

// Chat returns the private exchange between the requester and another
// user within a project, oldest first. As a side effect, every message
// in the thread authored by the counterpart and addressed to the
// requester is marked read.
func (s *DiscussionService) Chat(projectID, requesterID, otherID uint) ([]models.Discussion, error) {
	var messages []models.Discussion
	err := s.preload().
		Where("project_id = ? AND type = ?", projectID, models.DiscussionTypePrivate).
		Where(
			s.db.Where("author_id = ? AND recipient_id = ?", requesterID, otherID).
				Or("author_id = ? AND recipient_id = ?", otherID, requesterID),
		).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	err = s.db.Model(&models.Discussion{}).
		Where("project_id = ? AND type = ? AND author_id = ? AND recipient_id = ? AND read = ?",
			projectID, models.DiscussionTypePrivate, otherID, requesterID, false).
		Update("read", true).Error
	if err != nil {
		return nil, err
	}

	for i := range messages {
		if messages[i].AuthorID == otherID {
			messages[i].Read = true
		}
	}

	return messages, nil
}

// UnreadCounts groups a user's unread private messages in a project by
// sender.
func (s *DiscussionService) UnreadCounts(projectID, userID uint) ([]UnreadFromSender, error) {
	type row struct {
		AuthorID uint
		Count    int64
	}
	var rows []row
	err := s.db.Model(&models.Discussion{}).
		Select("author_id, COUNT(*) as count").
		Where("project_id = ? AND type = ? AND recipient_id = ? AND read = ?",
			projectID, models.DiscussionTypePrivate, userID, false).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make([]UnreadFromSender, 0, len(rows))
	for _, r := range rows {
		entry := UnreadFromSender{SenderID: r.AuthorID, Count: r.Count}
		var sender models.User
		if err := s.db.First(&sender, r.AuthorID).Error; err == nil {
			entry.Sender = summarizeUser(&sender)
		}
		counts = append(counts, entry)
	}
	return counts, nil
}

// Create posts a message. Private messages require a recipient.
func (s *DiscussionService) Create(req *CreateDiscussionRequest, authorID uint) (*models.Discussion, error) {
	if req.ProjectID == 0 || req.Message == "" {
		return nil, response.NewBadRequest("Missing required fields")
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.DiscussionTypePublic
	}
	if msgType != models.DiscussionTypePublic && msgType != models.DiscussionTypePrivate {
		return nil, response.NewBadRequest("Invalid discussion type")
	}
	if msgType == models.DiscussionTypePrivate && req.Recipient == nil {
		return nil, response.NewBadRequest("Private messages require a recipient")
	}

	discussion := models.Discussion{
		ProjectID: req.ProjectID,
		AuthorID:  authorID,
		Message:   req.Message,
		Type:      msgType,
		Replies:   []models.DiscussionReply{},
	}
	if msgType == models.DiscussionTypePrivate {
		discussion.RecipientID = req.Recipient
	}

	if err := s.db.Create(&discussion).Error; err != nil {
		return nil, err
	}

	return s.GetByID(discussion.ID, authorID)
}

// AddReply appends a reply to a discussion. Replies inherit the
// parent's visibility and cannot be deleted on their own.
func (s *DiscussionService) AddReply(id, authorID uint, req *ReplyRequest) (*models.Discussion, error) {
	if req.Message == "" {
		return nil, response.NewBadRequest("Reply message is required")
	}

	discussion, err := s.GetByID(id, authorID)
	if err != nil {
		return nil, err
	}

	reply := models.DiscussionReply{
		DiscussionID: discussion.ID,
		AuthorID:     authorID,
		Message:      req.Message,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}

	return s.GetByID(discussion.ID, authorID)
}

// Delete removes a discussion and its replies as one unit.
func (s *DiscussionService) Delete(id uint) error {
	var discussion models.Discussion
	if err := s.db.First(&discussion, id).Error; err != nil {
		if isNotFound(err) {
			return response.NewNotFound("Discussion not found")
		}
		return err
	}

	if err := s.db.Where("discussion_id = ?", discussion.ID).
		Delete(&models.DiscussionReply{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&discussion).Error
}
