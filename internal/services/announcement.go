package services

import (
	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

type CreateAnnouncementRequest struct {
	ProjectID   uint   `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Priority    string `json:"priority"`
}

func (s *AnnouncementService) preload() *gorm.DB {
	return s.db.Preload("Project").Preload("CreatedBy")
}

// ListActive returns the most recent active announcements across all
// projects, capped at ten.
func (s *AnnouncementService) ListActive() ([]models.Announcement, error) {
	var anns []models.Announcement
	if err := s.preload().
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(10).
		Find(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}

// ListByProject returns a project's active announcements.
func (s *AnnouncementService) ListByProject(projectID uint) ([]models.Announcement, error) {
	var anns []models.Announcement
	if err := s.preload().
		Where("project_id = ? AND is_active = ?", projectID, true).
		Order("created_at DESC").
		Find(&anns).Error; err != nil {
		return nil, err
	}
	return anns, nil
}

// Create publishes an announcement on a project. The project owner is
// recorded as the author.
func (s *AnnouncementService) Create(req *CreateAnnouncementRequest) (*models.Announcement, error) {
	if req.Title == "" || req.Description == "" || req.ProjectID == 0 {
		return nil, response.NewBadRequest("Missing required fields")
	}

	var project models.Project
	if err := s.db.First(&project, req.ProjectID).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}

	icon := req.Icon
	if icon == "" {
		icon = models.DefaultAnnouncementIcon
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	ann := models.Announcement{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Icon:        icon,
		Priority:    priority,
		IsActive:    true,
		CreatedByID: project.OwnerID,
	}
	if err := s.db.Create(&ann).Error; err != nil {
		return nil, err
	}

	if err := s.preload().First(&ann, ann.ID).Error; err != nil {
		return nil, err
	}
	return &ann, nil
}

// Delete removes an announcement outright.
func (s *AnnouncementService) Delete(id uint) error {
	result := s.db.Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("Announcement not found")
	}
	return nil
}
