package services

import (
	"time"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db         *gorm.DB
	dispatcher *Dispatcher
}

func NewProjectService(db *gorm.DB, dispatcher *Dispatcher) *ProjectService {
	return &ProjectService{db: db, dispatcher: dispatcher}
}

// ProjectView is the hydrated representation returned by every project
// endpoint: raw foreign keys replaced with joined owner and member rows.
type ProjectView struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Color       string        `json:"color"`
	Owner       *UserSummary  `json:"owner"`
	Members     []UserSummary `json:"members"`
	Status      string        `json:"status"`
	CompletedAt *time.Time    `json:"completedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type CreateProjectRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Color         string   `json:"color"`
	Members       []uint   `json:"members"`
	InvitedEmails []string `json:"invitedEmails"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
	Members     *[]uint `json:"members"`
}

type AddMemberRequest struct {
	Identifier string `json:"identifier"`
}

func (s *ProjectService) hydrate(project *models.Project) (*ProjectView, error) {
	view := &ProjectView{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Color:       project.Color,
		Status:      project.Status,
		CompletedAt: project.CompletedAt,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	var owner models.User
	if err := s.db.First(&owner, project.OwnerID).Error; err == nil {
		view.Owner = summarizeUser(&owner)
	}

	var memberships []models.ProjectMember
	if err := s.db.Preload("User").
		Where("project_id = ?", project.ID).
		Order("created_at ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}

	view.Members = make([]UserSummary, 0, len(memberships))
	for _, m := range memberships {
		if m.User != nil {
			view.Members = append(view.Members, *summarizeUser(m.User))
		}
	}

	return view, nil
}

// List returns all projects hydrated, newest first.
func (s *ProjectService) List() ([]ProjectView, error) {
	var projects []models.Project
	if err := s.db.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		view, err := s.hydrate(&projects[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// GetByID returns one hydrated project.
func (s *ProjectService) GetByID(id uint) (*ProjectView, error) {
	project, err := s.find(id)
	if err != nil {
		return nil, err
	}
	return s.hydrate(project)
}

func (s *ProjectService) find(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Project not found")
		}
		return nil, err
	}
	return &project, nil
}

// Create creates a project owned by the acting user. Entries in
// InvitedEmails are resolved by email or username and appended to the
// member set; identifiers that resolve to nobody are skipped.
func (s *ProjectService) Create(req *CreateProjectRequest, ownerID uint) (*ProjectView, error) {
	if req.Name == "" {
		return nil, response.NewBadRequest("Project name is required")
	}

	color := req.Color
	if color == "" {
		color = models.DefaultProjectColor
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		Color:       color,
		OwnerID:     ownerID,
		Status:      models.ProjectStatusActive,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}

	memberIDs := dedupeIDs(req.Members)
	for _, identifier := range req.InvitedEmails {
		user, err := findUserByIdentifier(s.db, identifier)
		if err != nil {
			continue // unresolved identifiers are skipped
		}
		if !containsID(memberIDs, user.ID) {
			memberIDs = append(memberIDs, user.ID)
		}
	}

	for _, userID := range memberIDs {
		if err := s.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: userID}).Error; err != nil {
			return nil, err
		}
	}

	return s.hydrate(&project)
}

// Update applies a partial update; only supplied fields change. A
// supplied member list replaces the current member set.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest) (*ProjectView, error) {
	project, err := s.find(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != "" {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Color != nil && *req.Color != "" {
		updates["color"] = *req.Color
	}
	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if req.Members != nil {
		if err := s.db.Where("project_id = ?", project.ID).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return nil, err
		}
		for _, userID := range dedupeIDs(*req.Members) {
			if err := s.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: userID}).Error; err != nil {
				return nil, err
			}
		}
	}

	return s.hydrate(project)
}

// Complete transitions the project to completed and stamps CompletedAt.
// Calling it again re-stamps the timestamp; the status stays completed.
func (s *ProjectService) Complete(id uint) (*ProjectView, error) {
	project, err := s.find(id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.db.Model(project).Updates(map[string]interface{}{
		"status":       models.ProjectStatusCompleted,
		"completed_at": now,
	}).Error; err != nil {
		return nil, err
	}
	project.Status = models.ProjectStatusCompleted
	project.CompletedAt = &now

	return s.hydrate(project)
}

// Delete removes the project and its membership rows. Tasks, files,
// discussions and announcements are intentionally left in place.
func (s *ProjectService) Delete(id uint) error {
	project, err := s.find(id)
	if err != nil {
		return err
	}

	if err := s.db.Where("project_id = ?", project.ID).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return err
	}
	return s.db.Delete(project).Error
}

// AddMember adds a user (by email or username) to the member set and
// notifies them.
func (s *ProjectService) AddMember(projectID uint, identifier string) (*ProjectView, error) {
	project, err := s.find(projectID)
	if err != nil {
		return nil, err
	}

	user, err := findUserByIdentifier(s.db, identifier)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	var count int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("User is already a member of this project")
	}

	if err := s.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: user.ID}).Error; err != nil {
		// the unique index closes the check-then-insert race
		return nil, response.NewBadRequest("User is already a member of this project")
	}

	s.dispatcher.MemberAdded(project, user)

	return s.hydrate(project)
}

// RemoveMember removes a user from the member set. Removing someone who
// is not a member is a no-op.
func (s *ProjectService) RemoveMember(projectID, userID uint) (*ProjectView, error) {
	project, err := s.find(projectID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("project_id = ? AND user_id = ?", project.ID, userID).
		Delete(&models.ProjectMember{}).Error; err != nil {
		return nil, err
	}

	return s.hydrate(project)
}

// IsMember reports membership (the owner counts as a member).
func (s *ProjectService) IsMember(projectID, userID uint) (bool, error) {
	project, err := s.find(projectID)
	if err != nil {
		return false, err
	}
	if project.OwnerID == userID {
		return true, nil
	}

	var count int64
	err = s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
