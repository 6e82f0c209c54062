package services

import (
	"strings"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type InvitationService struct {
	db         *gorm.DB
	projects   *ProjectService
	dispatcher *Dispatcher
}

func NewInvitationService(db *gorm.DB, projects *ProjectService, dispatcher *Dispatcher) *InvitationService {
	return &InvitationService{db: db, projects: projects, dispatcher: dispatcher}
}

type CreateInvitationsRequest struct {
	ProjectID uint     `json:"projectId"`
	Emails    []string `json:"emails"`
}

type CreateInvitationsResponse struct {
	Message     string                     `json:"message"`
	Invitations []models.ProjectInvitation `json:"invitations"`
}

type AcceptInvitationResponse struct {
	Message    string                    `json:"message"`
	Project    *ProjectView              `json:"project"`
	Invitation *models.ProjectInvitation `json:"invitation"`
}

type RejectInvitationResponse struct {
	Message    string                    `json:"message"`
	Invitation *models.ProjectInvitation `json:"invitation"`
}

// ListPendingByEmail returns pending invitations addressed to an email,
// hydrated with project and inviter, newest first.
func (s *InvitationService) ListPendingByEmail(email string) ([]models.ProjectInvitation, error) {
	var invitations []models.ProjectInvitation
	err := s.db.
		Preload("Project").
		Preload("InvitedBy").
		Where("email = ? AND status = ?", strings.ToLower(strings.TrimSpace(email)), models.InvitationStatusPending).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// CreateBatch fans out invitations for a project, skipping any email
// that already has a pending invitation there. Recipients who are
// registered users are notified.
func (s *InvitationService) CreateBatch(req *CreateInvitationsRequest, invitedByID uint) (*CreateInvitationsResponse, error) {
	if req.ProjectID == 0 || len(req.Emails) == 0 {
		return nil, response.NewBadRequest("Missing required fields")
	}

	project, err := s.projects.find(req.ProjectID)
	if err != nil {
		return nil, err
	}

	created := make([]models.ProjectInvitation, 0, len(req.Emails))
	for _, email := range req.Emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		var count int64
		s.db.Model(&models.ProjectInvitation{}).
			Where("project_id = ? AND email = ? AND status = ?", project.ID, email, models.InvitationStatusPending).
			Count(&count)
		if count > 0 {
			continue // idempotent fan-out
		}

		invitation := models.ProjectInvitation{
			ProjectID:   project.ID,
			Email:       email,
			InvitedByID: invitedByID,
			Status:      models.InvitationStatusPending,
		}
		if err := s.db.Create(&invitation).Error; err != nil {
			return nil, err
		}
		created = append(created, invitation)

		if user, err := findUserByEmail(s.db, email); err == nil {
			s.dispatcher.InvitationCreated(&invitation, project.Name, user.ID)
		}
	}

	return &CreateInvitationsResponse{
		Message:     "Invitations sent successfully",
		Invitations: created,
	}, nil
}

func (s *InvitationService) find(id uint) (*models.ProjectInvitation, error) {
	var invitation models.ProjectInvitation
	if err := s.db.First(&invitation, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Invitation not found")
		}
		return nil, err
	}
	return &invitation, nil
}

// Accept resolves a pending invitation: the invited email must belong
// to a registered user, who is added to the project's member set if
// absent, and the invitation is stamped accepted.
func (s *InvitationService) Accept(id uint) (*AcceptInvitationResponse, error) {
	invitation, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if invitation.Status != models.InvitationStatusPending {
		return nil, response.NewBadRequest("Invitation has already been processed")
	}

	user, err := findUserByEmail(s.db, invitation.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("User not found")
		}
		return nil, err
	}

	project, err := s.projects.find(invitation.ProjectID)
	if err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", project.ID, user.ID).
		Count(&count)
	if count == 0 {
		if err := s.db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: user.ID}).Error; err != nil {
			return nil, err
		}
	}

	userID := user.ID
	if err := s.db.Model(invitation).Updates(map[string]interface{}{
		"status":          models.InvitationStatusAccepted,
		"invited_user_id": userID,
	}).Error; err != nil {
		return nil, err
	}
	invitation.Status = models.InvitationStatusAccepted
	invitation.InvitedUserID = &userID

	view, err := s.projects.hydrate(project)
	if err != nil {
		return nil, err
	}

	return &AcceptInvitationResponse{
		Message:    "Invitation accepted successfully",
		Project:    view,
		Invitation: invitation,
	}, nil
}

// Reject marks a pending invitation rejected.
func (s *InvitationService) Reject(id uint) (*RejectInvitationResponse, error) {
	invitation, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if invitation.Status != models.InvitationStatusPending {
		return nil, response.NewBadRequest("Invitation has already been processed")
	}

	if err := s.db.Model(invitation).Update("status", models.InvitationStatusRejected).Error; err != nil {
		return nil, err
	}
	invitation.Status = models.InvitationStatusRejected

	return &RejectInvitationResponse{
		Message:    "Invitation rejected",
		Invitation: invitation,
	}, nil
}
