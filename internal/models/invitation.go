package models

import "time"

// Invitation statuses. pending -> accepted or pending -> rejected,
// terminal either way.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusRejected = "rejected"
)

// ProjectInvitation is an email-addressed, project-scoped membership
// request. InvitedUserID is resolved when the invitation is accepted.
type ProjectInvitation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProjectID     uint      `gorm:"index:idx_invitation_project_email;not null" json:"projectId"`
	Project       *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Email         string    `gorm:"index:idx_invitation_project_email;index:idx_invitation_email_status;size:255;not null" json:"email"`
	InvitedByID   uint      `gorm:"not null" json:"invitedById"`
	InvitedBy     *User     `gorm:"foreignKey:InvitedByID" json:"invitedBy,omitempty"`
	Status        string    `gorm:"index:idx_invitation_email_status;size:20;default:pending" json:"status"`
	InvitedUserID *uint     `json:"invitedUserId"`
	InvitedUser   *User     `gorm:"foreignKey:InvitedUserID" json:"invitedUser,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (ProjectInvitation) TableName() string { return "project_invitations" }
