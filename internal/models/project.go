package models

import "time"

// Project statuses
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

const DefaultProjectColor = "#3498db"

// Project is a named workspace owned by one user. The owner is set at
// creation and never reassigned. Deleting a project does not cascade to
// its tasks, files, discussions or announcements.
type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:200;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Color       string     `gorm:"size:20;default:#3498db" json:"color"`
	OwnerID     uint       `gorm:"index;not null" json:"ownerId"`
	Owner       *User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Status      string     `gorm:"size:20;default:active" json:"status"` // active, completed
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Project) TableName() string { return "projects" }

// ProjectMember links a user to a project. The composite unique index
// makes duplicate membership impossible even under concurrent adds.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"projectId"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectMember) TableName() string { return "project_members" }
