package models

import "time"

const DefaultAnnouncementIcon = "fas fa-bullhorn"

// Announcement is a project-scoped broadcast message shown in aggregate
// feeds while active.
type Announcement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	ProjectID   uint      `gorm:"index;not null" json:"projectId"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Icon        string    `gorm:"size:100;default:fas fa-bullhorn" json:"icon"`
	Priority    string    `gorm:"size:20;default:medium" json:"priority"` // low, medium, high
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedByID uint      `json:"createdById"`
	CreatedBy   *User     `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Announcement) TableName() string { return "announcements" }
