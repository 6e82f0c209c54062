package models

import "time"

// File is project-scoped file metadata, optionally carrying small
// inline base64 content. Larger files live behind an external URL.
type File struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	ProjectID    uint      `gorm:"index;not null" json:"projectId"`
	Project      *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Size         string    `gorm:"size:50" json:"size"`
	URL          string    `gorm:"size:1000" json:"url"`
	Content      string    `gorm:"type:text" json:"content,omitempty"` // base64 payload for small files
	MimeType     string    `gorm:"size:100" json:"mimeType"`
	UploadedByID uint      `gorm:"not null" json:"uploadedById"`
	UploadedBy   *User     `gorm:"foreignKey:UploadedByID" json:"uploadedBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (File) TableName() string { return "files" }
