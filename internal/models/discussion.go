package models

import "time"

// Discussion addressing modes.
const (
	DiscussionTypePublic  = "public"
	DiscussionTypePrivate = "private"
)

// Discussion is a project-scoped message: public (visible to every
// member) or private (point-to-point, recipient required, read flag
// meaningful).
type Discussion struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	ProjectID   uint              `gorm:"index;not null" json:"projectId"`
	AuthorID    uint              `gorm:"not null" json:"authorId"`
	Author      *User             `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Message     string            `gorm:"type:text;not null" json:"message"`
	Type        string            `gorm:"size:20;default:public" json:"type"` // public, private
	RecipientID *uint             `json:"recipientId"`
	Recipient   *User             `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Read        bool              `gorm:"default:false" json:"read"`
	Replies     []DiscussionReply `gorm:"foreignKey:DiscussionID" json:"replies"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (Discussion) TableName() string { return "discussions" }

// DiscussionReply is a sub-record appended to a parent discussion. It
// inherits the parent's visibility and is never deletable on its own.
type DiscussionReply struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	DiscussionID uint      `gorm:"index;not null" json:"discussionId"`
	AuthorID     uint      `gorm:"not null" json:"authorId"`
	Author       *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Message      string    `gorm:"type:text;not null" json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (DiscussionReply) TableName() string { return "discussion_replies" }
