package models

import "time"

// Notification types form a closed set; anything else is rejected at
// the API boundary.
const (
	NotificationTaskAssigned      = "task_assigned"
	NotificationTaskUpdated       = "task_updated"
	NotificationTaskCompleted     = "task_completed"
	NotificationProjectInvitation = "project_invitation"
	NotificationMemberAdded       = "member_added"
	NotificationAnnouncement      = "announcement"
	NotificationDiscussionMention = "discussion_mention"
	NotificationFileUploaded      = "file_uploaded"
)

var notificationTypes = map[string]bool{
	NotificationTaskAssigned:      true,
	NotificationTaskUpdated:       true,
	NotificationTaskCompleted:     true,
	NotificationProjectInvitation: true,
	NotificationMemberAdded:       true,
	NotificationAnnouncement:      true,
	NotificationDiscussionMention: true,
	NotificationFileUploaded:      true,
}

// ValidNotificationType reports whether t belongs to the closed type set.
func ValidNotificationType(t string) bool {
	return notificationTypes[t]
}

// Notification is a per-recipient delivery record created as a side
// effect of another entity's mutation. There is no push channel; the
// client polls the unread count.
type Notification struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RecipientID      uint      `gorm:"index;not null" json:"recipientId"`
	Recipient        *User     `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Type             string    `gorm:"size:50;not null" json:"type"`
	Title            string    `gorm:"size:200;not null" json:"title"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	RelatedProjectID *uint     `json:"relatedProjectId"`
	RelatedProject   *Project  `gorm:"foreignKey:RelatedProjectID" json:"relatedProject,omitempty"`
	RelatedTaskID    *uint     `json:"relatedTaskId"`
	RelatedTask      *Task     `gorm:"foreignKey:RelatedTaskID" json:"relatedTask,omitempty"`
	RelatedUserID    *uint     `json:"relatedUserId"`
	RelatedUser      *User     `gorm:"foreignKey:RelatedUserID" json:"relatedUser,omitempty"`
	Read             bool      `gorm:"default:false" json:"read"`
	Link             string    `gorm:"size:500" json:"link"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (Notification) TableName() string { return "notifications" }
