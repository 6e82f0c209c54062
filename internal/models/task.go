package models

import "time"

// Task statuses. proposed -> todo -> in-progress -> done is the
// conventional path but no transition table is enforced; any status may
// be set to any other.
const (
	TaskStatusProposed   = "proposed"
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"
)

// Priorities shared by tasks and announcements.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a unit of work scoped to a project.
type Task struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	ProjectID    uint       `gorm:"index;not null" json:"projectId"`
	Project      *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssignedToID *uint      `json:"assignedToId"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID" json:"assignedTo,omitempty"`
	Status       string     `gorm:"size:20;default:todo" json:"status"`     // proposed, todo, in-progress, done
	Priority     string     `gorm:"size:20;default:medium" json:"priority"` // low, medium, high
	DueDate      *time.Time `json:"dueDate"`
	Order        int        `gorm:"column:task_order;default:0" json:"order"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Task) TableName() string { return "tasks" }
