package services

import (
	"time"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db         *gorm.DB
	dispatcher *Dispatcher
}

func NewTaskService(db *gorm.DB, dispatcher *Dispatcher) *TaskService {
	return &TaskService{db: db, dispatcher: dispatcher}
}

// TaskView is the hydrated task representation: assignee and project
// joined in for the board and list views.
type TaskView struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ProjectID   uint            `json:"projectId"`
	Project     *ProjectSummary `json:"project"`
	AssignedTo  *UserSummary    `json:"assignedTo"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	DueDate     *time.Time      `json:"dueDate"`
	Order       int             `json:"order"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type CreateTaskRequest struct {
	ProjectID   uint       `json:"projectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *uint      `json:"assignedTo"`
	Order       int        `json:"order"`
}

// UpdateTaskRequest is a partial update; nil fields are left unchanged.
// A non-nil AssignedTo pointing at 0 clears the assignee.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *uint      `json:"assignedTo"`
	Order       *int       `json:"order"`
}

func (s *TaskService) hydrate(task *models.Task) *TaskView {
	view := &TaskView{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
		Order:       task.Order,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	view.Project = summarizeProject(task.Project)
	view.AssignedTo = summarizeUser(task.AssignedTo)
	return view
}

func (s *TaskService) preload() *gorm.DB {
	return s.db.Preload("Project").Preload("AssignedTo")
}

// ListByProject returns a project's tasks hydrated.
func (s *TaskService) ListByProject(projectID uint) ([]TaskView, error) {
	var tasks []models.Task
	if err := s.preload().
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}

	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, *s.hydrate(&tasks[i]))
	}
	return views, nil
}

// GetByID returns one hydrated task.
func (s *TaskService) GetByID(id uint) (*TaskView, error) {
	var task models.Task
	if err := s.preload().First(&task, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Task not found")
		}
		return nil, err
	}
	return s.hydrate(&task), nil
}

// Create stores a task. Creating with an assignee fires a task_assigned
// notification to that user; the dispatch never fails the create.
func (s *TaskService) Create(req *CreateTaskRequest) (*TaskView, error) {
	if req.Title == "" {
		return nil, response.NewBadRequest("Task title is required")
	}
	if req.ProjectID == 0 {
		return nil, response.NewBadRequest("Project is required")
	}

	status := req.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	task := models.Task{
		Title:        req.Title,
		Description:  req.Description,
		ProjectID:    req.ProjectID,
		AssignedToID: req.AssignedTo,
		Status:       status,
		Priority:     priority,
		DueDate:      req.DueDate,
		Order:        req.Order,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	if task.AssignedToID != nil {
		s.dispatcher.TaskAssigned(&task)
	}

	return s.GetByID(task.ID)
}

// Update applies a partial update. No transition table is enforced: any
// status may be set to any other. Transitioning to done from a non-done
// status while assigned fires a task_completed notification; nothing
// else is instrumented.
func (s *TaskService) Update(id uint, req *UpdateTaskRequest) (*TaskView, error) {
	var task models.Task
	if err := s.db.First(&task, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("Task not found")
		}
		return nil, err
	}

	prevStatus := task.Status

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
		task.Title = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = *req.Status
		task.Status = *req.Status
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Order != nil {
		updates["task_order"] = *req.Order
	}
	if req.AssignedTo != nil {
		if *req.AssignedTo == 0 {
			updates["assigned_to_id"] = nil
			task.AssignedToID = nil
		} else {
			updates["assigned_to_id"] = *req.AssignedTo
			task.AssignedToID = req.AssignedTo
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if task.Status == models.TaskStatusDone && prevStatus != models.TaskStatusDone && task.AssignedToID != nil {
		s.dispatcher.TaskCompleted(&task)
	}

	return s.GetByID(task.ID)
}

// Delete removes a task outright.
func (s *TaskService) Delete(id uint) error {
	result := s.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("Task not found")
	}
	return nil
}
