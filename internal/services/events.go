package services

import (
	"fmt"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/logger"
	"github.com/taskman/taskman/pkg/metrics"
)

// Dispatcher emits notification side effects. Every method is
// best-effort: the enqueue error is logged and swallowed so a failed
// delivery never fails the mutation that triggered it.
type Dispatcher struct {
	queue NotificationQueue
}

func NewDispatcher(queue NotificationQueue) *Dispatcher {
	return &Dispatcher{queue: queue}
}

func (d *Dispatcher) dispatch(job *NotificationJob) {
	if d == nil || d.queue == nil {
		return
	}
	if err := d.queue.Enqueue(job); err != nil {
		metrics.RecordNotificationDispatch(job.Type, "failed")
		logger.Error().
			Err(err).
			Str("type", job.Type).
			Uint("recipient", job.RecipientID).
			Msg("notification dispatch failed")
		return
	}
	metrics.RecordNotificationDispatch(job.Type, "delivered")
}

// TaskAssigned fires when a task is created with an assignee.
func (d *Dispatcher) TaskAssigned(task *models.Task) {
	if task.AssignedToID == nil {
		return
	}
	taskID := task.ID
	projectID := task.ProjectID
	d.dispatch(&NotificationJob{
		RecipientID:      *task.AssignedToID,
		Type:             models.NotificationTaskAssigned,
		Title:            "New Task Assignment",
		Message:          fmt.Sprintf("You have been assigned to %q", task.Title),
		RelatedProjectID: &projectID,
		RelatedTaskID:    &taskID,
		Link:             fmt.Sprintf("/tasks?project=%d", task.ProjectID),
	})
}

// TaskCompleted fires when a task transitions to done while assigned.
func (d *Dispatcher) TaskCompleted(task *models.Task) {
	if task.AssignedToID == nil {
		return
	}
	taskID := task.ID
	projectID := task.ProjectID
	d.dispatch(&NotificationJob{
		RecipientID:      *task.AssignedToID,
		Type:             models.NotificationTaskCompleted,
		Title:            "Task Completed",
		Message:          fmt.Sprintf("Task %q has been marked as done", task.Title),
		RelatedProjectID: &projectID,
		RelatedTaskID:    &taskID,
		Link:             fmt.Sprintf("/tasks?project=%d", task.ProjectID),
	})
}

// MemberAdded fires when a user is added to a project directly.
func (d *Dispatcher) MemberAdded(project *models.Project, user *models.User) {
	projectID := project.ID
	ownerID := project.OwnerID
	d.dispatch(&NotificationJob{
		RecipientID:      user.ID,
		Type:             models.NotificationMemberAdded,
		Title:            "Added to Project",
		Message:          fmt.Sprintf("You have been added to %q", project.Name),
		RelatedProjectID: &projectID,
		RelatedUserID:    &ownerID,
		Link:             fmt.Sprintf("/projects/%d", project.ID),
	})
}

// InvitationCreated fires when an invitation targets an already
// registered user.
func (d *Dispatcher) InvitationCreated(inv *models.ProjectInvitation, projectName string, recipientID uint) {
	projectID := inv.ProjectID
	inviterID := inv.InvitedByID
	d.dispatch(&NotificationJob{
		RecipientID:      recipientID,
		Type:             models.NotificationProjectInvitation,
		Title:            "Project Invitation",
		Message:          fmt.Sprintf("You have been invited to join %q", projectName),
		RelatedProjectID: &projectID,
		RelatedUserID:    &inviterID,
		Link:             "/invitations",
	})
}
