package services

import (
	"testing"
	"time"

	"github.com/taskman/taskman/internal/models"
)

func TestProjectCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")

	view, err := svc.Create(&CreateProjectRequest{Name: "Website Redesign"}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if view.Owner == nil || view.Owner.ID != owner.ID {
		t.Error("owner should be the acting user")
	}
	if view.Color != models.DefaultProjectColor {
		t.Errorf("Color = %q, expected default %q", view.Color, models.DefaultProjectColor)
	}
	if view.Status != models.ProjectStatusActive {
		t.Errorf("Status = %q, expected active", view.Status)
	}
	if view.CompletedAt != nil {
		t.Error("new project should not have CompletedAt")
	}
	if len(view.Members) != 0 {
		t.Errorf("expected no members, got %d", len(view.Members))
	}
}

func TestProjectCreate_NameRequired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")

	_, err := svc.Create(&CreateProjectRequest{}, owner.ID)
	if err == nil {
		t.Fatal("Create() should require a name")
	}
	if err.Error() != "Project name is required" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestProjectCreate_MembersAndInvitedEmails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	view, err := svc.Create(&CreateProjectRequest{
		Name:    "Launch",
		Members: []uint{bob.ID, bob.ID}, // duplicates collapse
		InvitedEmails: []string{
			"carol@example.com",  // resolves by email
			"bob",                // already a member, by username
			"ghost@example.com",  // unknown, silently skipped
		},
	}, owner.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if len(view.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(view.Members))
	}
	ids := map[uint]bool{}
	for _, m := range view.Members {
		ids[m.ID] = true
	}
	if !ids[bob.ID] || !ids[carol.ID] {
		t.Errorf("members should be bob and carol, got %v", view.Members)
	}
}

func TestProjectCreate_MemberInsertFailureSurfaces(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")

	if err := db.Migrator().DropTable(&models.ProjectMember{}); err != nil {
		t.Fatalf("failed to drop membership table: %v", err)
	}

	if _, err := svc.Create(&CreateProjectRequest{
		Name:    "Doomed",
		Members: []uint{bob.ID},
	}, owner.ID); err == nil {
		t.Error("a failed membership insert should fail the create")
	}
}

func TestProjectUpdate_Partial(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Old Name", owner.ID)

	desc := "new description"
	view, err := svc.Update(project.ID, &UpdateProjectRequest{Description: &desc})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if view.Name != "Old Name" {
		t.Errorf("unsupplied name should survive, got %q", view.Name)
	}
	if view.Description != "new description" {
		t.Errorf("Description = %q", view.Description)
	}
}

func TestProjectUpdate_MembersReplaceSet(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	project := createTestProject(t, db, "Launch", owner.ID)
	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID})

	members := []uint{carol.ID}
	view, err := svc.Update(project.ID, &UpdateProjectRequest{Members: &members})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if len(view.Members) != 1 || view.Members[0].ID != carol.ID {
		t.Errorf("member set should be replaced by carol, got %v", view.Members)
	}
}

func TestProjectComplete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	view, err := svc.Complete(project.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if view.Status != models.ProjectStatusCompleted {
		t.Errorf("Status = %q, expected completed", view.Status)
	}
	if view.CompletedAt == nil {
		t.Fatal("CompletedAt should be stamped")
	}

	first := *view.CompletedAt
	again, err := svc.Complete(project.ID)
	if err != nil {
		t.Fatalf("second Complete() error = %v", err)
	}
	if again.Status != models.ProjectStatusCompleted {
		t.Error("status should stay completed")
	}
	if again.CompletedAt == nil || again.CompletedAt.Before(first) {
		t.Error("CompletedAt should be re-stamped")
	}
}

func TestProjectDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", owner.ID)
	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID})
	db.Create(&models.Task{Title: "Orphan", ProjectID: project.ID, Status: models.TaskStatusTodo, Priority: models.PriorityMedium})

	if err := svc.Delete(project.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var projects, memberships, tasks int64
	db.Model(&models.Project{}).Count(&projects)
	db.Model(&models.ProjectMember{}).Count(&memberships)
	db.Model(&models.Task{}).Count(&tasks)

	if projects != 0 {
		t.Error("project should be gone")
	}
	if memberships != 0 {
		t.Error("membership rows should be gone")
	}
	if tasks != 1 {
		t.Error("tasks are not cascaded")
	}

	if err := svc.Delete(project.ID); err == nil {
		t.Error("deleting a missing project should 404")
	}
}

func TestProjectAddMember(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", owner.ID)

	view, err := svc.AddMember(project.ID, "bob@example.com")
	if err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	if len(view.Members) != 1 || view.Members[0].ID != bob.ID {
		t.Errorf("bob should be a member, got %v", view.Members)
	}

	// the new member is notified
	var notifications []models.Notification
	db.Where("recipient_id = ?", bob.ID).Find(&notifications)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].Type != models.NotificationMemberAdded {
		t.Errorf("notification type = %q", notifications[0].Type)
	}

	// adding again fails
	if _, err := svc.AddMember(project.ID, "bob"); err == nil {
		t.Error("adding an existing member should fail")
	} else if err.Error() != "User is already a member of this project" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestProjectAddMember_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	if _, err := svc.AddMember(9999, "owner"); err == nil {
		t.Error("unknown project should 404")
	}
	if _, err := svc.AddMember(project.ID, "ghost"); err == nil {
		t.Error("unknown user should 404")
	}
}

func TestProjectRemoveMember_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", owner.ID)
	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID})

	view, err := svc.RemoveMember(project.ID, bob.ID)
	if err != nil {
		t.Fatalf("RemoveMember() error = %v", err)
	}
	if len(view.Members) != 0 {
		t.Errorf("bob should be gone, got %v", view.Members)
	}

	// removing a non-member is a no-op
	if _, err := svc.RemoveMember(project.ID, bob.ID); err != nil {
		t.Errorf("second RemoveMember() error = %v", err)
	}
}

func TestProjectIsMember(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	project := createTestProject(t, db, "Launch", owner.ID)
	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID})

	tests := []struct {
		name     string
		userID   uint
		expected bool
	}{
		{"owner counts", owner.ID, true},
		{"member", bob.ID, true},
		{"outsider", carol.ID, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.IsMember(project.ID, tt.userID)
			if err != nil {
				t.Fatalf("IsMember() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("IsMember(%d) = %v, expected %v", tt.userID, got, tt.expected)
			}
		})
	}
}

func TestProjectList_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewProjectService(db, newTestDispatcher(db))
	owner := createTestUser(t, db, "owner")

	first := createTestProject(t, db, "First", owner.ID)
	second := createTestProject(t, db, "Second", owner.ID)
	db.Model(second).Update("created_at", first.CreatedAt.Add(time.Second))

	views, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(views))
	}
	if views[0].Name != "Second" {
		t.Errorf("newest should come first, got %q", views[0].Name)
	}
}
