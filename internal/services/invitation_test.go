package services

import (
	"testing"

	"github.com/taskman/taskman/internal/models"
	"gorm.io/gorm"
)

func invitationServices(db *gorm.DB) (*InvitationService, *ProjectService) {
	dispatcher := newTestDispatcher(db)
	projects := NewProjectService(db, dispatcher)
	return NewInvitationService(db, projects, dispatcher), projects
}

func TestInvitationCreateBatch(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", owner.ID)

	resp, err := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"BOB@example.com", "stranger@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("CreateBatch() error = %v", err)
	}

	if len(resp.Invitations) != 2 {
		t.Fatalf("expected 2 invitations, got %d", len(resp.Invitations))
	}
	for _, inv := range resp.Invitations {
		if inv.Status != models.InvitationStatusPending {
			t.Errorf("status = %q, expected pending", inv.Status)
		}
		if inv.InvitedByID != owner.ID {
			t.Errorf("InvitedByID = %d, expected %d", inv.InvitedByID, owner.ID)
		}
	}
	if resp.Invitations[0].Email != "bob@example.com" {
		t.Errorf("email should be lowercased, got %q", resp.Invitations[0].Email)
	}

	// only the registered recipient is notified
	var notifications []models.Notification
	db.Find(&notifications)
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].RecipientID != bob.ID {
		t.Errorf("recipient = %d, expected %d", notifications[0].RecipientID, bob.ID)
	}
	if notifications[0].Type != models.NotificationProjectInvitation {
		t.Errorf("type = %q", notifications[0].Type)
	}
}

func TestInvitationCreateBatch_SkipsPending(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	first, err := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"new@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("CreateBatch() error = %v", err)
	}
	if len(first.Invitations) != 1 {
		t.Fatalf("expected 1 invitation, got %d", len(first.Invitations))
	}

	second, err := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"new@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("second CreateBatch() error = %v", err)
	}
	if len(second.Invitations) != 0 {
		t.Errorf("pending invitation should be skipped, got %d new", len(second.Invitations))
	}
}

func TestInvitationCreateBatch_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	if _, err := svc.CreateBatch(&CreateInvitationsRequest{Emails: []string{"a@b.com"}}, owner.ID); err == nil {
		t.Error("missing project should fail")
	}
	if _, err := svc.CreateBatch(&CreateInvitationsRequest{ProjectID: project.ID}, owner.ID); err == nil {
		t.Error("missing emails should fail")
	}
	if _, err := svc.CreateBatch(&CreateInvitationsRequest{ProjectID: 9999, Emails: []string{"a@b.com"}}, owner.ID); err == nil {
		t.Error("unknown project should fail")
	}
}

func TestInvitationAccept(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", owner.ID)

	resp, _ := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"bob@example.com"},
	}, owner.ID)
	invitationID := resp.Invitations[0].ID

	accepted, err := svc.Accept(invitationID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}

	if accepted.Invitation.Status != models.InvitationStatusAccepted {
		t.Errorf("status = %q, expected accepted", accepted.Invitation.Status)
	}
	if accepted.Invitation.InvitedUserID == nil || *accepted.Invitation.InvitedUserID != bob.ID {
		t.Error("InvitedUserID should be stamped with the accepting user")
	}
	if accepted.Project == nil {
		t.Fatal("response should carry the hydrated project")
	}
	if len(accepted.Project.Members) != 1 || accepted.Project.Members[0].ID != bob.ID {
		t.Errorf("bob should be a member, got %v", accepted.Project.Members)
	}

	// accepting twice fails
	if _, err := svc.Accept(invitationID); err == nil {
		t.Error("processed invitation should not be accepted again")
	} else if err.Error() != "Invitation has already been processed" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestInvitationAccept_AlreadyMember(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	bob := createTestUser(t, db, "bob")
	project := createTestProject(t, db, "Launch", owner.ID)
	db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: bob.ID})

	resp, _ := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"bob@example.com"},
	}, owner.ID)

	accepted, err := svc.Accept(resp.Invitations[0].ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if len(accepted.Project.Members) != 1 {
		t.Errorf("membership should not duplicate, got %d rows", len(accepted.Project.Members))
	}
}

func TestInvitationAccept_UnregisteredEmail(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	resp, _ := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"stranger@example.com"},
	}, owner.ID)

	if _, err := svc.Accept(resp.Invitations[0].ID); err == nil {
		t.Error("accepting for an unregistered email should fail")
	} else if err.Error() != "User not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestInvitationReject(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	resp, _ := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"bob@example.com"},
	}, owner.ID)

	rejected, err := svc.Reject(resp.Invitations[0].ID)
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if rejected.Invitation.Status != models.InvitationStatusRejected {
		t.Errorf("status = %q, expected rejected", rejected.Invitation.Status)
	}

	if _, err := svc.Reject(resp.Invitations[0].ID); err == nil {
		t.Error("processed invitation should not be rejected again")
	}
}

func TestInvitationListPendingByEmail(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := invitationServices(db)
	owner := createTestUser(t, db, "owner")
	projectA := createTestProject(t, db, "Alpha", owner.ID)
	projectB := createTestProject(t, db, "Beta", owner.ID)

	svc.CreateBatch(&CreateInvitationsRequest{ProjectID: projectA.ID, Emails: []string{"bob@example.com"}}, owner.ID)
	respB, _ := svc.CreateBatch(&CreateInvitationsRequest{ProjectID: projectB.ID, Emails: []string{"bob@example.com"}}, owner.ID)

	// rejected invitations drop out of the pending list
	svc.Reject(respB.Invitations[0].ID)

	pending, err := svc.ListPendingByEmail("BOB@example.com")
	if err != nil {
		t.Fatalf("ListPendingByEmail() error = %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 pending invitation, got %d", len(pending))
	}
	if pending[0].Project == nil || pending[0].Project.Name != "Alpha" {
		t.Error("invitation should be hydrated with its project")
	}
	if pending[0].InvitedBy == nil || pending[0].InvitedBy.ID != owner.ID {
		t.Error("invitation should be hydrated with its inviter")
	}
}

// Full lifecycle: invite an address with no account, register it, then
// accept and land in the member set.
func TestInvitationFlow_InviteThenRegisterThenAccept(t *testing.T) {
	db := setupTestDB(t)
	svc, projects := invitationServices(db)
	authSvc := NewAuthService(db, testJWTConfig())
	owner := createTestUser(t, db, "owner")
	project := createTestProject(t, db, "Launch", owner.ID)

	resp, err := svc.CreateBatch(&CreateInvitationsRequest{
		ProjectID: project.ID,
		Emails:    []string{"newcomer@example.com"},
	}, owner.ID)
	if err != nil {
		t.Fatalf("CreateBatch() error = %v", err)
	}

	registered, err := authSvc.Register(&RegisterRequest{
		Name:     "Newcomer",
		Username: "newcomer",
		Email:    "newcomer@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	accepted, err := svc.Accept(resp.Invitations[0].ID)
	if err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if accepted.Invitation.InvitedUserID == nil || *accepted.Invitation.InvitedUserID != registered.User.ID {
		t.Error("invitation should link to the freshly registered account")
	}

	isMember, err := projects.IsMember(project.ID, registered.User.ID)
	if err != nil {
		t.Fatalf("IsMember() error = %v", err)
	}
	if !isMember {
		t.Error("accepting should add the new account to the member set")
	}
}
