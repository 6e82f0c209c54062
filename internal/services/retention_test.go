package services

import (
	"testing"
	"time"

	"github.com/taskman/taskman/internal/models"
)

func TestRetentionSweep(t *testing.T) {
	db := setupTestDB(t)
	bob := createTestUser(t, db, "bob")

	old := time.Now().AddDate(0, 0, -45)

	// read and old: purged
	readOld := models.Notification{RecipientID: bob.ID, Type: models.NotificationAnnouncement, Title: "t", Message: "m", Read: true}
	db.Create(&readOld)
	db.Model(&readOld).Update("created_at", old)

	// unread and old: kept
	unreadOld := models.Notification{RecipientID: bob.ID, Type: models.NotificationAnnouncement, Title: "t", Message: "m"}
	db.Create(&unreadOld)
	db.Model(&unreadOld).Update("created_at", old)

	// read and recent: kept
	readNew := models.Notification{RecipientID: bob.ID, Type: models.NotificationAnnouncement, Title: "t", Message: "m", Read: true}
	db.Create(&readNew)

	sweeper := NewRetentionSweeper(db, 30)
	purged := sweeper.Sweep()
	if purged != 1 {
		t.Errorf("Sweep() purged %d, expected 1", purged)
	}

	var remaining []models.Notification
	db.Find(&remaining)
	if len(remaining) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(remaining))
	}
	for _, n := range remaining {
		if n.ID == readOld.ID {
			t.Error("old read notification should be purged")
		}
	}
}

func TestRetentionSweeper_DisabledByZeroWindow(t *testing.T) {
	db := setupTestDB(t)

	sweeper := NewRetentionSweeper(db, 0)
	sweeper.Start() // must not schedule or sweep
	sweeper.Stop()
}
