package services

import (
	"fmt"
	"testing"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database migrated with the full
// schema. Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.ProjectInvitation{},
		&models.Task{},
		&models.Discussion{},
		&models.DiscussionReply{},
		&models.File{},
		&models.Announcement{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// newTestDispatcher wires a sync queue that delivers straight into the
// given database, so notification side effects are visible to asserts.
func newTestDispatcher(db *gorm.DB) *Dispatcher {
	queue := NewSyncQueue()
	queue.SetProcessor(NewNotificationService(db).Deliver)
	return NewDispatcher(queue)
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, _ := utils.HashPassword("password123")
	user := models.User{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		Avatar:   models.DefaultAvatar,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user %q: %v", username, err)
	}
	return &user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, ownerID uint) *models.Project {
	t.Helper()

	project := models.Project{
		Name:    name,
		Color:   models.DefaultProjectColor,
		OwnerID: ownerID,
		Status:  models.ProjectStatusActive,
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to create test project %q: %v", name, err)
	}
	return &project
}
