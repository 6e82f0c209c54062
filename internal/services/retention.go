package services

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/logger"
	"gorm.io/gorm"
)

// RetentionSweeper periodically purges read notifications older than
// the configured window. Unread notifications are never touched.
type RetentionSweeper struct {
	db            *gorm.DB
	retentionDays int
	cron          *cron.Cron
}

func NewRetentionSweeper(db *gorm.DB, retentionDays int) *RetentionSweeper {
	return &RetentionSweeper{
		db:            db,
		retentionDays: retentionDays,
		cron:          cron.New(),
	}
}

// Start schedules the daily sweep. A retention of 0 disables it.
func (s *RetentionSweeper) Start() {
	if s.retentionDays <= 0 {
		logger.Infof("[Retention] Notification retention sweep disabled")
		return
	}

	// Run once at startup, then daily at 03:00
	s.Sweep()
	if _, err := s.cron.AddFunc("0 3 * * *", func() { s.Sweep() }); err != nil {
		logger.Errorf("[Retention] Failed to schedule sweep: %v", err)
		return
	}
	s.cron.Start()
	logger.Infof("[Retention] Notification retention sweep scheduled (every day at 03:00, %d day window)", s.retentionDays)
}

// Stop halts the scheduler.
func (s *RetentionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep deletes read notifications older than the retention window and
// returns the number of rows removed.
func (s *RetentionSweeper) Sweep() int64 {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	result := s.db.
		Where("read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	if result.Error != nil {
		logger.Errorf("[Retention] Sweep failed: %v", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		logger.Infof("[Retention] Purged %d read notifications older than %d days", result.RowsAffected, s.retentionDays)
	}
	return result.RowsAffected
}
