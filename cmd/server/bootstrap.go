package main

import (
	"github.com/taskman/taskman/internal/config"
	"github.com/taskman/taskman/internal/handlers"
	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/internal/services"
	"github.com/taskman/taskman/internal/utils"
	"github.com/taskman/taskman/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	dispatcher *services.Dispatcher
	queue      services.NotificationQueue
	worker     *services.Worker
	sweeper    *services.RetentionSweeper

	authHandler         *handlers.AuthHandler
	projectHandler      *handlers.ProjectHandler
	invitationHandler   *handlers.InvitationHandler
	taskHandler         *handlers.TaskHandler
	discussionHandler   *handlers.DiscussionHandler
	fileHandler         *handlers.FileHandler
	announcementHandler *handlers.AnnouncementHandler
	notificationHandler *handlers.NotificationHandler
	healthHandler       *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, queue, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Notification queue: Redis-backed when enabled, inline otherwise
	notificationService := services.NewNotificationService(db)
	queue := services.InitNotificationQueue(cfg)
	if syncQueue, ok := queue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(notificationService.Deliver)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(notificationService.Deliver)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start notification worker")
			}
		}
	}

	dispatcher := services.NewDispatcher(queue)

	sweeper := services.NewRetentionSweeper(db, cfg.Notifications.RetentionDays)
	sweeper.Start()

	return &appServices{
		dispatcher: dispatcher,
		queue:      queue,
		worker:     worker,
		sweeper:    sweeper,

		authHandler:         handlers.NewAuthHandler(db, &cfg.JWT),
		projectHandler:      handlers.NewProjectHandler(db, dispatcher),
		invitationHandler:   handlers.NewInvitationHandler(db, dispatcher),
		taskHandler:         handlers.NewTaskHandler(db, dispatcher),
		discussionHandler:   handlers.NewDiscussionHandler(db),
		fileHandler:         handlers.NewFileHandler(db),
		announcementHandler: handlers.NewAnnouncementHandler(db),
		notificationHandler: handlers.NewNotificationHandler(db, cfg.Notifications.FeedLimit),
		healthHandler:       handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	s.sweeper.Stop()

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.queue != nil {
		s.queue.Close()
	}
	logger.Info().Msg("Background services stopped")
}
