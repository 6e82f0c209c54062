package main

import (
	"github.com/gin-gonic/gin"
	"github.com/taskman/taskman/internal/middleware"
	"github.com/taskman/taskman/pkg/logger"
	"github.com/taskman/taskman/pkg/metrics"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(middleware.RequestID())
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())
	r.Use(metrics.GinMiddleware())

	// Rate limiter for the public auth routes
	authLimiter := middleware.NewRateLimiter(10, 20)

	// Ops surface
	r.GET("/health", svc.healthHandler.CheckHealth)
	r.GET("/metrics", metrics.Handler())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public, rate limited)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.Me)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.PATCH("/projects/:id/complete", svc.projectHandler.Complete)
			protected.POST("/projects/:id/members", svc.projectHandler.AddMember)
			protected.DELETE("/projects/:id/members/:userId", svc.projectHandler.RemoveMember)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)

			// Invitations
			protected.POST("/invitations/create", svc.invitationHandler.Create)
			protected.GET("/invitations/user/:email", svc.invitationHandler.ListForEmail)
			protected.POST("/invitations/:id/accept", svc.invitationHandler.Accept)
			protected.POST("/invitations/:id/reject", svc.invitationHandler.Reject)

			// Tasks
			protected.GET("/tasks/project/:projectId", svc.taskHandler.ListByProject)
			protected.GET("/tasks/:id", svc.taskHandler.GetByID)
			protected.POST("/tasks", svc.taskHandler.Create)
			protected.PUT("/tasks/:id", svc.taskHandler.Update)
			protected.DELETE("/tasks/:id", svc.taskHandler.Delete)

			// Discussions
			protected.GET("/discussions/project/:projectId", svc.discussionHandler.ListByProject)
			protected.GET("/discussions/chat/:projectId/:userId", svc.discussionHandler.Chat)
			protected.GET("/discussions/unread/:projectId/:userId", svc.discussionHandler.UnreadCounts)
			protected.GET("/discussions/:id", svc.discussionHandler.GetByID)
			protected.POST("/discussions", svc.discussionHandler.Create)
			protected.POST("/discussions/:id/reply", svc.discussionHandler.Reply)
			protected.DELETE("/discussions/:id", svc.discussionHandler.Delete)

			// Files
			protected.GET("/files/project/:projectId", svc.fileHandler.ListByProject)
			protected.GET("/files/:id", svc.fileHandler.GetByID)
			protected.GET("/files/:id/download", svc.fileHandler.Download)
			protected.POST("/files", svc.fileHandler.Create)
			protected.DELETE("/files/:id", svc.fileHandler.Delete)

			// Announcements
			protected.GET("/announcements", svc.announcementHandler.List)
			protected.GET("/announcements/project/:projectId", svc.announcementHandler.ListByProject)
			protected.POST("/announcements", svc.announcementHandler.Create)
			protected.DELETE("/announcements/:id", svc.announcementHandler.Delete)

			// Notifications
			protected.GET("/notifications/user/:userId", svc.notificationHandler.ListForUser)
			protected.GET("/notifications/unread-count/:userId", svc.notificationHandler.UnreadCount)
			protected.POST("/notifications", svc.notificationHandler.Create)
			protected.PATCH("/notifications/:id/read", svc.notificationHandler.MarkRead)
			protected.PATCH("/notifications/mark-all-read/:userId", svc.notificationHandler.MarkAllRead)
			protected.DELETE("/notifications/:id", svc.notificationHandler.Delete)
			protected.DELETE("/notifications/clear/:userId", svc.notificationHandler.ClearRead)
		}
	}
}
