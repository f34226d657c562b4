package main

import (
	"github.com/gin-gonic/gin"
	"github.com/planbase/planbase/internal/middleware"
	"github.com/planbase/planbase/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for the public auth endpoints
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "planbase"})
	})

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
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard
			protected.GET("/dashboard/stats", svc.dashboardHandler.GetStats)

			// Organizations
			protected.GET("/organizations", svc.organizationHandler.List)
			protected.POST("/organizations", svc.organizationHandler.Create)
			protected.GET("/organizations/:id", svc.organizationHandler.GetByID)
			protected.PUT("/organizations/:id", svc.organizationHandler.Update)
			protected.GET("/organizations/:id/members", svc.organizationHandler.ListMembers)
			protected.POST("/organizations/:id/members", svc.organizationHandler.AddMember)
			protected.DELETE("/organizations/:id/members/:userId", svc.organizationHandler.RemoveMember)
			protected.GET("/organizations/:id/invitations", svc.organizationHandler.ListInvitations)
			protected.POST("/organizations/:id/invitations", svc.organizationHandler.Invite)
			protected.POST("/invitations/accept", svc.organizationHandler.AcceptInvitation)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.PUT("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)
			protected.GET("/projects/:id/members", svc.projectHandler.ListMembers)
			protected.POST("/projects/:id/members", svc.projectHandler.AddMember)
			protected.DELETE("/projects/:id/members/:userId", svc.projectHandler.RemoveMember)
			protected.GET("/projects/:id/tasks", svc.taskHandler.ListByProject)
			protected.GET("/projects/:id/milestones", svc.milestoneHandler.ListByProject)

			// Tasks
			protected.GET("/tasks/search", svc.taskHandler.Search)
			protected.POST("/tasks", svc.taskHandler.Create)
			protected.GET("/tasks/:id", svc.taskHandler.GetByID)
			protected.PUT("/tasks/:id", svc.taskHandler.Update)
			protected.DELETE("/tasks/:id", svc.taskHandler.Delete)
			protected.GET("/tasks/:id/comments", svc.commentHandler.ListByTask)
			protected.POST("/tasks/:id/comments", svc.commentHandler.Create)
			protected.GET("/tasks/:id/timelogs", svc.timeLogHandler.ListByTask)

			// Milestones
			protected.POST("/milestones", svc.milestoneHandler.Create)
			protected.PUT("/milestones/:id", svc.milestoneHandler.Update)
			protected.DELETE("/milestones/:id", svc.milestoneHandler.Delete)

			// Time logs
			protected.GET("/timelogs", svc.timeLogHandler.ListMine)
			protected.GET("/timelogs/active", svc.timeLogHandler.Active)
			protected.POST("/timelogs/start", svc.timeLogHandler.Start)
			protected.POST("/timelogs/stop", svc.timeLogHandler.Stop)
			protected.PUT("/timelogs/:id/approve", svc.timeLogHandler.Approve)
			protected.DELETE("/timelogs/:id", svc.timeLogHandler.Delete)

			// Notifications
			protected.GET("/notifications", svc.notificationHandler.List)
			protected.PUT("/notifications/read-all", svc.notificationHandler.MarkAllRead)
			protected.PUT("/notifications/:id/read", svc.notificationHandler.MarkRead)
		}
	}
}
