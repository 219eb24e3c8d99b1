package main

import (
	"github.com/gin-gonic/gin"

	"github.com/reviewhub/reviewhub/internal/handlers"
	"github.com/reviewhub/reviewhub/internal/middleware"
	"github.com/reviewhub/reviewhub/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential-guessing surfaces
	authLimiter := middleware.NewRateLimiter(5, 10)

	// Health check
	r.GET("/health", handlers.Health)

	// Stored submission artifacts
	r.Static("/uploads/submissions", svc.cfg.Upload.Dir)

	// Auth routes (public, rate limited)
	auth := r.Group("/auth", authLimiter.Middleware())
	{
		auth.POST("/register", svc.authHandler.Register)
		auth.POST("/login", svc.authHandler.Login)
		auth.POST("/refresh", svc.authHandler.Refresh)
	}

	// Protected routes
	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	{
		// Account
		protected.GET("/auth/profile", svc.authHandler.GetProfile)
		protected.PUT("/auth/profile", svc.authHandler.UpdateProfile)
		protected.POST("/auth/change-password", svc.authHandler.ChangePassword)
		protected.POST("/auth/logout", svc.authHandler.Logout)

		// Projects
		protected.POST("/projects", svc.projectHandler.Create)
		protected.GET("/projects", svc.projectHandler.List)
		protected.GET("/projects/:id", svc.projectHandler.GetByID)
		protected.PUT("/projects/:id", svc.projectHandler.Update)
		protected.DELETE("/projects/:id", svc.projectHandler.Delete)

		// Project members
		protected.POST("/projects/:id/members", svc.memberHandler.Add)
		protected.DELETE("/projects/:id/members/:userId", svc.memberHandler.Remove)

		// Submissions
		protected.POST("/projects/:id/submissions", svc.submissionHandler.Create)
		protected.GET("/projects/:id/submissions", svc.submissionHandler.List)
		protected.GET("/submissions/:id", svc.submissionHandler.GetByID)
		protected.PATCH("/submissions/:id/status", svc.submissionHandler.UpdateStatus)
		protected.DELETE("/submissions/:id", svc.submissionHandler.Delete)
	}
}
