package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/workbridge/workbridge/internal/middleware"
	"github.com/workbridge/workbridge/internal/security"
)

type RouterDeps struct {
	Auth          *AuthHandler
	Jobs          *JobHandler
	Applications  *ApplicationHandler
	Notifications *NotificationHandler
	Reviews       *ReviewHandler
	JWT           *security.JWTProvider
	Limiter       middleware.Limiter
	Metrics       *middleware.Metrics
}

// RegisterRoutes wires every endpoint under /api/v1.
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Handler())
	}

	api := r.Group("/api/v1")
	api.GET("/health", HealthCheck)

	auth := api.Group("/auth")
	auth.Use(middleware.RateLimit(deps.Limiter, 10, time.Minute))
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/login", deps.Auth.Login)
	}

	// Public reads; a token is honored when present so draft owners can
	// fetch their own postings by id
	api.GET("/jobs", deps.Jobs.ListJobs)
	api.GET("/jobs/:id", middleware.OptionalAuthenticate(deps.JWT), deps.Jobs.GetJob)
	api.GET("/users/:id/reviews", deps.Reviews.ListForUser)

	authed := api.Group("")
	authed.Use(middleware.Authenticate(deps.JWT))
	{
		// Employer side (admins pass RequireRole everywhere)
		employer := authed.Group("")
		employer.Use(middleware.RequireRole("employer"))
		{
			employer.POST("/jobs", deps.Jobs.CreateJob)
			employer.PUT("/jobs/:id", deps.Jobs.UpdateJob)
			employer.DELETE("/jobs/:id", deps.Jobs.DeleteJob)
			employer.GET("/employer/jobs", deps.Jobs.MyJobs)
			employer.GET("/jobs/:id/applications", deps.Applications.ListByJob)
		}

		// Job seeker side
		seeker := authed.Group("")
		seeker.Use(middleware.RequireRole("job_seeker"))
		{
			seeker.POST("/jobs/:id/applications", deps.Applications.Apply)
			seeker.GET("/applications", deps.Applications.ListMine)
		}

		// Any authenticated user; fine-grained checks live in the services
		authed.GET("/applications/:id", deps.Applications.Get)
		authed.PATCH("/applications/:id/status", deps.Applications.UpdateStatus)

		authed.GET("/notifications", deps.Notifications.List)
		authed.GET("/notifications/unread-count", deps.Notifications.UnreadCount)
		authed.PATCH("/notifications/read-all", deps.Notifications.MarkAllRead)
		authed.PATCH("/notifications/:id/read", deps.Notifications.MarkRead)
		authed.DELETE("/notifications/:id", deps.Notifications.Delete)

		authed.POST("/reviews", deps.Reviews.Create)
	}
}
