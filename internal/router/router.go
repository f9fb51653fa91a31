// Package router sets up HTTP routes for the API.
package router

import (
	"net/http"

	"taskflow/internal/handler"
	"taskflow/internal/middleware"
	"taskflow/internal/service"
	"taskflow/pkg/auth"

	"github.com/gin-gonic/gin"
)

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	TaskHandler         *handler.TaskHandler
	TeamHandler         *handler.TeamHandler
	NotificationHandler *handler.NotificationHandler
	ActivityHandler     *handler.ActivityHandler
	PresenceHandler     *handler.PresenceHandler
	JWTManager          *auth.JWTManager
	UserService         service.UserServicer
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.CORS())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", cfg.AuthHandler.Register)
			authRoutes.POST("/login", cfg.AuthHandler.Login)
			authRoutes.POST("/admin/login", cfg.AuthHandler.AdminLogin)
			authRoutes.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Auth routes (protected)
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.Auth(cfg.JWTManager))
		{
			authProtected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Everything below runs with a resolved session actor.
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTManager), middleware.Session(cfg.UserService))
		{
			users := protected.Group("/users")
			{
				users.GET("", cfg.UserHandler.ListUsers)
				users.GET("/me", cfg.UserHandler.Me)
				users.PUT("/me/settings", cfg.UserHandler.UpdateSettings)
				users.GET("/:id", cfg.UserHandler.GetUser)
				users.PUT("/:id/role", cfg.UserHandler.UpdateRole)
			}

			tasks := protected.Group("/tasks")
			{
				tasks.POST("", cfg.TaskHandler.Create)
				tasks.GET("", cfg.TaskHandler.List)
				tasks.GET("/stream", cfg.TaskHandler.Stream)
				tasks.GET("/:id", cfg.TaskHandler.Get)
				tasks.PUT("/:id", cfg.TaskHandler.Update)
				tasks.DELETE("/:id", cfg.TaskHandler.Delete)
			}

			teams := protected.Group("/teams")
			{
				teams.POST("", cfg.TeamHandler.Create)
				teams.GET("", cfg.TeamHandler.List)
				teams.GET("/:teamId", cfg.TeamHandler.Get)
				teams.POST("/:teamId/members", cfg.TeamHandler.Invite)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", cfg.NotificationHandler.List)
				notifications.PUT("/read", cfg.NotificationHandler.MarkAllRead)
				notifications.PUT("/:id/read", cfg.NotificationHandler.MarkRead)
			}

			protected.GET("/activity", cfg.ActivityHandler.List)

			presence := protected.Group("/presence")
			{
				presence.GET("", cfg.PresenceHandler.Online)
				presence.PUT("/heartbeat", cfg.PresenceHandler.Heartbeat)
				presence.GET("/:userId", cfg.PresenceHandler.Get)
			}
		}
	}

	return r
}
