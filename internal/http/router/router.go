package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skillswap-backend/internal/config"
	"github.com/ignatzorin/skillswap-backend/internal/http/handlers"
	"github.com/ignatzorin/skillswap-backend/internal/http/middleware"
	"github.com/ignatzorin/skillswap-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	profileHandler *handlers.ProfileHandler,
	avatarHandler *handlers.AvatarHandler,
	skillHandler *handlers.SkillHandler,
	swapHandler *handlers.SwapHandler,
	browseHandler *handlers.BrowseHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	watchHandler *handlers.WatchHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	if seedHandler != nil && cfg.Env == "development" {
		api.POST("/seed", seedHandler.Seed)
		api.GET("/seed", seedHandler.Seed)
	}

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/watch/:collection", watchHandler.Handle)
	api.GET("/users/:id/avatar", middleware.UUIDValidator("id"), avatarHandler.Get)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/profile", profileHandler.GetMe)
		protected.PUT("/profile", profileHandler.UpdateMe)
		protected.POST("/profile/avatar", avatarHandler.Upload)
		protected.GET("/users/:id", middleware.UUIDValidator("id"), profileHandler.GetUser)
		protected.GET("/users/:id/skills", middleware.UUIDValidator("id"), skillHandler.ListByUser)

		protected.GET("/browse/skills", browseHandler.SearchSkills)
		protected.GET("/browse/users", browseHandler.BrowseUsers)

		protected.POST("/skills", skillHandler.Create)
		protected.GET("/skills", skillHandler.ListMine)
		protected.GET("/skills/:id", middleware.UUIDValidator("id"), skillHandler.Get)
		protected.PUT("/skills/:id", middleware.UUIDValidator("id"), skillHandler.Update)
		protected.DELETE("/skills/:id", middleware.UUIDValidator("id"), skillHandler.Delete)

		protected.POST("/swaps", swapHandler.Create)
		protected.GET("/swaps", swapHandler.List)
		protected.GET("/swaps/:id", middleware.UUIDValidator("id"), swapHandler.Get)
		protected.POST("/swaps/:id/respond", middleware.UUIDValidator("id"), swapHandler.Respond)
		protected.POST("/swaps/:id/cancel", middleware.UUIDValidator("id"), swapHandler.Cancel)
		protected.POST("/swaps/:id/complete", middleware.UUIDValidator("id"), swapHandler.Complete)

		protected.GET("/notifications", notificationHandler.ListNotifications)
		protected.GET("/notifications/unread/count", notificationHandler.CountUnread)
		protected.GET("/notifications/:id", middleware.UUIDValidator("id"), notificationHandler.GetNotification)
		protected.PUT("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.DELETE("/notifications/:id", middleware.UUIDValidator("id"), notificationHandler.DeleteNotification)
	}

	// Администрирование
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminOnly())
	{
		admin.GET("/stats", statsHandler.GetAdminStats)
	}

	return r
}
