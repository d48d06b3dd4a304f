package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/resethq/reset-backend/internal/handlers"
	"github.com/resethq/reset-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	UserHandler    *handlers.UserHandler
	UrgeHandler    *handlers.UrgeHandler
	StreakHandler  *handlers.StreakHandler
	AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware("reset-backend"))

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.PATCH("/user", cfg.UserHandler.UpdateProfile)
	protected.GET("/user/avatar", cfg.UserHandler.GetAvatar)
	// Streak
	protected.GET("/streak", cfg.StreakHandler.Status)
	protected.POST("/streak/reset", cfg.StreakHandler.Reset)
	protected.PUT("/streak/sober-since", cfg.StreakHandler.SetSoberSince)
	// Urges
	protected.POST("/urges", cfg.UrgeHandler.Log)
	protected.GET("/urges", cfg.UrgeHandler.List)
	protected.GET("/urges/stats", cfg.UrgeHandler.Stats)
	protected.PATCH("/urges/:timestamp", cfg.UrgeHandler.UpdateReason)
	protected.POST("/urges/reconcile", cfg.UrgeHandler.Reconcile)

	return router
}
