package app

import (
	"github.com/gin-gonic/gin"

	"github.com/resethq/reset-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:    handlerset.Auth,
		AuthMiddleware: middlewareset.Auth,
		UserHandler:    handlerset.User,
		UrgeHandler:    handlerset.Urge,
		StreakHandler:  handlerset.Streak,
		AllowOrigins:   cfg.AllowOrigins,
	})
}
