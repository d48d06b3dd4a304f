package app

import (
	"github.com/resethq/reset-backend/internal/handlers"
	"github.com/resethq/reset-backend/internal/logger"
)

type Handlers struct {
	Auth   *handlers.AuthHandler
	User   *handlers.UserHandler
	Urge   *handlers.UrgeHandler
	Streak *handlers.StreakHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:   handlers.NewAuthHandler(serviceset.Auth),
		User:   handlers.NewUserHandler(serviceset.User, serviceset.Avatar),
		Urge:   handlers.NewUrgeHandler(serviceset.Urge),
		Streak: handlers.NewStreakHandler(serviceset.Streak),
	}
}
