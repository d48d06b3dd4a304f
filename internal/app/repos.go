package app

import (
	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	UrgeEvent repos.UrgeEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		UrgeEvent: repos.NewUrgeEventRepo(db, log),
	}
}
