package app

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/buffer"
	"github.com/resethq/reset-backend/internal/kv"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Avatar    services.AvatarService
	Urge      services.UrgeService
	Streak    services.StreakService
	Reconcile services.ReconcileService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	store, err := wireKV(log, cfg)
	if err != nil {
		return Services{}, err
	}
	buf := buffer.New(store, log)

	avatarService, err := services.NewAvatarService(log, reposet.User, store)
	if err != nil {
		return Services{}, fmt.Errorf("init AvatarService: %w", err)
	}
	reconcileService := services.NewReconcileService(db, log, buf, reposet.UrgeEvent)

	return Services{
		Auth: services.NewAuthService(
			db, log,
			reposet.User, reposet.UserToken, avatarService,
			cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		),
		User:      services.NewUserService(db, log, reposet.User),
		Avatar:    avatarService,
		Urge:      services.NewUrgeService(db, log, buf, reposet.UrgeEvent, reconcileService),
		Streak:    services.NewStreakService(db, log, reposet.User),
		Reconcile: reconcileService,
	}, nil
}

// wireKV picks the local durable store: redis when REDIS_ADDR is set,
// otherwise diskv under DATA_DIR.
func wireKV(log *logger.Logger, cfg Config) (kv.Store, error) {
	if addr := strings.TrimSpace(cfg.RedisAddr); addr != "" {
		store, err := kv.NewRedisStore(addr, "", log)
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
		return store, nil
	}
	store, err := kv.NewDiskStore(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("init disk store: %w", err)
	}
	return store, nil
}
