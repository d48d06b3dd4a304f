package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.User) error
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateAnchor(ctx context.Context, tx *gorm.DB, userID uuid.UUID, soberSince time.Time, numberOfResets, soberStreak, longestStreakDays int) error
	UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]interface{}) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) error {
	if err := r.conn(tx).WithContext(ctx).Create(user).Error; err != nil {
		return &apperr.RemoteWriteError{Op: "create user", Err: err}
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	var user types.User
	err := r.conn(tx).WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &apperr.RemoteReadError{Op: "get user", Err: err}
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	var user types.User
	err := r.conn(tx).WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &apperr.RemoteReadError{Op: "get user by email", Err: err}
	}
	return &user, nil
}

func (r *userRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, &apperr.RemoteReadError{Op: "check email", Err: err}
	}
	return count > 0, nil
}

// UpdateAnchor writes the full sober anchor in one statement so a reset can
// never land partially.
func (r *userRepo) UpdateAnchor(ctx context.Context, tx *gorm.DB, userID uuid.UUID, soberSince time.Time, numberOfResets, soberStreak, longestStreakDays int) error {
	err := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"sober_since":         soberSince,
			"number_of_resets":    numberOfResets,
			"sober_streak":        soberStreak,
			"longest_streak_days": longestStreakDays,
		}).Error
	if err != nil {
		return &apperr.RemoteWriteError{Op: "update anchor", Err: err}
	}
	return nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	err := r.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return &apperr.RemoteWriteError{Op: "update profile", Err: err}
	}
	return nil
}
