package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/domain/milestone"
	"github.com/resethq/reset-backend/internal/domain/streak"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
	"github.com/resethq/reset-backend/internal/requestdata"
)

// StreakStatus is the full sober-progress view: current streak, milestone
// position, and the anchor history behind them.
type StreakStatus struct {
	Days              int       `json:"days"`
	SoberSince        time.Time `json:"sober_since"`
	NumberOfResets    int       `json:"number_of_resets"`
	LongestStreakDays int       `json:"longest_streak_days"`
	Tier              string    `json:"tier,omitempty"`
	TierThresholdDays int       `json:"tier_threshold_days,omitempty"`
	DaysToNextTier    int       `json:"days_to_next_tier"`
	MaxedOut          bool      `json:"maxed_out"`
}

type StreakService interface {
	Status(ctx context.Context) (*StreakStatus, error)
	Reset(ctx context.Context) (*StreakStatus, error)
	SetSoberSince(ctx context.Context, soberSince time.Time) (*StreakStatus, error)
}

type streakService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewStreakService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) StreakService {
	return &streakService{
		db:       db,
		log:      baseLog.With("service", "StreakService"),
		userRepo: userRepo,
	}
}

func (ss *streakService) Status(ctx context.Context) (*StreakStatus, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}

	user, err := ss.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotAuthenticated
	}

	now := time.Now()
	days := streak.Days(user.SoberSince, now)

	// Refresh the cached derived value when the day ticked over since the
	// last read. Best effort, the response carries the live value either way.
	if user.SoberStreak != days {
		if err := ss.userRepo.UpdateProfile(ctx, nil, user.ID, map[string]interface{}{
			"sober_streak": days,
		}); err != nil {
			ss.log.Warn("could not refresh cached streak", "user_id", user.ID, "error", err)
		}
	}

	status := &StreakStatus{
		Days:              days,
		SoberSince:        user.SoberSince,
		NumberOfResets:    user.NumberOfResets,
		LongestStreakDays: streak.Longest(user.LongestStreakDays, days),
	}
	if tier, ok := milestone.TierFor(days); ok {
		status.Tier = tier.Name
		status.TierThresholdDays = tier.ThresholdDays
	}
	status.DaysToNextTier, status.MaxedOut = milestone.DaysToNextTier(days)
	return status, nil
}

// Reset abandons the current streak: the longest-streak record absorbs the
// abandoned run before the anchor moves, so the record can never regress.
func (ss *streakService) Reset(ctx context.Context) (*StreakStatus, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}

	now := time.Now()
	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ss.userRepo.GetByID(ctx, tx, rd.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.ErrNotAuthenticated
		}
		abandoned := streak.Days(user.SoberSince, now)
		longest := streak.Longest(user.LongestStreakDays, abandoned)
		return ss.userRepo.UpdateAnchor(ctx, tx, user.ID, now, user.NumberOfResets+1, 0, longest)
	}); err != nil {
		return nil, err
	}

	ss.log.Info("streak reset", "user_id", rd.UserID)
	return ss.Status(ctx)
}

// SetSoberSince rewrites the anchor to a user-entered date, for people who
// were already sober before signing up. Future dates are rejected.
func (ss *streakService) SetSoberSince(ctx context.Context, soberSince time.Time) (*StreakStatus, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}
	now := time.Now()
	if soberSince.After(now) {
		return nil, apperr.NewValidation("sober_since", "must not be in the future")
	}

	if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := ss.userRepo.GetByID(ctx, tx, rd.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.ErrNotAuthenticated
		}
		days := streak.Days(soberSince, now)
		longest := streak.Longest(user.LongestStreakDays, days)
		return ss.userRepo.UpdateAnchor(ctx, tx, user.ID, soberSince, user.NumberOfResets, days, longest)
	}); err != nil {
		return nil, err
	}
	return ss.Status(ctx)
}
