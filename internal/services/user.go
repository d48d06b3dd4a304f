package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
	"github.com/resethq/reset-backend/internal/requestdata"
	"github.com/resethq/reset-backend/internal/types"
	"github.com/resethq/reset-backend/internal/utils"
)

// UpdateProfileInput carries the editable profile fields. Pointers
// distinguish "not sent" from zero values.
type UpdateProfileInput struct {
	DisplayName       *string  `json:"display_name"`
	DrinksPerWeek     *int     `json:"drinks_per_week"`
	AverageDailySpend *float64 `json:"average_daily_spend"`
}

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, in UpdateProfileInput) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}
	user, err := us.userRepo.GetByID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotAuthenticated
	}
	return user, nil
}

// UpdateProfile validates every field before touching the store so a bad
// request never lands a partial write.
func (us *userService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}

	updates := map[string]interface{}{}
	if in.DisplayName != nil {
		name := strings.TrimSpace(*in.DisplayName)
		if name == "" {
			return nil, apperr.NewValidation("display_name", "must not be empty")
		}
		updates["display_name"] = name
	}
	if in.DrinksPerWeek != nil {
		if err := utils.ValidateDrinksPerWeek(*in.DrinksPerWeek); err != nil {
			return nil, err
		}
		updates["drinks_per_week"] = *in.DrinksPerWeek
	}
	if in.AverageDailySpend != nil {
		if err := utils.ValidateAverageDailySpend(*in.AverageDailySpend); err != nil {
			return nil, err
		}
		updates["average_daily_spend"] = *in.AverageDailySpend
	}

	if len(updates) > 0 {
		if err := us.userRepo.UpdateProfile(ctx, nil, rd.UserID, updates); err != nil {
			return nil, err
		}
	}
	return us.GetMe(ctx)
}
