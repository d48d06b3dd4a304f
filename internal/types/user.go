package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the per-user profile document. SoberSince and NumberOfResets form
// the sober anchor; SoberStreak is a cached derived value refreshed whenever
// the anchor is read or mutated. LongestStreakDays must never regress.
type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password          string    `gorm:"not null;column:password" json:"-"`
	DisplayName       string    `gorm:"not null;column:display_name" json:"display_name"`
	AvatarColor       string    `gorm:"column:avatar_color" json:"avatar_color"`
	AvatarKey         string    `gorm:"column:avatar_key" json:"avatar_key"`
	SoberSince        time.Time `gorm:"not null;column:sober_since" json:"sober_since"`
	NumberOfResets    int       `gorm:"not null;default:0;column:number_of_resets" json:"number_of_resets"`
	SoberStreak       int       `gorm:"not null;default:0;column:sober_streak" json:"sober_streak"`
	LongestStreakDays int       `gorm:"not null;default:0;column:longest_streak_days" json:"longest_streak_days"`
	AverageDailySpend float64   `gorm:"not null;default:0;column:average_daily_spend" json:"average_daily_spend"`
	DrinksPerWeek     int       `gorm:"not null;default:0;column:drinks_per_week" json:"drinks_per_week"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string { return "user" }
