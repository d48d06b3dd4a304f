package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
	"github.com/resethq/reset-backend/internal/requestdata"
	"github.com/resethq/reset-backend/internal/types"
)

func newStreakFixture(t *testing.T, soberSince time.Time) (StreakService, repos.UserRepo, context.Context) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&types.User{}, &types.UserToken{}, &types.UrgeEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	userRepo := repos.NewUserRepo(db, logger.NewNop())
	user := &types.User{
		ID:          uuid.New(),
		Email:       "streak@example.com",
		Password:    "hash",
		DisplayName: "Streak Tester",
		SoberSince:  soberSince,
	}
	if err := userRepo.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	svc := NewStreakService(db, logger.NewNop(), userRepo)
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: user.ID})
	return svc, userRepo, ctx
}

func TestStreakStatusReportsDaysAndTier(t *testing.T) {
	svc, _, ctx := newStreakFixture(t, time.Now().AddDate(0, 0, -45))

	status, err := svc.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status.Days != 45 {
		t.Fatalf("Days=%d, want 45", status.Days)
	}
	if status.Tier != "Bronze" {
		t.Fatalf("Tier=%q, want Bronze", status.Tier)
	}
	if status.DaysToNextTier != 15 {
		t.Fatalf("DaysToNextTier=%d, want 15", status.DaysToNextTier)
	}
}

func TestResetRecordsLongestBeforeMovingAnchor(t *testing.T) {
	svc, _, ctx := newStreakFixture(t, time.Now().AddDate(0, 0, -10))

	status, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if status.Days != 0 {
		t.Fatalf("Days after reset=%d, want 0", status.Days)
	}
	if status.NumberOfResets != 1 {
		t.Fatalf("NumberOfResets=%d, want 1", status.NumberOfResets)
	}
	if status.LongestStreakDays != 10 {
		t.Fatalf("LongestStreakDays=%d, want 10", status.LongestStreakDays)
	}

	// A second reset right away abandons a zero-day streak. The record must
	// not regress.
	status, err = svc.Reset(ctx)
	if err != nil {
		t.Fatalf("second Reset: %v", err)
	}
	if status.LongestStreakDays != 10 {
		t.Fatalf("record regressed to %d", status.LongestStreakDays)
	}
	if status.NumberOfResets != 2 {
		t.Fatalf("NumberOfResets=%d, want 2", status.NumberOfResets)
	}
}

func TestSetSoberSinceRejectsFuture(t *testing.T) {
	svc, _, ctx := newStreakFixture(t, time.Now())

	_, err := svc.SetSoberSince(ctx, time.Now().Add(24*time.Hour))
	if !apperr.IsValidation(err) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}

func TestSetSoberSinceBackdatesAnchor(t *testing.T) {
	svc, _, ctx := newStreakFixture(t, time.Now())

	status, err := svc.SetSoberSince(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("SetSoberSince: %v", err)
	}
	if status.Days != 30 {
		t.Fatalf("Days=%d, want 30", status.Days)
	}
	if status.Tier != "Bronze" {
		t.Fatalf("Tier=%q, want Bronze", status.Tier)
	}
	if status.NumberOfResets != 0 {
		t.Fatalf("backdating must not count as a reset, got %d", status.NumberOfResets)
	}
}
