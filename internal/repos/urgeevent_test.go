package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func TestUpsertManyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUrgeEventRepo(db, logger.NewNop())
	userID := uuid.New()

	batch := []*types.UrgeEvent{
		{UserID: userID, Timestamp: 100, Reason: "stress"},
		{UserID: userID, Timestamp: 200, Reason: ""},
	}
	if err := repo.UpsertMany(ctx, nil, batch); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	// Same batch again: no duplicates, same contents.
	again := []*types.UrgeEvent{
		{UserID: userID, Timestamp: 100, Reason: "stress"},
		{UserID: userID, Timestamp: 200, Reason: ""},
	}
	if err := repo.UpsertMany(ctx, nil, again); err != nil {
		t.Fatalf("UpsertMany (repeat): %v", err)
	}

	events, err := repo.GetByUserID(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Timestamp != 100 || events[1].Timestamp != 200 {
		t.Fatalf("events not ordered by timestamp: %+v", events)
	}
}

func TestUpsertManyOverwritesReasonOnCollision(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUrgeEventRepo(db, logger.NewNop())
	userID := uuid.New()

	if err := repo.UpsertMany(ctx, nil, []*types.UrgeEvent{{UserID: userID, Timestamp: 100, Reason: "old"}}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	if err := repo.UpsertMany(ctx, nil, []*types.UrgeEvent{{UserID: userID, Timestamp: 100, Reason: "new"}}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	events, err := repo.GetByUserID(ctx, nil, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(events) != 1 || events[0].Reason != "new" {
		t.Fatalf("collision should overwrite reason, got %+v", events)
	}
}

func TestUpdateReason(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUrgeEventRepo(db, logger.NewNop())
	userID := uuid.New()

	if err := repo.UpsertMany(ctx, nil, []*types.UrgeEvent{{UserID: userID, Timestamp: 100, Reason: ""}}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}
	if err := repo.UpdateReason(ctx, nil, userID, 100, "edited later"); err != nil {
		t.Fatalf("UpdateReason: %v", err)
	}

	events, _ := repo.GetByUserID(ctx, nil, userID)
	if len(events) != 1 || events[0].Reason != "edited later" {
		t.Fatalf("reason not updated: %+v", events)
	}
}

func TestEventsScopedPerUser(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUrgeEventRepo(db, logger.NewNop())
	alice, bob := uuid.New(), uuid.New()

	if err := repo.UpsertMany(ctx, nil, []*types.UrgeEvent{
		{UserID: alice, Timestamp: 100, Reason: "a"},
		{UserID: bob, Timestamp: 100, Reason: "b"},
	}); err != nil {
		t.Fatalf("UpsertMany: %v", err)
	}

	events, err := repo.GetByUserID(ctx, nil, alice)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(events) != 1 || events[0].Reason != "a" {
		t.Fatalf("cross-user leak: %+v", events)
	}
}
