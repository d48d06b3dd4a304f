package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/types"
)

// UrgeEventRepo is the authoritative per-user event store. Writes are keyed
// by (user_id, timestamp): re-upserting the same batch is a no-op apart from
// reason updates, which is what makes reconciliation idempotent.
type UrgeEventRepo interface {
	UpsertMany(ctx context.Context, tx *gorm.DB, events []*types.UrgeEvent) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UrgeEvent, error)
	UpdateReason(ctx context.Context, tx *gorm.DB, userID uuid.UUID, timestamp int64, reason string) error
}

type urgeEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUrgeEventRepo(db *gorm.DB, baseLog *logger.Logger) UrgeEventRepo {
	return &urgeEventRepo{db: db, log: baseLog.With("repo", "UrgeEventRepo")}
}

func (r *urgeEventRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// UpsertMany writes the batch inside one transaction so the reconciler sees
// all-or-nothing semantics even though the conflict handling is per row.
func (r *urgeEventRepo) UpsertMany(ctx context.Context, tx *gorm.DB, events []*types.UrgeEvent) error {
	if len(events) == 0 {
		return nil
	}
	err := r.conn(tx).WithContext(ctx).Transaction(func(txn *gorm.DB) error {
		return txn.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "timestamp"}},
			DoUpdates: clause.AssignmentColumns([]string{"reason", "updated_at"}),
		}).Create(&events).Error
	})
	if err != nil {
		return &apperr.RemoteWriteError{Op: "upsert urge events", Err: err}
	}
	return nil
}

func (r *urgeEventRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UrgeEvent, error) {
	var results []*types.UrgeEvent
	if userID == uuid.Nil {
		return results, nil
	}
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&results).Error
	if err != nil {
		return nil, &apperr.RemoteReadError{Op: "fetch urge events", Err: err}
	}
	return results, nil
}

func (r *urgeEventRepo) UpdateReason(ctx context.Context, tx *gorm.DB, userID uuid.UUID, timestamp int64, reason string) error {
	err := r.conn(tx).WithContext(ctx).
		Model(&types.UrgeEvent{}).
		Where("user_id = ? AND timestamp = ?", userID, timestamp).
		Update("reason", reason).Error
	if err != nil {
		return &apperr.RemoteWriteError{Op: "update urge reason", Err: err}
	}
	return nil
}
