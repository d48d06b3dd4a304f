package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/buffer"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
	"github.com/resethq/reset-backend/internal/requestdata"
	"github.com/resethq/reset-backend/internal/types"
)

// ReconcileResult is the unified event view handed to stats and listing.
type ReconcileResult struct {
	// Events is the merged local+remote set in timestamp order.
	Events []types.UrgeEvent
	// Degraded is set when the remote fetch failed and Events is built from
	// the local buffer alone.
	Degraded bool
	// Synced is how many buffered events were committed remotely this run.
	Synced int
	// SyncPending is set when buffered events could not be committed and
	// remain local for a later retry.
	SyncPending bool
}

type ReconcileService interface {
	Reconcile(ctx context.Context) (*ReconcileResult, error)
}

type reconcileService struct {
	db      *gorm.DB
	log     *logger.Logger
	buf     *buffer.Buffer
	events  repos.UrgeEventRepo
	flights singleflight.Group
}

func NewReconcileService(db *gorm.DB, baseLog *logger.Logger, buf *buffer.Buffer, events repos.UrgeEventRepo) ReconcileService {
	return &reconcileService{
		db:     db,
		log:    baseLog.With("service", "ReconcileService"),
		buf:    buf,
		events: events,
	}
}

// Reconcile merges the local buffer into the remote event store. Remote
// values win on timestamp collision (they may carry edited reasons); the
// buffer is cleared only after the remote commit is confirmed. Runs for the
// same user are collapsed onto a single in-flight reconcile so a second
// caller can never clear the buffer underneath the first one's upload.
func (s *reconcileService) Reconcile(ctx context.Context) (*ReconcileResult, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}
	userID := rd.UserID

	v, err, _ := s.flights.Do(userID.String(), func() (interface{}, error) {
		return s.reconcileUser(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*ReconcileResult), nil
}

func (s *reconcileService) reconcileUser(ctx context.Context, userID uuid.UUID) (*ReconcileResult, error) {
	local, err := s.buf.All(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ReconcileResult{}

	remote, err := s.events.GetByUserID(ctx, nil, userID)
	if err != nil {
		if !apperr.IsRemoteRead(err) {
			return nil, err
		}
		// Local-only mode: stats still work off the buffer.
		s.log.Warn("remote fetch failed, serving local buffer only", "user_id", userID, "error", err)
		result.Degraded = true
		remote = nil
	}

	// Merge: start from the local buffer, overlay remote. The remote copy
	// is authoritative for reasons because edits land there first.
	merged := make(map[int64]string, len(local)+len(remote))
	for ts, reason := range local {
		merged[ts] = reason
	}
	for _, ev := range remote {
		merged[ev.Timestamp] = ev.Reason
	}

	if len(local) > 0 && result.Degraded {
		// No point writing when the store is unreachable for reads. The
		// buffer stays put for the next run.
		result.SyncPending = true
	}

	if len(local) > 0 && !result.Degraded {
		// Upsert the buffered keys with their merged reasons so a remotely
		// edited reason is never clobbered by the stale local copy.
		rows := make([]*types.UrgeEvent, 0, len(local))
		now := time.Now().UTC()
		for ts := range local {
			rows = append(rows, &types.UrgeEvent{
				UserID:    userID,
				Timestamp: ts,
				Reason:    merged[ts],
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
		if err := s.events.UpsertMany(ctx, nil, rows); err != nil {
			// Keep the buffer for the next attempt; surfaced as a warning,
			// never as a failed reconcile.
			s.log.Warn("buffered events not committed, retaining buffer", "user_id", userID, "count", len(rows), "error", err)
			result.SyncPending = true
		} else {
			if err := s.buf.Clear(ctx, userID); err != nil {
				return nil, err
			}
			result.Synced = len(rows)
		}
	}

	result.Events = make([]types.UrgeEvent, 0, len(merged))
	for ts, reason := range merged {
		result.Events = append(result.Events, types.UrgeEvent{
			UserID:    userID,
			Timestamp: ts,
			Reason:    reason,
		})
	}
	sort.Slice(result.Events, func(i, j int) bool {
		return result.Events[i].Timestamp < result.Events[j].Timestamp
	})

	return result, nil
}
