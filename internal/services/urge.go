package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/buffer"
	"github.com/resethq/reset-backend/internal/domain/stats"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/repos"
	"github.com/resethq/reset-backend/internal/requestdata"
	"github.com/resethq/reset-backend/internal/types"
)

// StatsSummary is the always-on headline block of the stats screen.
type StatsSummary struct {
	Total          int     `json:"total"`
	TodayCount     int     `json:"today_count"`
	WeeklyAverage  float64 `json:"weekly_average"`
	PeakHour       int     `json:"peak_hour"`
	LongestGapDays int     `json:"longest_gap_days"`
}

// StatsResult is the per-period aggregate view over the reconciled event set.
type StatsResult struct {
	Period      stats.Period        `json:"period"`
	Histogram   []stats.Bucket      `json:"histogram"`
	TopReasons  []stats.ReasonCount `json:"top_reasons"`
	PeakBucket  string              `json:"peak_bucket"`
	PeriodCount int                 `json:"period_count"`
	Summary     StatsSummary        `json:"summary"`
	Degraded    bool                `json:"degraded,omitempty"`
}

type UrgeService interface {
	// Log captures an urge instantly into the local buffer. It never waits on
	// the remote store.
	Log(ctx context.Context, timestamp int64, reason string) (*types.UrgeEvent, error)
	List(ctx context.Context) (*ReconcileResult, error)
	// UpdateReason edits the reason of an already captured urge. Returns true
	// when the remote copy could not be updated and the edit is only local.
	UpdateReason(ctx context.Context, timestamp int64, reason string) (bool, error)
	Stats(ctx context.Context, period stats.Period) (*StatsResult, error)
}

type urgeService struct {
	db         *gorm.DB
	log        *logger.Logger
	buf        *buffer.Buffer
	events     repos.UrgeEventRepo
	reconciler ReconcileService
}

func NewUrgeService(db *gorm.DB, baseLog *logger.Logger, buf *buffer.Buffer, events repos.UrgeEventRepo, reconciler ReconcileService) UrgeService {
	return &urgeService{
		db:         db,
		log:        baseLog.With("service", "UrgeService"),
		buf:        buf,
		events:     events,
		reconciler: reconciler,
	}
}

func (us *urgeService) Log(ctx context.Context, timestamp int64, reason string) (*types.UrgeEvent, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apperr.ErrNotAuthenticated
	}
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	ev := types.UrgeEvent{
		UserID:    rd.UserID,
		Timestamp: timestamp,
		Reason:    reason,
	}
	if err := us.buf.Append(ctx, rd.UserID, ev); err != nil {
		return nil, err
	}
	us.log.Debug("urge buffered", "user_id", rd.UserID, "timestamp", timestamp)
	return &ev, nil
}

func (us *urgeService) List(ctx context.Context) (*ReconcileResult, error) {
	return us.reconciler.Reconcile(ctx)
}

func (us *urgeService) UpdateReason(ctx context.Context, timestamp int64, reason string) (bool, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return false, apperr.ErrNotAuthenticated
	}

	// Local copy first so the edit survives even if the remote write fails.
	updatedLocal, err := us.buf.UpdateReason(ctx, rd.UserID, timestamp, reason)
	if err != nil {
		return false, err
	}

	// The remote copy wins future merges, so an event that already synced
	// must be edited there too.
	if err := us.events.UpdateReason(ctx, nil, rd.UserID, timestamp, reason); err != nil {
		if apperr.IsRemoteWrite(err) && updatedLocal {
			us.log.Warn("reason edit pending remote sync", "user_id", rd.UserID, "timestamp", timestamp, "error", err)
			return true, nil
		}
		return false, err
	}
	return false, nil
}

func (us *urgeService) Stats(ctx context.Context, period stats.Period) (*StatsResult, error) {
	res, err := us.reconciler.Reconcile(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	windowed := stats.FilterByPeriod(res.Events, period, now)
	histogram := stats.Histogram(windowed, period)

	return &StatsResult{
		Period:      period,
		Histogram:   histogram,
		TopReasons:  stats.TopReasons(windowed, 5),
		PeakBucket:  stats.PeakBucket(histogram),
		PeriodCount: len(windowed),
		Summary: StatsSummary{
			Total:          len(res.Events),
			TodayCount:     stats.TodayCount(res.Events, now),
			WeeklyAverage:  stats.WeeklyAverage(res.Events, now),
			PeakHour:       stats.PeakHour(res.Events),
			LongestGapDays: stats.LongestGapDays(res.Events),
		},
		Degraded: res.Degraded,
	}, nil
}
