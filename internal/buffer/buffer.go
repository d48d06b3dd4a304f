// Package buffer is the offline-first holding area for urge events that have
// not yet been confirmed in the remote store. Events are persisted in the
// local key-value store as one JSON map {unix seconds -> reason} per user and
// survive restarts; the reconciler clears them only after a confirmed remote
// commit.
package buffer

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/resethq/reset-backend/internal/apperr"
	"github.com/resethq/reset-backend/internal/kv"
	"github.com/resethq/reset-backend/internal/logger"
	"github.com/resethq/reset-backend/internal/types"
)

type Buffer struct {
	store kv.Store
	log   *logger.Logger

	// Per-user write locks. Appends are read-modify-write on a single JSON
	// blob, so two concurrent logs for the same user must be serialized to
	// avoid lost updates.
	locks sync.Map
}

func New(store kv.Store, log *logger.Logger) *Buffer {
	return &Buffer{store: store, log: log.With("component", "UrgeBuffer")}
}

func bufferKey(userID uuid.UUID) string {
	return "urges:" + userID.String()
}

func (b *Buffer) lockFor(userID uuid.UUID) *sync.Mutex {
	mu, _ := b.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Append adds ev to the user's buffer, overwriting any event captured at the
// same timestamp.
func (b *Buffer) Append(ctx context.Context, userID uuid.UUID, ev types.UrgeEvent) error {
	if ev.Timestamp < 0 {
		return apperr.NewValidation("timestamp", "must not be negative")
	}

	mu := b.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	events, err := b.load(ctx, userID)
	if err != nil {
		return err
	}
	events[ev.Timestamp] = ev.Reason
	return b.save(ctx, userID, events)
}

// All returns a copy of the buffered {timestamp -> reason} mapping. It never
// mutates buffer state.
func (b *Buffer) All(ctx context.Context, userID uuid.UUID) (map[int64]string, error) {
	mu := b.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	return b.load(ctx, userID)
}

// Clear drops every buffered event for the user. Call only after the remote
// store has confirmed the commit.
func (b *Buffer) Clear(ctx context.Context, userID uuid.UUID) error {
	mu := b.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	return b.store.Remove(ctx, bufferKey(userID))
}

// UpdateReason rewrites the reason of a buffered event if one exists at the
// given timestamp. Returns false when nothing was buffered there.
func (b *Buffer) UpdateReason(ctx context.Context, userID uuid.UUID, timestamp int64, reason string) (bool, error) {
	mu := b.lockFor(userID)
	mu.Lock()
	defer mu.Unlock()

	events, err := b.load(ctx, userID)
	if err != nil {
		return false, err
	}
	if _, ok := events[timestamp]; !ok {
		return false, nil
	}
	events[timestamp] = reason
	if err := b.save(ctx, userID, events); err != nil {
		return false, err
	}
	return true, nil
}

func (b *Buffer) load(ctx context.Context, userID uuid.UUID) (map[int64]string, error) {
	raw, ok, err := b.store.Get(ctx, bufferKey(userID))
	if err != nil {
		return nil, err
	}
	events := map[int64]string{}
	if !ok {
		return events, nil
	}
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, &apperr.PersistenceError{Op: "decode buffer", Err: fmt.Errorf("corrupt buffer for user %s: %w", userID, err)}
	}
	return events, nil
}

func (b *Buffer) save(ctx context.Context, userID uuid.UUID, events map[int64]string) error {
	raw, err := json.Marshal(events)
	if err != nil {
		return &apperr.PersistenceError{Op: "encode buffer", Err: err}
	}
	return b.store.Set(ctx, bufferKey(userID), raw)
}
