package types

import (
	"time"

	"github.com/google/uuid"
)

// UrgeEvent is one logged urge. Within a user's set the capture timestamp is
// the natural key: colliding writes overwrite the reason rather than append.
type UrgeEvent struct {
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_urge_user_ts;column:user_id" json:"user_id"`
	Timestamp int64     `gorm:"not null;uniqueIndex:idx_urge_user_ts;column:timestamp" json:"timestamp"`
	Reason    string    `gorm:"column:reason" json:"reason"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (UrgeEvent) TableName() string { return "urge_event" }

// Time returns the capture instant.
func (e UrgeEvent) Time() time.Time { return time.Unix(e.Timestamp, 0) }
