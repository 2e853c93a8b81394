package models

import "time"

// Schedule is one publication attempt for a post. MediaPath is copied from
// the post at creation time so the sweep never re-derives media association.
type Schedule struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	PostID      int64     `db:"post_id" json:"post_id"`
	ScheduledAt time.Time `db:"scheduled_at" json:"scheduled_at"`
	Status      string    `db:"status" json:"status"`
	WithMedia   bool      `db:"with_media" json:"with_media"`
	MediaPath   string    `db:"media_path" json:"media_path"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PROCESSING marks an entry claimed by a running sweep so overlapping
// sweep invocations cannot publish it twice. SENT and FAILED are terminal.
const (
	ScheduleStatusPending    = "PENDING"
	ScheduleStatusProcessing = "PROCESSING"
	ScheduleStatusSent       = "SENT"
	ScheduleStatusFailed     = "FAILED"
)
