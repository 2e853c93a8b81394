package models

import "time"

type Post struct {
	ID             int64      `db:"id" json:"id"`
	UserID         int64      `db:"user_id" json:"user_id"`
	Content        string     `db:"content" json:"content"`
	Language       string     `db:"language" json:"language"`
	Topic          string     `db:"topic" json:"topic"`
	Tone           string     `db:"tone" json:"tone"`
	TargetRole     string     `db:"target_role" json:"target_role"`
	Industry       string     `db:"industry" json:"industry"`
	Status         string     `db:"status" json:"status"` // draft, scheduled, published
	MediaPath      string     `db:"media_path" json:"media_path"`
	MediaURL       string     `db:"media_url" json:"media_url"`
	ScheduledAt    *time.Time `db:"scheduled_at" json:"scheduled_at,omitempty"`
	PublishedAt    *time.Time `db:"published_at" json:"published_at,omitempty"`
	LinkedinPostID string     `db:"linkedin_post_id" json:"linkedin_post_id"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)
