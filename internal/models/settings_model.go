package models

import "time"

type Settings struct {
	ID                  int64     `db:"id" json:"id"`
	UserID              int64     `db:"user_id" json:"user_id"`
	DefaultLanguage     string    `db:"default_language" json:"default_language"`
	DefaultTone         string    `db:"default_tone" json:"default_tone"`
	PostingFrequency    int       `db:"posting_frequency" json:"posting_frequency"`
	PreferredIndustries string    `db:"preferred_industries" json:"preferred_industries"`
	PreferredRoles      string    `db:"preferred_roles" json:"preferred_roles"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}
