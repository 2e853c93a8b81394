package models

import "time"

type User struct {
	ID             int64      `db:"id" json:"id"`
	LinkedinID     string     `db:"linkedin_id" json:"linkedin_id"`
	Email          string     `db:"email" json:"email"`
	Name           string     `db:"name" json:"name"`
	Headline       string     `db:"headline" json:"headline"`
	ProfilePicture string     `db:"profile_picture" json:"profile_picture"`
	AccessToken    string     `db:"access_token" json:"-"`
	RefreshToken   string     `db:"refresh_token" json:"-"`
	TokenExpiresAt *time.Time `db:"token_expires_at" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
