package transfer

import "github.com/golang-jwt/jwt/v5"

type PostCreation struct {
	Content     string
	Language    string
	Topic       string
	Tone        string
	TargetRole  string
	Industry    string
	Status      string
	ScheduledAt string
}

type SettingsUpdate struct {
	DefaultLanguage     string `json:"default_language"`
	DefaultTone         string `json:"default_tone"`
	PostingFrequency    int    `json:"posting_frequency"`
	PreferredIndustries string `json:"preferred_industries"`
	PreferredRoles      string `json:"preferred_roles"`
}

type GenerateParams struct {
	Language     string `json:"language"`
	Topic        string `json:"topic"`
	Tone         string `json:"tone"`
	TargetRole   string `json:"target_role"`
	Industry     string `json:"industry"`
	UserHeadline string `json:"user_headline"`
}

type CVAnalysis struct {
	GeneralFeedback string `json:"general_feedback"`
	ImprovedSummary string `json:"improved_summary"`
	ImprovedBullets string `json:"improved_bullets"`
}

type ConnectionStatus struct {
	Linkedin  bool `json:"linkedin"`
	Assistant bool `json:"assistant"`
}

type DashboardStats struct {
	Drafts    int64 `json:"drafts"`
	Scheduled int64 `json:"scheduled"`
	Published int64 `json:"published"`
}

type CustomClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
