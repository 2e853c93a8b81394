package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"postpilot/internal/models"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error)
	Upsert(ctx context.Context, settings *models.Settings) error
}

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetByUserID(ctx context.Context, userID int64) (*models.Settings, bool, error) {
	query := `SELECT id, user_id, default_language, default_tone, posting_frequency, preferred_industries, preferred_roles, created_at, updated_at FROM settings WHERE user_id = $1`
	row := r.db.QueryRowContext(ctx, query, userID)

	var settings models.Settings
	err := row.Scan(&settings.ID, &settings.UserID, &settings.DefaultLanguage, &settings.DefaultTone, &settings.PostingFrequency, &settings.PreferredIndustries, &settings.PreferredRoles, &settings.CreatedAt, &settings.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &settings, true, nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *models.Settings) error {
	query := `
		INSERT INTO settings (user_id, default_language, default_tone, posting_frequency, preferred_industries, preferred_roles)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET default_language = EXCLUDED.default_language,
			default_tone = EXCLUDED.default_tone,
			posting_frequency = EXCLUDED.posting_frequency,
			preferred_industries = EXCLUDED.preferred_industries,
			preferred_roles = EXCLUDED.preferred_roles,
			updated_at = $7
	`
	_, err := r.db.ExecContext(ctx, query, settings.UserID, settings.DefaultLanguage, settings.DefaultTone, settings.PostingFrequency, settings.PreferredIndustries, settings.PreferredRoles, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
