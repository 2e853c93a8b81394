package service

import (
	"context"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/transfer"
)

const (
	defaultLanguage         = "en"
	defaultTone             = "professional"
	defaultPostingFrequency = 3
)

type SettingsService interface {
	GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error)
	UpdateSettings(ctx context.Context, userID int64, update *transfer.SettingsUpdate) error
}

type settingsService struct {
	sr repository.SettingsRepository
}

func NewSettingsService(sr repository.SettingsRepository) SettingsService {
	return &settingsService{
		sr: sr,
	}
}

// GetSettingsInfo returns stored settings, or the defaults when the user
// never saved any.
func (s *settingsService) GetSettingsInfo(ctx context.Context, userID int64) (*models.Settings, error) {
	settings, isExist, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !isExist {
		return &models.Settings{
			UserID:           userID,
			DefaultLanguage:  defaultLanguage,
			DefaultTone:      defaultTone,
			PostingFrequency: defaultPostingFrequency,
		}, nil
	}

	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID int64, update *transfer.SettingsUpdate) error {
	settings := models.Settings{
		UserID:              userID,
		DefaultLanguage:     update.DefaultLanguage,
		DefaultTone:         update.DefaultTone,
		PostingFrequency:    update.PostingFrequency,
		PreferredIndustries: update.PreferredIndustries,
		PreferredRoles:      update.PreferredRoles,
	}
	if settings.DefaultLanguage == "" {
		settings.DefaultLanguage = defaultLanguage
	}
	if settings.DefaultTone == "" {
		settings.DefaultTone = defaultTone
	}
	if settings.PostingFrequency == 0 {
		settings.PostingFrequency = defaultPostingFrequency
	}

	return s.sr.Upsert(ctx, &settings)
}
