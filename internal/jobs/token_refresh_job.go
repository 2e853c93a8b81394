package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/service"
)

type TokenRefreshJob struct {
	ur repository.UserRepository
	as service.AuthService
}

func NewTokenRefreshJob(ur repository.UserRepository, as service.AuthService) *TokenRefreshJob {
	return &TokenRefreshJob{ur: ur, as: as}
}

// RefreshTokens renews credentials expiring within the next 30 minutes.
func (j *TokenRefreshJob) RefreshTokens() {
	ctx := context.Background()

	currentTime := time.Now()
	timeIn30Minutes := currentTime.Add(30 * time.Minute)

	users, err := j.ur.ListExpiringTokens(ctx, currentTime, timeIn30Minutes)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, u := range users {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(u *models.User) {
			defer wg.Done()
			defer func() { <-semaphore }()

			if err := j.as.RefreshTokens(ctx, u.ID, u.RefreshToken); err != nil {
				slog.Info("unable to refresh LinkedIn tokens",
					slog.Int64("user_id", u.ID),
					slog.String("error", err.Error()))
			}
		}(u)
	}

	wg.Wait()
}
