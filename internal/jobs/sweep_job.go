package job

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"postpilot/internal/service"
)

type SweepJob struct {
	ss service.SchedulerService
}

func NewSweepJob(ss service.SchedulerService) *SweepJob {
	return &SweepJob{ss: ss}
}

// Run publishes due schedules for every user that has any. Users are
// swept independently so one broken account never blocks the rest.
func (j *SweepJob) Run() {
	ctx := context.Background()

	userIDs, err := j.ss.UsersWithDueWork(ctx, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, userID := range userIDs {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(userID int64) {
			defer wg.Done()
			defer func() { <-semaphore }()

			summary, err := j.ss.RunSweep(ctx, userID)
			if err != nil {
				if errors.Is(err, service.ErrNotConnected) {
					slog.Info("skipping sweep, LinkedIn not connected",
						slog.Int64("user_id", userID))
					return
				}
				slog.Info("sweep failed",
					slog.Int64("user_id", userID),
					slog.String("error", err.Error()))
				return
			}

			if summary.Processed > 0 {
				slog.Info("sweep finished",
					slog.Int64("user_id", userID),
					slog.Int("processed", summary.Processed),
					slog.Int("succeeded", summary.Succeeded),
					slog.Int("failed", summary.Failed))
			}
		}(userID)
	}

	wg.Wait()
}
