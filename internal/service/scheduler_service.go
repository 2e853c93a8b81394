package service

import (
	"context"
	"log/slog"
	"os"
	"time"

	config "postpilot/configs"
	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// SweepSummary aggregates one sweep pass. Processed = Succeeded + Failed.
type SweepSummary struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// SchedulerService runs the due-item sweep: one on-demand pass over all
// pending schedule entries whose time has come, for one user's credential.
type SchedulerService interface {
	RunSweep(ctx context.Context, userID int64) (*SweepSummary, error)
	UsersWithDueWork(ctx context.Context, now time.Time) ([]int64, error)
}

type schedulerService struct {
	cfg config.Config
	sr  repository.ScheduleRepository
	pr  repository.PostRepository
	ur  repository.UserRepository
	pub PublisherService
}

func NewSchedulerService(
	cfg config.Config,
	sr repository.ScheduleRepository,
	pr repository.PostRepository,
	ur repository.UserRepository,
	pub PublisherService) SchedulerService {
	return &schedulerService{
		cfg: cfg,
		sr:  sr,
		pr:  pr,
		ur:  ur,
		pub: pub,
	}
}

// RunSweep processes every due entry independently: one bad item never
// prevents the remaining due items from being attempted. The token is
// resolved once at sweep start; a missing credential aborts before any
// entry is touched.
func (s *schedulerService) RunSweep(ctx context.Context, userID int64) (*SweepSummary, error) {
	accessToken, err := resolveAccessToken(ctx, s.ur, s.cfg.SecretKey, userID)
	if err != nil {
		return nil, err
	}

	due, err := s.sr.ListDue(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	summary := &SweepSummary{}
	for _, entry := range due {
		claimed, err := s.sr.Claim(ctx, entry.ID)
		if err != nil {
			slog.Error("failed to claim schedule entry", "schedule_id", entry.ID, "error", err)
			continue
		}
		if !claimed {
			// Another sweep invocation picked this entry up first.
			slog.Info("schedule entry already claimed", "schedule_id", entry.ID)
			continue
		}
		summary.Processed++

		remoteID, err := s.publishEntry(ctx, accessToken, entry)
		if err != nil {
			slog.Error("failed to publish schedule entry", "schedule_id", entry.ID, "post_id", entry.PostID, "error", err)
			if err := s.sr.SetStatus(ctx, entry.ID, models.ScheduleStatusFailed); err != nil {
				slog.Error("failed to mark schedule entry failed", "schedule_id", entry.ID, "error", err)
			}
			summary.Failed++
			continue
		}

		if err := s.sr.SetStatus(ctx, entry.ID, models.ScheduleStatusSent); err != nil {
			slog.Error("failed to mark schedule entry sent", "schedule_id", entry.ID, "error", err)
		}
		if err := s.pr.MarkPublished(ctx, entry.PostID, remoteID, time.Now()); err != nil {
			slog.Error("failed to mark post published", "post_id", entry.PostID, "error", err)
		}
		summary.Succeeded++
	}

	return summary, nil
}

// publishEntry attempts one entry. A missing or unreadable media file
// degrades the item to text-only; a missing post fails the item.
func (s *schedulerService) publishEntry(ctx context.Context, accessToken string, entry *models.Schedule) (string, error) {
	post, err := s.pr.GetByID(ctx, entry.PostID)
	if err != nil {
		return "", err
	}
	if post == nil {
		return "", ErrPostNotFound
	}

	var media *MediaSource
	if entry.WithMedia && entry.MediaPath != "" {
		data, err := os.ReadFile(entry.MediaPath)
		if err != nil {
			slog.Warn("failed to read schedule media, publishing without media", "schedule_id", entry.ID, "path", entry.MediaPath, "error", err)
		} else {
			media = &MediaSource{Data: data, MimeType: sniffMimeType(entry.MediaPath, data)}
		}
	}

	return s.pub.PublishItem(ctx, accessToken, post.Content, media)
}

func (s *schedulerService) UsersWithDueWork(ctx context.Context, now time.Time) ([]int64, error) {
	return s.sr.UsersWithDue(ctx, now)
}
