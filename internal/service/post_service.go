package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/transfer"
)

const scheduledTimeLayout = "2006-01-02T15:04"

type PostService interface {
	CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation, media *multipart.FileHeader) (int64, error)
	List(ctx context.Context, userID int64) ([]*models.Post, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	Remove(ctx context.Context, userID, postID int64) error
	Stats(ctx context.Context, userID int64) (*transfer.DashboardStats, error)
	ListSchedules(ctx context.Context, userID int64) ([]*models.Schedule, error)
}

type postService struct {
	db    *sql.DB
	pr    repository.PostRepository
	sr    repository.ScheduleRepository
	media MediaService
}

func NewPostService(
	db *sql.DB,
	pr repository.PostRepository,
	sr repository.ScheduleRepository,
	media MediaService) PostService {
	return &postService{
		db:    db,
		pr:    pr,
		sr:    sr,
		media: media,
	}
}

// CreatePost stores a draft or scheduled post. A scheduled post and its
// schedule entry are created in one transaction so a sweep can never see
// one without the other.
func (s *postService) CreatePost(ctx context.Context, userID int64, pc *transfer.PostCreation, media *multipart.FileHeader) (int64, error) {
	if pc == nil {
		err := errors.New("post creation data is nil")
		slog.Error(err.Error())
		return 0, err
	}
	if pc.Content == "" {
		slog.Info(ErrEmptyContent.Error())
		return 0, ErrEmptyContent
	}

	status := pc.Status
	if status == "" {
		status = models.PostStatusDraft
	}
	if status != models.PostStatusDraft && status != models.PostStatusScheduled {
		return 0, fmt.Errorf("invalid post status: %s", status)
	}

	var scheduledAt *time.Time
	if pc.ScheduledAt != "" {
		parsed, err := time.Parse(scheduledTimeLayout, pc.ScheduledAt)
		if err != nil {
			err = fmt.Errorf("invalid scheduled time format: %w", err)
			slog.Error(err.Error())
			return 0, err
		}
		scheduledAt = &parsed
	}
	if status == models.PostStatusScheduled && scheduledAt == nil {
		return 0, errors.New("scheduled post requires a scheduled time")
	}

	language := pc.Language
	if language == "" {
		language = "en"
	}

	var mediaPath, mediaURL string
	if media != nil {
		var err error
		mediaPath, mediaURL, err = s.media.SaveUpload(ctx, userID, media)
		if err != nil {
			return 0, fmt.Errorf("error processing media: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		}
	}()

	post := models.Post{
		UserID:      userID,
		Content:     pc.Content,
		Language:    language,
		Topic:       pc.Topic,
		Tone:        pc.Tone,
		TargetRole:  pc.TargetRole,
		Industry:    pc.Industry,
		Status:      status,
		MediaPath:   mediaPath,
		MediaURL:    mediaURL,
		ScheduledAt: scheduledAt,
	}

	postID, err := s.pr.Create(ctx, tx, &post)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	if status == models.PostStatusScheduled {
		schedule := models.Schedule{
			UserID:      userID,
			PostID:      postID,
			ScheduledAt: *scheduledAt,
			Status:      models.ScheduleStatusPending,
			WithMedia:   mediaPath != "",
			MediaPath:   mediaPath,
		}
		if _, err = s.sr.Create(ctx, tx, &schedule); err != nil {
			return 0, fmt.Errorf("error creating schedule: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return postID, nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*models.Post, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return posts, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if userID == 0 || postID == 0 {
		slog.Info("post or user id is not valid")
		return nil, ErrPostNotFound
	}

	isValid, err := s.pr.CheckByUserID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !isValid {
		slog.Info(ErrPostNotFound.Error())
		return nil, ErrPostNotFound
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("error getting post info: %w", err)
	}

	return post, nil
}

// Remove deletes the post and its local media file. Schedule entries are
// left alone on purpose: a later sweep finds the post gone and fails that
// entry gracefully.
func (s *postService) Remove(ctx context.Context, userID, postID int64) error {
	post, err := s.PostInfo(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if post.MediaPath != "" {
		s.media.RemoveFile(post.MediaPath)
	}

	if err := s.pr.Remove(ctx, postID); err != nil {
		return fmt.Errorf("error removing post: %w", err)
	}

	return nil
}

func (s *postService) Stats(ctx context.Context, userID int64) (*transfer.DashboardStats, error) {
	drafts, err := s.pr.CountByStatus(ctx, userID, models.PostStatusDraft)
	if err != nil {
		return nil, err
	}
	scheduled, err := s.pr.CountByStatus(ctx, userID, models.PostStatusScheduled)
	if err != nil {
		return nil, err
	}
	published, err := s.pr.CountByStatus(ctx, userID, models.PostStatusPublished)
	if err != nil {
		return nil, err
	}

	return &transfer.DashboardStats{
		Drafts:    drafts,
		Scheduled: scheduled,
		Published: published,
	}, nil
}

func (s *postService) ListSchedules(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	schedules, err := s.sr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing schedules: %w", err)
	}
	return schedules, nil
}
