package service

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	config "postpilot/configs"
	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// MediaSource is raw media content ready for upload.
type MediaSource struct {
	Data     []byte
	MimeType string
}

// PublisherService publishes one logical item and reconciles the store.
// A failed media upload degrades the item to text-only; a text-only post
// is considered better than no post.
type PublisherService interface {
	PublishItem(ctx context.Context, accessToken, content string, media *MediaSource) (string, error)
	PublishNow(ctx context.Context, userID, postID int64, content string, upload *MediaSource) (string, error)
}

type publisherService struct {
	cfg config.Config
	li  LinkedinService
	ur  repository.UserRepository
	pr  repository.PostRepository
}

func NewPublisherService(
	cfg config.Config,
	li LinkedinService,
	ur repository.UserRepository,
	pr repository.PostRepository) PublisherService {
	return &publisherService{
		cfg: cfg,
		li:  li,
		ur:  ur,
		pr:  pr,
	}
}

// PublishItem uploads the media (when given) and creates the post. Media
// failures are swallowed; publish failures propagate to the caller.
func (s *publisherService) PublishItem(ctx context.Context, accessToken, content string, media *MediaSource) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	var assetURN string
	if media != nil && len(media.Data) > 0 {
		urn, err := s.li.RegisterAndUploadMedia(ctx, accessToken, media.Data, media.MimeType)
		if err != nil {
			slog.Warn("media upload failed, publishing without media", "error", err)
		} else {
			assetURN = urn
		}
	}

	return s.li.Publish(ctx, accessToken, content, assetURN)
}

// PublishNow is the direct-publish path. Explicit content overrides the
// stored post's content; an explicit upload overrides the stored media.
// On success the post record is updated to published, or a new published
// record is created when publishing ad hoc content with no post.
func (s *publisherService) PublishNow(ctx context.Context, userID, postID int64, content string, upload *MediaSource) (string, error) {
	accessToken, err := resolveAccessToken(ctx, s.ur, s.cfg.SecretKey, userID)
	if err != nil {
		return "", err
	}

	var post *models.Post
	if postID != 0 {
		post, err = s.pr.GetByID(ctx, postID)
		if err != nil {
			return "", err
		}
		if post == nil || post.UserID != userID {
			return "", ErrPostNotFound
		}
	}

	postContent := content
	if postContent == "" && post != nil {
		postContent = post.Content
	}
	if strings.TrimSpace(postContent) == "" {
		return "", ErrEmptyContent
	}

	media := upload
	if media == nil && post != nil && post.MediaPath != "" {
		data, err := os.ReadFile(post.MediaPath)
		if err != nil {
			slog.Warn("failed to read stored media, publishing without media", "post_id", post.ID, "error", err)
		} else {
			media = &MediaSource{Data: data, MimeType: sniffMimeType(post.MediaPath, data)}
		}
	}

	remoteID, err := s.PublishItem(ctx, accessToken, postContent, media)
	if err != nil {
		return "", err
	}

	now := time.Now()
	if post != nil {
		if err := s.pr.MarkPublished(ctx, post.ID, remoteID, now); err != nil {
			slog.Error("post published but status update failed", "post_id", post.ID, "error", err)
		}
		return remoteID, nil
	}

	record := models.Post{
		UserID:  userID,
		Content: postContent,
		Status:  models.PostStatusDraft,
	}
	recordID, err := s.pr.Create(ctx, nil, &record)
	if err != nil {
		slog.Error("post published but record creation failed", "error", err)
		return remoteID, nil
	}
	if err := s.pr.MarkPublished(ctx, recordID, remoteID, now); err != nil {
		slog.Error("post published but status update failed", "post_id", recordID, "error", err)
	}

	return remoteID, nil
}
