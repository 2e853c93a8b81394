package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"

	config "postpilot/configs"
)

// MediaService stores an uploaded image twice: a local copy the publish
// path reads at posting time, and an R2 object serving the public URL.
type MediaService interface {
	SaveUpload(ctx context.Context, userID int64, file *multipart.FileHeader) (string, string, error)
	RemoveFile(path string)
}

type mediaService struct {
	cfg config.Config
}

func NewMediaService(cfg config.Config) MediaService {
	return &mediaService{cfg: cfg}
}

var allowedMediaTypes = map[string]struct{}{
	"jpg": {}, "jpeg": {}, "png": {},
}

func (s *mediaService) SaveUpload(ctx context.Context, userID int64, file *multipart.FileHeader) (string, string, error) {
	fileContent, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		return "", "", fmt.Errorf("unsupported file type: %w", err)
	}
	if _, ok := allowedMediaTypes[fileType.Extension]; !ok {
		return "", "", fmt.Errorf("file type %s is not allowed", fileType.Extension)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", "", err
	}
	key := fmt.Sprintf("%d-%s.%s", userID, id, fileType.Extension)

	if err := os.MkdirAll(s.cfg.UploadsDir, 0o755); err != nil {
		return "", "", fmt.Errorf("error creating uploads directory: %w", err)
	}
	localPath := filepath.Join(s.cfg.UploadsDir, key)
	if err := os.WriteFile(localPath, fileBytes, 0o644); err != nil {
		return "", "", fmt.Errorf("error saving file: %w", err)
	}

	if err := s.uploadToR2(ctx, key, fileBytes, fileType.MIME.Value); err != nil {
		slog.Warn("failed to upload media to r2, keeping local copy only", "key", key, "error", err)
		return localPath, "", nil
	}

	publicURL := fmt.Sprintf("%s/%s", s.cfg.R2.PublicBaseURL, key)
	return localPath, publicURL, nil
}

// RemoveFile deletes the local copy, best effort.
func (s *mediaService) RemoveFile(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		slog.Info(err.Error())
	}
}

func (s *mediaService) r2Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.cfg.R2.AccessKey, s.cfg.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.cfg.R2.AccountID))
	}), nil
}

func (s *mediaService) uploadToR2(ctx context.Context, key string, file []byte, mimeType string) error {
	client, err := s.r2Client(ctx)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(file),
		ContentType: aws.String(mimeType),
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return err
	}

	return nil
}
