package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"postpilot/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	CountByStatus(ctx context.Context, userID int64, status string) (int64, error)
	MarkPublished(ctx context.Context, postID int64, linkedinPostID string, publishedAt time.Time) error
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, content, language, topic, tone, target_role, industry, status, media_path, media_url, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{post.UserID, post.Content, post.Language, post.Topic, post.Tone, post.TargetRole, post.Industry, post.Status, post.MediaPath, post.MediaURL, post.ScheduledAt}

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, user_id, content, language, topic, tone, target_role, industry, status, media_path, media_url, scheduled_at, published_at, linkedin_post_id, created_at, updated_at FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var post models.Post
	var linkedinPostID sql.NullString
	err := row.Scan(&post.ID, &post.UserID, &post.Content, &post.Language, &post.Topic, &post.Tone, &post.TargetRole, &post.Industry, &post.Status, &post.MediaPath, &post.MediaURL, &post.ScheduledAt, &post.PublishedAt, &linkedinPostID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	post.LinkedinPostID = linkedinPostID.String

	return &post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := `SELECT id, user_id, content, language, topic, tone, target_role, industry, status, media_path, media_url, scheduled_at, published_at, linkedin_post_id, created_at, updated_at FROM posts WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		var linkedinPostID sql.NullString
		err := rows.Scan(&post.ID, &post.UserID, &post.Content, &post.Language, &post.Topic, &post.Tone, &post.TargetRole, &post.Industry, &post.Status, &post.MediaPath, &post.MediaURL, &post.ScheduledAt, &post.PublishedAt, &linkedinPostID, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		post.LinkedinPostID = linkedinPostID.String
		posts = append(posts, &post)
	}
	return posts, nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *postRepository) CountByStatus(ctx context.Context, userID int64, status string) (int64, error) {
	query := "SELECT COUNT(*) FROM posts WHERE user_id = $1 AND status = $2"

	var count int64
	err := r.db.QueryRowContext(ctx, query, userID, status).Scan(&count)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return count, nil
}

// MarkPublished sets published_at and the remote post id together with the
// status change, keeping the published-iff-remote-id invariant in one write.
func (r *postRepository) MarkPublished(ctx context.Context, postID int64, linkedinPostID string, publishedAt time.Time) error {
	query := `
		UPDATE posts
		SET status = $1,
			published_at = $2,
			linkedin_post_id = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusPublished, publishedAt, linkedinPostID, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
