package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"postpilot/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*models.User, bool, error)
	GetByLinkedinID(ctx context.Context, linkedinID string) (*models.User, bool, error)
	Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	GetAccessToken(ctx context.Context, userID int64) (string, error)
	SetTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error
	ClearTokens(ctx context.Context, userID int64) error
	ListExpiringTokens(ctx context.Context, initialTime, finalTime time.Time) ([]*models.User, error)
	Remove(ctx context.Context, id int64) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	var user models.User
	query := "SELECT id, linkedin_id, email, name, headline, profile_picture FROM users WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.LinkedinID, &user.Email, &user.Name, &user.Headline, &user.ProfilePicture)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) GetByLinkedinID(ctx context.Context, linkedinID string) (*models.User, bool, error) {
	var user models.User
	query := "SELECT id, linkedin_id, email, name FROM users WHERE linkedin_id = $1"
	err := r.db.QueryRowContext(ctx, query, linkedinID).Scan(&user.ID, &user.LinkedinID, &user.Email, &user.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &user, true, nil
}

func (r *userRepository) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	query := `
		INSERT INTO users (linkedin_id, email, name, headline, profile_picture, access_token, refresh_token, token_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var err error
	var id int64

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, user.LinkedinID, user.Email, user.Name, user.Headline, user.ProfilePicture, user.AccessToken, user.RefreshToken, user.TokenExpiresAt).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, user.LinkedinID, user.Email, user.Name, user.Headline, user.ProfilePicture, user.AccessToken, user.RefreshToken, user.TokenExpiresAt).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1,
			headline = $2,
			profile_picture = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Headline, user.ProfilePicture, time.Now(), user.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// GetAccessToken returns the stored (encrypted) access token. An empty
// string means the account is not connected.
func (r *userRepository) GetAccessToken(ctx context.Context, userID int64) (string, error) {
	var token string
	query := "SELECT access_token FROM users WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&token)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		slog.Info(err.Error())
		return "", err
	}
	return token, nil
}

func (r *userRepository) SetTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET access_token = $1,
			refresh_token = $2,
			token_expires_at = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, accessToken, refreshToken, expiresAt, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *userRepository) ClearTokens(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET access_token = '',
			refresh_token = '',
			token_expires_at = NULL,
			updated_at = $1
		WHERE id = $2
	`
	_, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *userRepository) ListExpiringTokens(ctx context.Context, initialTime, finalTime time.Time) ([]*models.User, error) {
	query := `SELECT
			id,
			refresh_token,
			token_expires_at
			FROM users
			WHERE refresh_token <> ''
			AND token_expires_at BETWEEN $1 AND $2`
	rows, err := r.db.QueryContext(ctx, query, initialTime, finalTime)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.RefreshToken, &user.TokenExpiresAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return users, nil
}

func (r *userRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
