package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"postpilot/internal/models"
)

type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	Create(ctx context.Context, tx *sql.Tx, schedule *models.Schedule) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Schedule, error)
	ListDue(ctx context.Context, userID int64, now time.Time) ([]*models.Schedule, error)
	Claim(ctx context.Context, id int64) (bool, error)
	SetStatus(ctx context.Context, id int64, status string) error
	UsersWithDue(ctx context.Context, now time.Time) ([]int64, error)
	Remove(ctx context.Context, id int64) error
}

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, tx *sql.Tx, schedule *models.Schedule) (int64, error) {
	query := `
		INSERT INTO schedules (user_id, post_id, scheduled_at, status, with_media, media_path)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	var err error

	args := []interface{}{schedule.UserID, schedule.PostID, schedule.ScheduledAt, schedule.Status, schedule.WithMedia, schedule.MediaPath}

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

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	query := `SELECT id, user_id, post_id, scheduled_at, status, with_media, media_path, created_at, updated_at FROM schedules WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var schedule models.Schedule
	err := row.Scan(&schedule.ID, &schedule.UserID, &schedule.PostID, &schedule.ScheduledAt, &schedule.Status, &schedule.WithMedia, &schedule.MediaPath, &schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &schedule, nil
}

func (r *scheduleRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	query := `SELECT id, user_id, post_id, scheduled_at, status, with_media, media_path, created_at, updated_at FROM schedules WHERE user_id = $1 ORDER BY scheduled_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// ListDue selects the pending entries whose time has passed, in creation
// order so repeated sweeps see a stable ordering.
func (r *scheduleRepository) ListDue(ctx context.Context, userID int64, now time.Time) ([]*models.Schedule, error) {
	query := `
		SELECT id, user_id, post_id, scheduled_at, status, with_media, media_path, created_at, updated_at
		FROM schedules
		WHERE user_id = $1 AND status = $2 AND scheduled_at <= $3
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID, models.ScheduleStatusPending, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	return scanSchedules(rows)
}

// Claim transitions PENDING to PROCESSING for exactly one sweep invocation.
// A false return means another invocation already picked the entry up.
func (r *scheduleRepository) Claim(ctx context.Context, id int64) (bool, error) {
	query := `
		UPDATE schedules
		SET status = $1,
			updated_at = $2
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, models.ScheduleStatusProcessing, time.Now(), id, models.ScheduleStatusPending)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}
	return affected == 1, nil
}

func (r *scheduleRepository) SetStatus(ctx context.Context, id int64, status string) error {
	query := `
		UPDATE schedules
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduleRepository) UsersWithDue(ctx context.Context, now time.Time) ([]int64, error) {
	query := `SELECT DISTINCT user_id FROM schedules WHERE status = $1 AND scheduled_at <= $2`
	rows, err := r.db.QueryContext(ctx, query, models.ScheduleStatusPending, now)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return userIDs, nil
}

func (r *scheduleRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM schedules WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func scanSchedules(rows *sql.Rows) ([]*models.Schedule, error) {
	var schedules []*models.Schedule
	for rows.Next() {
		var schedule models.Schedule
		err := rows.Scan(&schedule.ID, &schedule.UserID, &schedule.PostID, &schedule.ScheduledAt, &schedule.Status, &schedule.WithMedia, &schedule.MediaPath, &schedule.CreatedAt, &schedule.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return schedules, nil
}
