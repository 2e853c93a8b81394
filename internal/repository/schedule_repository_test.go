package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postpilot/internal/models"
)

var scheduleColumns = []string{
	"id", "user_id", "post_id", "scheduled_at", "status",
	"with_media", "media_path", "created_at", "updated_at",
}

func TestScheduleListDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	past := now.Add(-time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM schedules").
		WithArgs(int64(7), models.ScheduleStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(scheduleColumns).
			AddRow(int64(1), int64(7), int64(42), past, models.ScheduleStatusPending, false, "", past, past).
			AddRow(int64(2), int64(7), int64(43), past, models.ScheduleStatusPending, true, "uploads/pic.png", past, past))

	due, err := NewScheduleRepository(db).ListDue(context.Background(), 7, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, int64(42), due[0].PostID)
	assert.True(t, due[1].WithMedia)
	assert.Equal(t, "uploads/pic.png", due[1].MediaPath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleListDueEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM schedules").
		WithArgs(int64(7), models.ScheduleStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(scheduleColumns))

	due, err := NewScheduleRepository(db).ListDue(context.Background(), 7, time.Now())
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestScheduleClaim(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE schedules").
		WithArgs(models.ScheduleStatusProcessing, sqlmock.AnyArg(), int64(1), models.ScheduleStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	claimed, err := NewScheduleRepository(db).Claim(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestScheduleClaimAlreadyTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE schedules").
		WithArgs(models.ScheduleStatusProcessing, sqlmock.AnyArg(), int64(1), models.ScheduleStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err := NewScheduleRepository(db).Claim(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, claimed, "an entry already in PROCESSING must not be claimed twice")
}

func TestScheduleSetStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE schedules").
		WithArgs(models.ScheduleStatusSent, sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewScheduleRepository(db).SetStatus(context.Background(), 1, models.ScheduleStatusSent)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	scheduledAt := time.Now().Add(time.Hour)
	schedule := &models.Schedule{
		UserID:      7,
		PostID:      42,
		ScheduledAt: scheduledAt,
		Status:      models.ScheduleStatusPending,
		WithMedia:   true,
		MediaPath:   "uploads/pic.png",
	}

	mock.ExpectQuery("INSERT INTO schedules").
		WithArgs(schedule.UserID, schedule.PostID, schedule.ScheduledAt, schedule.Status,
			schedule.WithMedia, schedule.MediaPath).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	id, err := NewScheduleRepository(db).Create(context.Background(), nil, schedule)
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
}

func TestScheduleUsersWithDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT user_id FROM schedules WHERE status = $1 AND scheduled_at <= $2")).
		WithArgs(models.ScheduleStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(7)).AddRow(int64(9)))

	userIDs, err := NewScheduleRepository(db).UsersWithDue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, userIDs)
}
