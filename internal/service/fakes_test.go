package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/transfer"
	"postpilot/pkg/utils"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func encryptedToken(t interface{ Fatalf(string, ...any) }, plaintext string) string {
	encrypted, err := utils.Encrypt([]byte(plaintext), []byte(testSecretKey))
	if err != nil {
		t.Fatalf("encrypt token: %v", err)
	}
	return encrypted
}

type fakeLinkedin struct {
	uploadFn  func(ctx context.Context, accessToken string, data []byte, mimeType string) (string, error)
	publishFn func(ctx context.Context, accessToken, text, assetURN string) (string, error)

	publishCalls []publishCall
}

type publishCall struct {
	text     string
	assetURN string
}

func (f *fakeLinkedin) GetProfile(ctx context.Context, accessToken string) (*transfer.LinkedinUserinfo, error) {
	return &transfer.LinkedinUserinfo{Sub: "abc123", Name: "Test User"}, nil
}

func (f *fakeLinkedin) RegisterAndUploadMedia(ctx context.Context, accessToken string, data []byte, mimeType string) (string, error) {
	if f.uploadFn != nil {
		return f.uploadFn(ctx, accessToken, data, mimeType)
	}
	return "urn:li:digitalmediaAsset:fake", nil
}

func (f *fakeLinkedin) Publish(ctx context.Context, accessToken, text, assetURN string) (string, error) {
	f.publishCalls = append(f.publishCalls, publishCall{text: text, assetURN: assetURN})
	if f.publishFn != nil {
		return f.publishFn(ctx, accessToken, text, assetURN)
	}
	return "urn:li:share:1", nil
}

func (f *fakeLinkedin) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*transfer.LinkedinTokenResponse, error) {
	return nil, errors.New("not implemented")
}

type fakeUserRepo struct {
	accessToken string
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	return nil, false, nil
}

func (f *fakeUserRepo) GetByLinkedinID(ctx context.Context, linkedinID string) (*models.User, bool, error) {
	return nil, false, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *sql.Tx, user *models.User) (int64, error) {
	return 1, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetAccessToken(ctx context.Context, userID int64) (string, error) {
	return f.accessToken, nil
}

func (f *fakeUserRepo) SetTokens(ctx context.Context, userID int64, accessToken, refreshToken string, expiresAt time.Time) error {
	return nil
}

func (f *fakeUserRepo) ClearTokens(ctx context.Context, userID int64) error { return nil }

func (f *fakeUserRepo) ListExpiringTokens(ctx context.Context, initialTime, finalTime time.Time) ([]*models.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Remove(ctx context.Context, id int64) error { return nil }

type markPublishedCall struct {
	postID         int64
	linkedinPostID string
}

type fakePostRepo struct {
	posts map[int64]*models.Post

	marked  []markPublishedCall
	created []*models.Post
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	return post, nil
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	id := int64(len(f.created) + 100)
	post.ID = id
	f.created = append(f.created, post)
	return id, nil
}

func (f *fakePostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	post, ok := f.posts[postID]
	return ok && post.UserID == userID, nil
}

func (f *fakePostRepo) CountByStatus(ctx context.Context, userID int64, status string) (int64, error) {
	return 0, nil
}

func (f *fakePostRepo) MarkPublished(ctx context.Context, postID int64, linkedinPostID string, publishedAt time.Time) error {
	f.marked = append(f.marked, markPublishedCall{postID: postID, linkedinPostID: linkedinPostID})
	return nil
}

func (f *fakePostRepo) Remove(ctx context.Context, id int64) error { return nil }

type fakeScheduleRepo struct {
	due      []*models.Schedule
	statuses map[int64]string

	claimDenied map[int64]bool
}

func newFakeScheduleRepo(due ...*models.Schedule) *fakeScheduleRepo {
	return &fakeScheduleRepo{
		due:         due,
		statuses:    make(map[int64]string),
		claimDenied: make(map[int64]bool),
	}
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	for _, entry := range f.due {
		if entry.ID == id {
			return entry, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) Create(ctx context.Context, tx *sql.Tx, schedule *models.Schedule) (int64, error) {
	return 1, nil
}

func (f *fakeScheduleRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Schedule, error) {
	return f.due, nil
}

func (f *fakeScheduleRepo) ListDue(ctx context.Context, userID int64, now time.Time) ([]*models.Schedule, error) {
	return f.due, nil
}

func (f *fakeScheduleRepo) Claim(ctx context.Context, id int64) (bool, error) {
	if f.claimDenied[id] {
		return false, nil
	}
	f.statuses[id] = models.ScheduleStatusProcessing
	return true, nil
}

func (f *fakeScheduleRepo) SetStatus(ctx context.Context, id int64, status string) error {
	f.statuses[id] = status
	return nil
}

func (f *fakeScheduleRepo) UsersWithDue(ctx context.Context, now time.Time) ([]int64, error) {
	seen := make(map[int64]bool)
	var userIDs []int64
	for _, entry := range f.due {
		if !seen[entry.UserID] {
			seen[entry.UserID] = true
			userIDs = append(userIDs, entry.UserID)
		}
	}
	return userIDs, nil
}

func (f *fakeScheduleRepo) Remove(ctx context.Context, id int64) error { return nil }
