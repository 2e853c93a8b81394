package service

import (
	"context"
	"strings"
	"time"

	"github.com/h2non/filetype"

	"postpilot/internal/repository"
	"postpilot/pkg/utils"
)

func GetExpiresAt(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn) * time.Second)
}

// resolveAccessToken loads and decrypts the user's stored token. An empty
// stored value means the account was never connected or was disconnected.
func resolveAccessToken(ctx context.Context, ur repository.UserRepository, secretKey string, userID int64) (string, error) {
	encrypted, err := ur.GetAccessToken(ctx, userID)
	if err != nil {
		return "", err
	}
	if encrypted == "" {
		return "", ErrNotConnected
	}

	token, err := utils.Decrypt(encrypted, []byte(secretKey))
	if err != nil {
		return "", err
	}
	return token, nil
}

// sniffMimeType inspects the file bytes, falling back to the extension.
func sniffMimeType(path string, data []byte) string {
	if kind, err := filetype.Match(data); err == nil && kind.MIME.Value != "" {
		return kind.MIME.Value
	}
	if strings.HasSuffix(path, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
