package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConnected is returned before any item is attempted when the
	// user has no stored LinkedIn access token.
	ErrNotConnected = errors.New("linkedin account is not connected")

	// ErrEmptyContent is returned before any remote call is made.
	ErrEmptyContent = errors.New("post content is required")

	ErrPostNotFound = errors.New("post not found")
)

// AuthError reports a rejected access token on an identity call.
type AuthError struct {
	StatusCode int
	Remote     string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("linkedin rejected the access token (status %d): %s", e.StatusCode, e.Remote)
}

// MediaUploadError reports a failure at one step of the media upload
// protocol. Callers degrade to a text-only publish instead of aborting.
type MediaUploadError struct {
	Step       string
	StatusCode int
	Remote     string
}

func (e *MediaUploadError) Error() string {
	return fmt.Sprintf("media upload failed at step %q (status %d): %s", e.Step, e.StatusCode, e.Remote)
}

// PublishError reports a rejected post creation. It is fatal to the one
// item being published, never to the rest of a sweep batch.
type PublishError struct {
	StatusCode int
	Remote     string
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("linkedin rejected the post (status %d): %s", e.StatusCode, e.Remote)
}
