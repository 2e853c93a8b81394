package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	config "postpilot/configs"
	"postpilot/internal/transfer"
)

const feedshareImageRecipe = "urn:li:digitalmediaRecipe:feedshare-image"

// LinkedinService talks to the LinkedIn REST API with a bearer access
// token. Identity is re-fetched on every call instead of cached so a token
// rotated mid-session can never pair with a stale person URN.
type LinkedinService interface {
	GetProfile(ctx context.Context, accessToken string) (*transfer.LinkedinUserinfo, error)
	RegisterAndUploadMedia(ctx context.Context, accessToken string, data []byte, mimeType string) (string, error)
	Publish(ctx context.Context, accessToken, text, assetURN string) (string, error)
	ExchangeRefreshToken(ctx context.Context, refreshToken string) (*transfer.LinkedinTokenResponse, error)
}

type linkedinService struct {
	cfg    config.Config
	client *http.Client
}

func NewLinkedinService(cfg config.Config) LinkedinService {
	return &linkedinService{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (s *linkedinService) GetProfile(ctx context.Context, accessToken string) (*transfer.LinkedinUserinfo, error) {
	reqURL := s.cfg.LinkedinAPIBaseURL + "/v2/userinfo"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{StatusCode: resp.StatusCode, Remote: string(respBody)}
	}

	var userinfo transfer.LinkedinUserinfo
	if err := json.Unmarshal(respBody, &userinfo); err != nil {
		return nil, fmt.Errorf("error parsing userinfo response: %w", err)
	}
	if userinfo.Sub == "" {
		return nil, &AuthError{StatusCode: resp.StatusCode, Remote: "userinfo response has no subject"}
	}

	return &userinfo, nil
}

// RegisterAndUploadMedia runs the three-step upload protocol: resolve the
// owner URN, register an upload intent, PUT the raw bytes. Any non-2xx
// response fails the whole call; there is no retry.
func (s *linkedinService) RegisterAndUploadMedia(ctx context.Context, accessToken string, data []byte, mimeType string) (string, error) {
	profile, err := s.GetProfile(ctx, accessToken)
	if err != nil {
		return "", &MediaUploadError{Step: "identity", Remote: err.Error()}
	}

	registerReq := transfer.RegisterUploadRequest{
		RegisterUploadRequest: transfer.RegisterUploadBody{
			Recipes: []string{feedshareImageRecipe},
			Owner:   "urn:li:person:" + profile.Sub,
			ServiceRelationships: []transfer.ServiceRelationship{
				{
					RelationshipType: "OWNER",
					Identifier:       "urn:li:userGeneratedContent",
				},
			},
		},
	}

	body, err := json.Marshal(registerReq)
	if err != nil {
		return "", &MediaUploadError{Step: "register", Remote: err.Error()}
	}

	reqURL := s.cfg.LinkedinAPIBaseURL + "/v2/assets?action=registerUpload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", &MediaUploadError{Step: "register", Remote: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", &MediaUploadError{Step: "register", Remote: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &MediaUploadError{Step: "register", Remote: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &MediaUploadError{Step: "register", StatusCode: resp.StatusCode, Remote: string(respBody)}
	}

	var registerResp transfer.RegisterUploadResponse
	if err := json.Unmarshal(respBody, &registerResp); err != nil {
		return "", &MediaUploadError{Step: "register", StatusCode: resp.StatusCode, Remote: err.Error()}
	}

	asset := registerResp.Value.Asset
	uploadURL := registerResp.Value.UploadMechanism.MediaUploadHTTPRequest.UploadURL
	if asset == "" || uploadURL == "" {
		return "", &MediaUploadError{Step: "register", StatusCode: resp.StatusCode, Remote: "register response is missing asset or upload url"}
	}

	if err := s.uploadBytes(ctx, uploadURL, data, mimeType); err != nil {
		return "", err
	}

	return asset, nil
}

func (s *linkedinService) uploadBytes(ctx context.Context, uploadURL string, data []byte, mimeType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return &MediaUploadError{Step: "upload", Remote: err.Error()}
	}
	req.Header.Set("Content-Type", mimeType)

	resp, err := s.client.Do(req)
	if err != nil {
		return &MediaUploadError{Step: "upload", Remote: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &MediaUploadError{Step: "upload", StatusCode: resp.StatusCode, Remote: string(respBody)}
	}

	return nil
}

// Publish creates a UGC post. The media section is present only when an
// asset URN is given. Any non-2xx response is a PublishError; the caller
// must treat it as non-retryable within the same sweep pass.
func (s *linkedinService) Publish(ctx context.Context, accessToken, text, assetURN string) (string, error) {
	profile, err := s.GetProfile(ctx, accessToken)
	if err != nil {
		return "", err
	}

	shareContent := transfer.UGCShareContent{
		ShareCommentary:    transfer.UGCText{Text: text},
		ShareMediaCategory: "NONE",
	}
	if assetURN != "" {
		shareContent.ShareMediaCategory = "IMAGE"
		shareContent.Media = []transfer.UGCShareMedia{
			{Status: "READY", Media: assetURN},
		}
	}

	postReq := transfer.UGCPostRequest{
		Author:          "urn:li:person:" + profile.Sub,
		LifecycleState:  "PUBLISHED",
		SpecificContent: transfer.UGCSpecificContent{ShareContent: shareContent},
		Visibility:      transfer.UGCVisibility{MemberNetworkVisibility: "PUBLIC"},
	}

	body, err := json.Marshal(postReq)
	if err != nil {
		return "", fmt.Errorf("error marshalling payload: %w", err)
	}

	reqURL := s.cfg.LinkedinAPIBaseURL + "/v2/ugcPosts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &PublishError{StatusCode: resp.StatusCode, Remote: string(respBody)}
	}

	var postResp transfer.UGCPostResponse
	if err := json.Unmarshal(respBody, &postResp); err != nil {
		return "", &PublishError{StatusCode: resp.StatusCode, Remote: err.Error()}
	}
	if postResp.ID == "" {
		return "", &PublishError{StatusCode: resp.StatusCode, Remote: "no post id returned"}
	}

	return postResp.ID, nil
}

func (s *linkedinService) ExchangeRefreshToken(ctx context.Context, refreshToken string) (*transfer.LinkedinTokenResponse, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	data.Set("client_id", s.cfg.LinkedinClientID)
	data.Set("client_secret", s.cfg.LinkedinClientSecret)

	reqURL := s.cfg.LinkedinOAuthBaseURL + "/oauth/v2/accessToken"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error response from LinkedIn: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var token transfer.LinkedinTokenResponse
	if err := json.Unmarshal(respBody, &token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &token, nil
}
