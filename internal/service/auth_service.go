package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"golang.org/x/oauth2"

	config "postpilot/configs"
	"postpilot/internal/models"
	"postpilot/internal/repository"
	"postpilot/internal/transfer"
	"postpilot/pkg/utils"
)

// AuthService handles the LinkedIn OAuth connect flow. The same grant
// signs the user in and stores the publishing credential.
type AuthService interface {
	AuthURL(state string) string
	LoginCallback(ctx context.Context, code string) (int64, error)
	Disconnect(ctx context.Context, userID int64) error
	Status(ctx context.Context, userID int64) (*transfer.ConnectionStatus, error)
	RefreshTokens(ctx context.Context, userID int64, encryptedRefreshToken string) error
}

type authService struct {
	cfg config.Config
	u   repository.UserRepository
	li  LinkedinService
}

func NewAuthService(cfg config.Config, u repository.UserRepository, li LinkedinService) AuthService {
	return &authService{
		cfg: cfg,
		u:   u,
		li:  li,
	}
}

func (s *authService) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.cfg.LinkedinClientID,
		ClientSecret: s.cfg.LinkedinClientSecret,
		RedirectURL:  s.cfg.LinkedinRedirectURI,
		Scopes:       []string{"openid", "profile", "email", "w_member_social"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  s.cfg.LinkedinOAuthBaseURL + "/oauth/v2/authorization",
			TokenURL: s.cfg.LinkedinOAuthBaseURL + "/oauth/v2/accessToken",
		},
	}
}

func (s *authService) AuthURL(state string) string {
	cfg := s.oauth2Config()
	params := url.Values{}
	params.Add("response_type", "code")
	params.Add("client_id", cfg.ClientID)
	params.Add("redirect_uri", cfg.RedirectURL)
	params.Add("scope", "openid profile email w_member_social")
	params.Add("state", state)
	return fmt.Sprintf("%s?%s", cfg.Endpoint.AuthURL, params.Encode())
}

func (s *authService) LoginCallback(ctx context.Context, code string) (int64, error) {
	if code == "" {
		err := errors.New("code is empty")
		slog.Info(err.Error())
		return 0, err
	}

	oauth2Config := s.oauth2Config()
	if oauth2Config.ClientID == "" || oauth2Config.ClientSecret == "" {
		err := errors.New("OAuth2 configuration is incomplete")
		slog.Info(err.Error())
		return 0, err
	}

	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	userinfo, err := s.li.GetProfile(ctx, token.AccessToken)
	if err != nil {
		return 0, err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return 0, err
	}
	encryptedRefreshToken := ""
	if token.RefreshToken != "" {
		encryptedRefreshToken, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return 0, err
		}
	}

	user, isExist, err := s.u.GetByLinkedinID(ctx, userinfo.Sub)
	if err != nil {
		return 0, err
	}

	var userID int64
	if !isExist {
		userID, err = s.u.Create(ctx, nil, &models.User{
			LinkedinID:     userinfo.Sub,
			Email:          userinfo.Email,
			Name:           userinfo.Name,
			Headline:       userinfo.Headline,
			ProfilePicture: userinfo.Picture,
		})
		if err != nil {
			slog.Info(err.Error())
			return 0, err
		}
	} else {
		userID = user.ID
	}

	if err := s.u.SetTokens(ctx, userID, encryptedAccessToken, encryptedRefreshToken, token.Expiry); err != nil {
		return 0, err
	}

	return userID, nil
}

func (s *authService) Disconnect(ctx context.Context, userID int64) error {
	return s.u.ClearTokens(ctx, userID)
}

func (s *authService) Status(ctx context.Context, userID int64) (*transfer.ConnectionStatus, error) {
	accessToken, err := s.u.GetAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &transfer.ConnectionStatus{
		Linkedin:  accessToken != "",
		Assistant: s.cfg.OpenAIAPIKey != "",
	}, nil
}

// RefreshTokens exchanges the stored refresh token for a fresh credential.
func (s *authService) RefreshTokens(ctx context.Context, userID int64, encryptedRefreshToken string) error {
	refreshToken, err := utils.Decrypt(encryptedRefreshToken, []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	token, err := s.li.ExchangeRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	encryptedAccessToken, err := utils.Encrypt([]byte(token.AccessToken), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}

	newEncryptedRefresh := encryptedRefreshToken
	if token.RefreshToken != "" {
		newEncryptedRefresh, err = utils.Encrypt([]byte(token.RefreshToken), []byte(s.cfg.SecretKey))
		if err != nil {
			return err
		}
	}

	return s.u.SetTokens(ctx, userID, encryptedAccessToken, newEncryptedRefresh, GetExpiresAt(token.ExpiresIn))
}
