package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "postpilot/configs"
)

func newTestLinkedin(serverURL string) LinkedinService {
	return NewLinkedinService(config.Config{
		LinkedinAPIBaseURL:   serverURL,
		LinkedinOAuthBaseURL: serverURL,
		LinkedinClientID:     "client-id",
		LinkedinClientSecret: "client-secret",
	})
}

func TestGetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"sub":"abc123","name":"Jane Doe","email":"jane@example.com"}`)
	}))
	defer server.Close()

	profile, err := newTestLinkedin(server.URL).GetProfile(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", profile.Sub)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestGetProfileUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid access token"}`)
	}))
	defer server.Close()

	_, err := newTestLinkedin(server.URL).GetProfile(context.Background(), "expired")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestGetProfileMissingSubject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"No Subject"}`)
	}))
	defer server.Close()

	_, err := newTestLinkedin(server.URL).GetProfile(context.Background(), "token-1")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestRegisterAndUploadMedia(t *testing.T) {
	var uploaded []byte

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sub":"abc123"}`)
	})
	mux.HandleFunc("/v2/assets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "registerUpload", r.URL.Query().Get("action"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		register := body["registerUploadRequest"].(map[string]any)
		assert.Equal(t, "urn:li:person:abc123", register["owner"])

		fmt.Fprintf(w, `{
			"value": {
				"asset": "urn:li:digitalmediaAsset:xyz",
				"uploadMechanism": {
					"com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest": {
						"uploadUrl": "%s/media-upload"
					}
				}
			}
		}`, server.URL)
	})
	mux.HandleFunc("/media-upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
		uploaded = make([]byte, r.ContentLength)
		r.Body.Read(uploaded)
		w.WriteHeader(http.StatusCreated)
	})

	asset, err := newTestLinkedin(server.URL).RegisterAndUploadMedia(
		context.Background(), "token-1", []byte("png bytes"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:digitalmediaAsset:xyz", asset)
	assert.Equal(t, []byte("png bytes"), uploaded)
}

func TestRegisterAndUploadMediaRegisterFails(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sub":"abc123"}`)
	})
	mux.HandleFunc("/v2/assets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"message":"quota exceeded"}`)
	})

	_, err := newTestLinkedin(server.URL).RegisterAndUploadMedia(
		context.Background(), "token-1", []byte("png bytes"), "image/png")

	var uploadErr *MediaUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "register", uploadErr.Step)
	assert.Equal(t, http.StatusUnprocessableEntity, uploadErr.StatusCode)
}

func TestRegisterAndUploadMediaIdentityFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestLinkedin(server.URL).RegisterAndUploadMedia(
		context.Background(), "bad-token", []byte("png bytes"), "image/png")

	var uploadErr *MediaUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "identity", uploadErr.Step)
}

func TestPublishTextOnly(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sub":"abc123"}`)
	})
	mux.HandleFunc("/v2/ugcPosts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2.0.0", r.Header.Get("X-Restli-Protocol-Version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "urn:li:person:abc123", body["author"])
		assert.Equal(t, "PUBLISHED", body["lifecycleState"])

		share := body["specificContent"].(map[string]any)["com.linkedin.ugc.ShareContent"].(map[string]any)
		assert.Equal(t, "NONE", share["shareMediaCategory"])
		assert.Equal(t, "hello world", share["shareCommentary"].(map[string]any)["text"])
		assert.Nil(t, share["media"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"urn:li:share:777"}`)
	})

	remoteID, err := newTestLinkedin(server.URL).Publish(context.Background(), "token-1", "hello world", "")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:777", remoteID)
}

func TestPublishWithMedia(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sub":"abc123"}`)
	})
	mux.HandleFunc("/v2/ugcPosts", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		share := body["specificContent"].(map[string]any)["com.linkedin.ugc.ShareContent"].(map[string]any)
		assert.Equal(t, "IMAGE", share["shareMediaCategory"])

		media := share["media"].([]any)
		require.Len(t, media, 1)
		assert.Equal(t, "urn:li:digitalmediaAsset:xyz", media[0].(map[string]any)["media"])

		fmt.Fprint(w, `{"id":"urn:li:share:778"}`)
	})

	remoteID, err := newTestLinkedin(server.URL).Publish(
		context.Background(), "token-1", "with picture", "urn:li:digitalmediaAsset:xyz")
	require.NoError(t, err)
	assert.Equal(t, "urn:li:share:778", remoteID)
}

func TestPublishRemoteError(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"sub":"abc123"}`)
	})
	mux.HandleFunc("/v2/ugcPosts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"internal error"}`)
	})

	_, err := newTestLinkedin(server.URL).Publish(context.Background(), "token-1", "hello", "")

	var publishErr *PublishError
	require.ErrorAs(t, err, &publishErr)
	assert.Equal(t, http.StatusInternalServerError, publishErr.StatusCode)
	assert.Contains(t, publishErr.Remote, "internal error")
}

func TestExchangeRefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/oauth/v2/accessToken", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		assert.Equal(t, "old-refresh", r.Form.Get("refresh_token"))
		assert.Equal(t, "client-id", r.Form.Get("client_id"))

		fmt.Fprint(w, `{"access_token":"new-access","refresh_token":"new-refresh","expires_in":5184000}`)
	}))
	defer server.Close()

	token, err := newTestLinkedin(server.URL).ExchangeRefreshToken(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", token.AccessToken)
	assert.Equal(t, "new-refresh", token.RefreshToken)
	assert.Equal(t, 5184000, token.ExpiresIn)
}
