package config

import "os"

type R2 struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicBaseURL string
}

type Config struct {
	LinkedinClientID     string
	LinkedinClientSecret string
	LinkedinRedirectURI  string
	LinkedinAPIBaseURL   string
	LinkedinOAuthBaseURL string
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	PostgresURI          string
	FrontendURL          string
	UploadsDir           string
	R2                   R2
	SecretKey            string
	CookieName           string
}

func LoadConfig() *Config {
	return &Config{
		LinkedinClientID:     getEnv("LINKEDIN_CLIENT_ID", ""),
		LinkedinClientSecret: getEnv("LINKEDIN_CLIENT_SECRET", ""),
		LinkedinRedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", "http://localhost:3000/login/callback"),
		LinkedinAPIBaseURL:   getEnv("LINKEDIN_API_BASE_URL", "https://api.linkedin.com"),
		LinkedinOAuthBaseURL: getEnv("LINKEDIN_OAUTH_BASE_URL", "https://www.linkedin.com"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1/chat/completions"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PostgresURI:          getEnv("POSTGRES_URI", ""),
		FrontendURL:          getEnv("FRONTEND_URL", "http://localhost:5173"),
		UploadsDir:           getEnv("UPLOADS_DIR", "./uploads"),
		R2: R2{
			AccountID:     getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:     getEnv("R2_ACCESS_KEY", ""),
			SecretKey:     getEnv("R2_SECRET_KEY", ""),
			BucketName:    getEnv("R2_BUCKET_NAME", ""),
			PublicBaseURL: getEnv("R2_PUBLIC_BASE_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "postpilot_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
