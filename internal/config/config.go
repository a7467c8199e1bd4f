package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	JWTSecret           string
	AccessTokenTTL      time.Duration
	RefreshCookieName   string
	RefreshCookieMaxAge int

	DefaultProfileImagePuURL   string
	DefaultProfileImageMatiURL string

	AllowedProviders []string

	S3BucketName        string
	S3Region            string
	S3PutExpirationMins int
	S3MaxRequestCount   int
	S3AllowedExtensions []string

	GeminiAPIKey string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),

		JWTSecret:         getEnv("JWT_SECRET", "change-me"),
		RefreshCookieName: getEnv("REFRESH_COOKIE_NAME", "refreshToken"),

		DefaultProfileImagePuURL:   os.Getenv("DEFAULT_PROFILE_IMAGE_PU_URL"),
		DefaultProfileImageMatiURL: os.Getenv("DEFAULT_PROFILE_IMAGE_MATI_URL"),

		AllowedProviders: splitCSV(getEnv("OAUTH_ALLOWED_PROVIDERS", "kakao,google")),

		S3BucketName:        os.Getenv("AWS_S3_BUCKET_NAME"),
		S3Region:            getEnv("AWS_REGION", "ap-northeast-2"),
		S3AllowedExtensions: splitCSV(getEnv("AWS_S3_ALLOWED_EXTENSIONS", ".jpg,.jpeg,.png,.gif,.webp")),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}

	var err error
	cfg.AccessTokenTTL, err = parseMinutes("JWT_ACCESS_TTL_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	cfg.RefreshCookieMaxAge, err = parseInt("REFRESH_COOKIE_MAX_AGE", 60*60*24*14)
	if err != nil {
		return nil, err
	}

	cfg.S3PutExpirationMins, err = parseInt("AWS_S3_EXPIRATION_PUT_MINUTES", 15)
	if err != nil {
		return nil, err
	}

	cfg.S3MaxRequestCount, err = parseInt("AWS_S3_MAX_REQUEST_COUNT", 10)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseMinutes(key string, fallbackMinutes int) (time.Duration, error) {
	v, err := parseInt(key, fallbackMinutes)
	if err != nil {
		return 0, err
	}
	return time.Duration(v) * time.Minute, nil
}
