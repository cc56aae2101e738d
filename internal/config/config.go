package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // sqlite (default), postgres, mysql
	DatabasePath   string // sqlite only
	DatabaseURL    string // postgres/mysql; mysql URLs need parseTime=true
	MigrationsPath string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	LeaderboardPageSize int

	// Amazon SES (password reset mail); leave SESFromEmail empty to disable
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Google OAuth sign-in; leave client id empty to disable
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./brainsmath.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		JWTSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTokenTTL:  getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getEnvDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),

		LeaderboardPageSize: getEnvInt("LEADERBOARD_PAGE_SIZE", 50),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "BrainsMath"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),

		Debug: getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
