package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/Achrafml23/nutrition-app/pkg/jwtx"
)

type Config struct {
	SecretKey string // Required: symmetric signing key for all tokens

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 15 days)
	ResetTokenTTL   time.Duration // Optional: password reset token lifetime (default: 48h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./auth.db)

	FrontendHost string // Optional: base URL for password reset links (default: http://localhost:5173)

	FirstSuperuser         string // Optional: email of the seeded superuser
	FirstSuperuserPassword string // Optional: password of the seeded superuser

	Env                 string        // Environment (dev, staging, production) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var ErrMissingSecretKey = errors.New("AUTH_SECRET_KEY is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		SecretKey:              os.Getenv("AUTH_SECRET_KEY"),
		AccessTokenTTL:         getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL:        getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		ResetTokenTTL:          getEnvDurationOrDefault("AUTH_RESET_TOKEN_TTL", jwtx.DefaultResetTokenTTL),
		DatabaseFile:           getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		FrontendHost:           getEnvOrDefault("AUTH_FRONTEND_HOST", "http://localhost:5173"),
		FirstSuperuser:         os.Getenv("AUTH_FIRST_SUPERUSER"),
		FirstSuperuserPassword: os.Getenv("AUTH_FIRST_SUPERUSER_PASSWORD"),
		Env:                    getEnvOrDefault("ENV", "dev"),
		LogLevel:               getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:              getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                   getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:    getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.SecretKey == "" {
		return Config{}, ErrMissingSecretKey
	}

	return cfg, nil
}

// Production reports whether the service runs behind HTTPS with a cross-site
// frontend, which decides the refresh cookie's Secure and SameSite flags.
func (c Config) Production() bool {
	return c.Env == "production" || c.Env == "prod" || c.Env == "staging"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
