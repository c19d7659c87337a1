// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinSecretBytes is the shortest accepted token signing secret.
const MinSecretBytes = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string
	DataDir    string
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
	LogLevel   slog.Level
	LogFormat  string
}

// Load reads configuration from environment variables and returns a validated Config.
// MARKETPLACE_JWT_SECRET is required and must be at least MinSecretBytes long.
// Optional variables with defaults: MARKETPLACE_LISTEN_ADDR (127.0.0.1:5001),
// MARKETPLACE_DATA_DIR (data), MARKETPLACE_TOKEN_TTL (24h),
// MARKETPLACE_BCRYPT_COST (bcrypt.DefaultCost), MARKETPLACE_LOG_LEVEL (info),
// MARKETPLACE_LOG_FORMAT (text).
func Load() (*Config, error) {
	secret := os.Getenv("MARKETPLACE_JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("MARKETPLACE_JWT_SECRET is required")
	}
	if len(secret) < MinSecretBytes {
		return nil, fmt.Errorf("MARKETPLACE_JWT_SECRET must be at least %d bytes, got %d", MinSecretBytes, len(secret))
	}

	listenAddr := "127.0.0.1:5001"
	if v, ok := os.LookupEnv("MARKETPLACE_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dataDir := "data"
	if v, ok := os.LookupEnv("MARKETPLACE_DATA_DIR"); ok && v != "" {
		dataDir = v
	}

	tokenTTL := 24 * time.Hour
	if v, ok := os.LookupEnv("MARKETPLACE_TOKEN_TTL"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("MARKETPLACE_TOKEN_TTL has invalid duration %q: %w", v, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("MARKETPLACE_TOKEN_TTL must be positive, got %s", parsed)
		}
		tokenTTL = parsed
	}

	bcryptCost := bcrypt.DefaultCost
	if v, ok := os.LookupEnv("MARKETPLACE_BCRYPT_COST"); ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MARKETPLACE_BCRYPT_COST has invalid value %q: %w", v, err)
		}
		if parsed < bcrypt.MinCost || parsed > bcrypt.MaxCost {
			return nil, fmt.Errorf("MARKETPLACE_BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, parsed)
		}
		bcryptCost = parsed
	}

	logLevel := slog.LevelInfo
	if v, ok := os.LookupEnv("MARKETPLACE_LOG_LEVEL"); ok {
		if err := logLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("MARKETPLACE_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	logFormat := "text"
	if v, ok := os.LookupEnv("MARKETPLACE_LOG_FORMAT"); ok {
		logFormat = strings.ToLower(strings.TrimSpace(v))
		if logFormat != "text" && logFormat != "json" {
			return nil, fmt.Errorf("MARKETPLACE_LOG_FORMAT must be text or json, got %q", v)
		}
	}

	return &Config{
		ListenAddr: listenAddr,
		DataDir:    dataDir,
		JWTSecret:  []byte(secret),
		TokenTTL:   tokenTTL,
		BcryptCost: bcryptCost,
		LogLevel:   logLevel,
		LogFormat:  logFormat,
	}, nil
}
