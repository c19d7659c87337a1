package config

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSecret = "0123456789abcdef0123456789abcdef"

// allConfigKeys lists every MARKETPLACE_ env var that Load() reads.
var allConfigKeys = []string{
	"MARKETPLACE_LISTEN_ADDR",
	"MARKETPLACE_DATA_DIR",
	"MARKETPLACE_JWT_SECRET",
	"MARKETPLACE_TOKEN_TTL",
	"MARKETPLACE_BCRYPT_COST",
	"MARKETPLACE_LOG_LEVEL",
	"MARKETPLACE_LOG_FORMAT",
}

// isolateConfigEnv saves and unsets all MARKETPLACE_ env vars so tests don't
// inherit values from the host environment (e.g. a running dev server).
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MARKETPLACE_JWT_SECRET", validSecret)
	t.Setenv("MARKETPLACE_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("MARKETPLACE_DATA_DIR", "/var/lib/marketplace")
	t.Setenv("MARKETPLACE_TOKEN_TTL", "2h")
	t.Setenv("MARKETPLACE_BCRYPT_COST", "12")
	t.Setenv("MARKETPLACE_LOG_LEVEL", "debug")
	t.Setenv("MARKETPLACE_LOG_FORMAT", "JSON")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/var/lib/marketplace", cfg.DataDir)
	assert.Equal(t, []byte(validSecret), cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MARKETPLACE_JWT_SECRET", validSecret)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5001", cfg.ListenAddr)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_MissingSecret(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "MARKETPLACE_JWT_SECRET is required")
}

func TestLoad_ShortSecret(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("MARKETPLACE_JWT_SECRET", strings.Repeat("x", MinSecretBytes-1))

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "ttl not a duration", key: "MARKETPLACE_TOKEN_TTL", value: "forever"},
		{name: "ttl zero", key: "MARKETPLACE_TOKEN_TTL", value: "0s"},
		{name: "cost not a number", key: "MARKETPLACE_BCRYPT_COST", value: "high"},
		{name: "cost too low", key: "MARKETPLACE_BCRYPT_COST", value: "3"},
		{name: "cost too high", key: "MARKETPLACE_BCRYPT_COST", value: "32"},
		{name: "unknown level", key: "MARKETPLACE_LOG_LEVEL", value: "verbose"},
		{name: "unknown format", key: "MARKETPLACE_LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			t.Setenv("MARKETPLACE_JWT_SECRET", validSecret)
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
