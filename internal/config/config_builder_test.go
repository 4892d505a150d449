package config

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func minimalConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{TokenDigestKey: "digest", TokenSignKey: "sign"},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/microblog"}},
		Server:  Server{HTTPAddress: "localhost:8080"},
	}
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that a builder without sources fails
// validation because required secrets are missing.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "boom")
}

func TestBuild_AppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultResetTokenTTL, cfg.App.ResetTokenTTL)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultTokenIssuer, cfg.App.TokenIssuer)
	assert.Equal(t, bcrypt.DefaultCost, cfg.App.PasswordCost)
	assert.Equal(t, DefaultFeedPageSize, cfg.App.FeedPageSize)
	assert.Equal(t, uint64(DefaultMaxRetries), cfg.Storage.DB.MaxRetries)
	assert.Equal(t, DefaultShutdownTimeout, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultMailQueueSize, cfg.Adapter.Mail.QueueSize)
	assert.Equal(t, uint64(DefaultMailMaxRetries), cfg.Adapter.Mail.MaxRetries)
}

func TestGetStructuredConfigFromArgs(t *testing.T) {
	t.Setenv("MICROBLOG_APP_TOKEN_DIGEST_KEY", "digest")
	t.Setenv("MICROBLOG_APP_TOKEN_SIGN_KEY", "sign")
	t.Setenv("MICROBLOG_SERVER_ADDRESS", "localhost:8080")

	cfg, err := GetStructuredConfigFromArgs([]string{"-d", "file:admin.db", "-db-driver", "sqlite"})
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, "file:admin.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "digest", cfg.App.TokenDigestKey)
}

// TestBuild_LaterSourceWins verifies that non-zero values of later sources
// override earlier ones while zero values leave them untouched.
func TestBuild_LaterSourceWins(t *testing.T) {
	first := minimalConfig()
	first.App.TokenIssuer = "env-issuer"
	first.Server.RequestTimeout = time.Minute

	second := &StructuredConfig{
		App: App{TokenIssuer: "flag-issuer"},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, "sign", cfg.App.TokenSignKey)
}

func TestBuild_UnknownDriver(t *testing.T) {
	cfg := minimalConfig()
	cfg.Storage.DB.Driver = "mysql"

	b := newConfigBuilder()
	b.configs = append(b.configs, cfg)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestBuild_MissingSecrets(t *testing.T) {
	cfg := minimalConfig()
	cfg.App.TokenDigestKey = ""

	b := newConfigBuilder()
	b.configs = append(b.configs, cfg)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestBuild_MissingAddress(t *testing.T) {
	cfg := minimalConfig()
	cfg.Server.HTTPAddress = ""

	b := newConfigBuilder()
	b.configs = append(b.configs, cfg)

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidServerConfigs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

func TestWithJSON_NotSpecified(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, minimalConfig())

	b.withJSON()
	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_MergesFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"app": map[string]any{"token_issuer": "json-issuer", "reset_token_ttl": "30m"},
	})

	base := minimalConfig()
	base.JSONFilePath = path

	b := newConfigBuilder()
	b.configs = append(b.configs, base)

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 30*time.Minute, cfg.App.ResetTokenTTL)
}

func TestWithJSON_MissingFile(t *testing.T) {
	base := minimalConfig()
	base.JSONFilePath = "/definitely/not/here.json"

	b := newConfigBuilder()
	b.configs = append(b.configs, base)

	b.withJSON()
	assert.Error(t, b.err)
}

func TestWithFlags_InvalidFlag(t *testing.T) {
	b := newConfigBuilder().withFlags([]string{"-unknown"})
	assert.Error(t, b.err)
}
