// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"MICROBLOG_CONFIG": "/path/to/config.json",

		"MICROBLOG_APP_PASSWORD_COST":    "12",
		"MICROBLOG_APP_TOKEN_DIGEST_KEY": "digest_secret",
		"MICROBLOG_APP_TOKEN_SIGN_KEY":   "jwt_secret",
		"MICROBLOG_APP_TOKEN_ISSUER":     "test_issuer",
		"MICROBLOG_APP_TOKEN_DURATION":   "1h",
		"MICROBLOG_APP_RESET_TOKEN_TTL":  "90m",
		"MICROBLOG_APP_FEED_PAGE_SIZE":   "50",

		"MICROBLOG_SERVER_ADDRESS":          "localhost:8080",
		"MICROBLOG_SERVER_REQUEST_TIMEOUT":  "30s",
		"MICROBLOG_SERVER_SHUTDOWN_TIMEOUT": "5s",

		"MICROBLOG_STORAGE_DB_DRIVER":       "sqlite",
		"MICROBLOG_STORAGE_DB_DATABASE_URI": "file:test.db",
		"MICROBLOG_STORAGE_DB_MAX_RETRIES":  "7",

		"MICROBLOG_ADAPTER_MAIL_RELAY_URL": "http://relay.local",
		"MICROBLOG_ADAPTER_MAIL_SENDER":    "noreply@example.com",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, 12, cfg.App.PasswordCost)
	assert.Equal(t, "digest_secret", cfg.App.TokenDigestKey)
	assert.Equal(t, "jwt_secret", cfg.App.TokenSignKey)
	assert.Equal(t, "test_issuer", cfg.App.TokenIssuer)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 90*time.Minute, cfg.App.ResetTokenTTL)
	assert.Equal(t, 50, cfg.App.FeedPageSize)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "sqlite", cfg.Storage.DB.Driver)
	assert.Equal(t, "file:test.db", cfg.Storage.DB.DSN)
	assert.Equal(t, uint64(7), cfg.Storage.DB.MaxRetries)

	assert.Equal(t, "http://relay.local", cfg.Adapter.Mail.RelayURL)
	assert.Equal(t, "noreply@example.com", cfg.Adapter.Mail.Sender)
}

func TestParseEnv_Empty(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{
		"MICROBLOG_APP_RESET_TOKEN_TTL": "two hours",
	})

	err := parseEnv(&StructuredConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
