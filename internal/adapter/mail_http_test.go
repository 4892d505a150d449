// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-microblog/internal/config"
	"github.com/MKhiriev/go-microblog/internal/logger"
	"github.com/MKhiriev/go-microblog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = models.User{ID: 42, Name: "Alice", Email: "alice@example.com"}

func newTestMailer(t *testing.T, serverURL string) Mailer {
	t.Helper()
	m, err := NewHTTPMailer(config.Mail{
		RelayURL:       serverURL,
		Sender:         "noreply@microblog.test",
		LinkBaseURL:    "https://microblog.test/",
		RequestTimeout: time.Second,
	}, logger.Nop())
	require.NoError(t, err)
	return m
}

func TestSendActivation_Success(t *testing.T) {
	var got models.MailMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := newTestMailer(t, srv.URL).SendActivation(context.Background(), testUser, "raw-token")
	require.NoError(t, err)

	assert.Equal(t, "noreply@microblog.test", got.From)
	assert.Equal(t, "alice@example.com", got.To)
	assert.Equal(t, models.MailKindActivation, got.Kind)
	assert.Contains(t, got.Text, "https://microblog.test/account_activations/raw-token/edit?id=42")
}

func TestSendPasswordReset_Success(t *testing.T) {
	var got models.MailMessage

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestMailer(t, srv.URL).SendPasswordReset(context.Background(), testUser, "reset-token")
	require.NoError(t, err)

	assert.Equal(t, models.MailKindPasswordReset, got.Kind)
	assert.Contains(t, got.Text, "/password_resets/reset-token/edit?id=42")
	assert.Contains(t, got.Text, "two hours")
}

func TestSend_RelayErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, want: ErrBadRequest},
		{name: "unauthorized", status: http.StatusUnauthorized, want: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, want: ErrForbidden},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "bad gateway", status: http.StatusBadGateway, want: ErrBadGateway},
		{name: "internal", status: http.StatusInternalServerError, want: ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := newTestMailer(t, srv.URL).SendActivation(context.Background(), testUser, "t")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSend_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestMailer(t, srv.URL).SendActivation(context.Background(), testUser, "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestSend_RelayDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := newTestMailer(t, url).SendActivation(context.Background(), testUser, "t")
	assert.Error(t, err)
}

func TestNewHTTPMailer_InvalidURL(t *testing.T) {
	_, err := NewHTTPMailer(config.Mail{RelayURL: "   "}, logger.Nop())
	assert.ErrorIs(t, err, ErrInvalidRelayURL)
}

func TestNormalizeBaseURL(t *testing.T) {
	got, err := normalizeBaseURL("relay.local:2525/")
	require.NoError(t, err)
	assert.Equal(t, "http://relay.local:2525", got)
}

func TestNewMailer_FallsBackToLog(t *testing.T) {
	m, err := NewMailer(config.Mail{}, logger.Nop())
	require.NoError(t, err)
	_, ok := m.(*logMailer)
	assert.True(t, ok)

	m, err = NewMailer(config.Mail{RelayURL: "http://relay"}, logger.Nop())
	require.NoError(t, err)
	_, ok = m.(*httpMailer)
	assert.True(t, ok)
}

func TestLogMailer_NeverLogsToken(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(config.Mail{}, logger.New(&buf, "test"))

	require.NoError(t, m.SendActivation(context.Background(), testUser, "super-secret-token"))
	require.NoError(t, m.SendPasswordReset(context.Background(), testUser, "super-secret-token"))

	assert.Contains(t, buf.String(), models.MailKindActivation)
	assert.Contains(t, buf.String(), models.MailKindPasswordReset)
	assert.NotContains(t, buf.String(), "super-secret-token")
}
